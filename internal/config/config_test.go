package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestConfigUnmarshal(t *testing.T) {
	v := viper.New()
	v.Set("format", "json")
	v.Set("protection.level", "maximum")
	v.Set("protection.strict", true)
	v.Set("protection.sensitive_keywords", []string{"embargo"})
	v.Set("domains.internal", []string{"ourco.com"})
	v.Set("domains.client", []string{"client.example"})
	v.Set("llm.provider", "ollama")
	v.Set("llm.ollama.model", "llama3.2")
	v.Set("llm.ollama.num_ctx", 8192)
	v.Set("google.calendar", "primary")
	v.Set("google.token_dir", "/tmp/tokens")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if cfg.Format != "json" {
		t.Errorf("Format = %q", cfg.Format)
	}
	if cfg.Protection.Level != "maximum" || !cfg.Protection.Strict {
		t.Errorf("Protection = %+v", cfg.Protection)
	}
	if len(cfg.Protection.SensitiveKeywords) != 1 || cfg.Protection.SensitiveKeywords[0] != "embargo" {
		t.Errorf("SensitiveKeywords = %v", cfg.Protection.SensitiveKeywords)
	}
	if len(cfg.Domains.Internal) != 1 || cfg.Domains.Internal[0] != "ourco.com" {
		t.Errorf("Domains.Internal = %v", cfg.Domains.Internal)
	}
	if cfg.LLM.Provider != "ollama" || cfg.LLM.Ollama.NumCtx != 8192 {
		t.Errorf("LLM = %+v", cfg.LLM)
	}
	if cfg.Google.Calendar != "primary" || cfg.Google.TokenDir != "/tmp/tokens" {
		t.Errorf("Google = %+v", cfg.Google)
	}
}

func TestConfigZeroValue(t *testing.T) {
	var cfg Config
	if cfg.Protection.Strict || cfg.Verbose {
		t.Errorf("zero Config carries enabled flags: %+v", cfg)
	}
	if cfg.LLM.Provider != "" {
		t.Errorf("zero Config carries a provider: %q", cfg.LLM.Provider)
	}
}
