// Package config provides configuration types and helpers for calshield.
package config

// Config holds the application-wide configuration.
type Config struct {
	Format     string           `mapstructure:"format"`
	Verbose    bool             `mapstructure:"verbose"`
	Protection ProtectionConfig `mapstructure:"protection"`
	Domains    DomainsConfig    `mapstructure:"domains"`
	LLM        LLMConfig        `mapstructure:"llm"`
	Google     GoogleConfig     `mapstructure:"google"`
}

// ProtectionConfig holds sanitization policy settings.
type ProtectionConfig struct {
	// Level is the default protection level: "minimal", "standard", "maximum"
	Level string `mapstructure:"level"`

	// Strict rejects batches whose output still trips the safety validator
	Strict bool `mapstructure:"strict"`

	// AllowMinimalLocation keeps redacted location text at the minimal level
	AllowMinimalLocation bool `mapstructure:"allow_minimal_location"`

	// SensitiveKeywords overrides the built-in keyword list when non-empty
	SensitiveKeywords []string `mapstructure:"sensitive_keywords"`

	// AllowedPhrases overrides the built-in generic phrase allow-list
	AllowedPhrases []string `mapstructure:"allowed_phrases"`
}

// DomainsConfig classifies email domains for organization pseudonyms.
type DomainsConfig struct {
	Internal []string `mapstructure:"internal"` // our own domains
	Client   []string `mapstructure:"client"`   // client firm domains
	Vendor   []string `mapstructure:"vendor"`   // vendor domains
}

// LLMConfig holds configuration for the AI collaborator.
type LLMConfig struct {
	// Provider selects which LLM to use. Only "ollama" is supported: the
	// collaborator must stay local so sanitized payloads never leave the host.
	Provider string `mapstructure:"provider"`

	Temperature float32 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`

	Ollama OllamaConfig `mapstructure:"ollama"`
}

// OllamaConfig holds Ollama-specific settings.
type OllamaConfig struct {
	Host      string `mapstructure:"host"`       // API endpoint
	Model     string `mapstructure:"model"`      // Default model name
	KeepAlive string `mapstructure:"keep_alive"` // e.g., "5m"
	NumCtx    int    `mapstructure:"num_ctx"`    // Context window size
}

// GoogleConfig holds Google Calendar access settings.
type GoogleConfig struct {
	// CredentialsFile is the OAuth client secret JSON. GOOGLE_CLIENT_ID and
	// GOOGLE_CLIENT_SECRET environment variables take priority when set.
	CredentialsFile string `mapstructure:"credentials_file"`

	// TokenDir is where per-account token files are stored
	TokenDir string `mapstructure:"token_dir"`

	// Calendar is the default calendar ID ("primary" when empty)
	Calendar string `mapstructure:"calendar"`
}
