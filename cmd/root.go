package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"calshield/internal/anonymize"
	"calshield/internal/config"
	"calshield/internal/protect"
	"calshield/internal/sanitize"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "calshield",
	Short: "Privacy-preserving sanitization for Google Calendar data",
	Long: `calshield strips meeting credentials and personal identifiers from
calendar events before they are shared with an AI collaborator.

Identities are replaced with deterministic pseudonyms so scheduling
suggestions can be mapped back to the real people, and every outgoing
payload is re-checked by a safety validator.

Examples:
  calshield sanitize --level standard events.json
  calshield suggest "when can PERSON_1 meet for an hour?" --file events.json
  calshield fetch --account work --since 7d --out events.json
  calshield watch --follow --level standard feed.jsonl`,
}

// Execute is called by main.main(). It runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.calshield.yaml)")
	rootCmd.PersistentFlags().StringP("format", "f", "text", "output format (text, json, table)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")

	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	// Local .env files carry OAuth client secrets during development.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".calshield")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("CALSHIELD")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("format", "text")
	viper.SetDefault("verbose", false)
	viper.SetDefault("protection.level", "standard")
	viper.SetDefault("protection.allow_minimal_location", true)
	viper.SetDefault("llm.provider", "ollama")
	viper.SetDefault("llm.ollama.host", "http://localhost:11434")
	viper.SetDefault("llm.ollama.model", "llama3.2")
	viper.SetDefault("google.calendar", "primary")
	viper.SetDefault("google.token_dir", ".")

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

// loadConfig unmarshals the active viper state into a Config.
func loadConfig() (*config.Config, error) {
	cfg := &config.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the stderr logger used by all commands.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelError
	if verbose {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newOrchestrator wires an orchestrator from the loaded configuration.
func newOrchestrator(cfg *config.Config, logger *slog.Logger) *protect.Orchestrator {
	anon := anonymize.New(anonymize.Domains{
		Internal: cfg.Domains.Internal,
		Client:   cfg.Domains.Client,
		Vendor:   cfg.Domains.Vendor,
	})

	opts := []protect.Option{
		protect.WithConfig(protect.Config{
			StrictMode:           cfg.Protection.Strict,
			AllowMinimalLocation: cfg.Protection.AllowMinimalLocation,
			EnableLogging:        cfg.Verbose,
		}),
		protect.WithLogger(logger),
	}
	if len(cfg.Protection.SensitiveKeywords) > 0 {
		opts = append(opts, protect.WithSanitizerOptions(sanitize.WithSensitiveKeywords(cfg.Protection.SensitiveKeywords)))
	}
	if len(cfg.Protection.AllowedPhrases) > 0 {
		opts = append(opts, protect.WithSanitizerOptions(sanitize.WithAllowedPhrases(cfg.Protection.AllowedPhrases)))
	}

	return protect.New(anon, opts...)
}

// resolveLevel picks the protection level from the flag, falling back to
// the configured default.
func resolveLevel(flagValue string, cfg *config.Config) (protect.Level, error) {
	value := flagValue
	if value == "" {
		value = cfg.Protection.Level
	}
	if value == "" {
		value = "standard"
	}
	return protect.ParseLevel(value)
}
