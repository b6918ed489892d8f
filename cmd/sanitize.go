package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"calshield/internal/config"
	"calshield/internal/event"
	"calshield/internal/output"
)

var sanitizeCmd = &cobra.Command{
	Use:   "sanitize <batch.json> [more files...]",
	Short: "Sanitize a batch of calendar events",
	Long: `Sanitize one or more calendar event batch files at a protection level.

Batch files contain a JSON array of Google Calendar events, or an
{"items": [...]} envelope as produced by the Calendar API. Glob patterns
are supported.

Levels:
  minimal   remove meeting credentials only; identities pass through
  standard  full pseudonymization plus the minimal safe projection
  maximum   generic summary labels and coarse metadata only

Examples:
  calshield sanitize events.json
  calshield sanitize --level maximum exports/*.json
  calshield sanitize --level minimal --format json events.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSanitize,
}

func init() {
	sanitizeCmd.Flags().StringP("level", "l", "", "protection level (minimal, standard, maximum)")
	rootCmd.AddCommand(sanitizeCmd)
}

func runSanitize(cmd *cobra.Command, args []string) error {
	levelFlag, _ := cmd.Flags().GetString("level")
	format := output.ParseFormat(viper.GetString("format"))

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	level, err := resolveLevel(levelFlag, cfg)
	if err != nil {
		return err
	}

	files, err := config.ExpandGlobs(args)
	if err != nil {
		return err
	}

	batch := make([]event.CalendarEvent, 0)
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("error reading %s: %w", file, err)
		}
		events, err := event.ParseBatch(data)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", file, err)
		}
		batch = append(batch, events...)
	}

	logger := newLogger(viper.GetBool("verbose"))
	orch := newOrchestrator(cfg, logger)

	result, err := orch.Process(batch, level)
	if err != nil {
		return err
	}

	return output.New(cmd.OutOrStdout(), format).WriteResult(result)
}
