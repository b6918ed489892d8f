package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"calshield/internal/config"
	"calshield/internal/gcal"
	"calshield/internal/output"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch --account <name>",
	Short: "Fetch events from Google Calendar into a batch file",
	Long: `Fetch upcoming events from Google Calendar.

Events are written as a raw (unsanitized) JSON batch, ready to feed into
sanitize or suggest. Run 'calshield auth' first to store an OAuth token
for the account.

Examples:
  calshield fetch --account work
  calshield fetch --account work --since 7d --horizon 30d --out events.json
  calshield fetch --account personal --calendar team@group.calendar.google.com`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringP("account", "a", "", "account name the OAuth token was saved under (required)")
	fetchCmd.Flags().StringP("calendar", "c", "", "calendar ID (defaults to the configured calendar)")
	fetchCmd.Flags().String("since", "7d", "lower bound for event start (7d, 24h, or RFC3339)")
	fetchCmd.Flags().String("horizon", "14d", "how far past now to fetch (14d, 72h)")
	fetchCmd.Flags().StringP("out", "o", "", "write the batch to a file instead of stdout")

	_ = fetchCmd.MarkFlagRequired("account")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	account, _ := cmd.Flags().GetString("account")
	calendarFlag, _ := cmd.Flags().GetString("calendar")
	sinceFlag, _ := cmd.Flags().GetString("since")
	horizonFlag, _ := cmd.Flags().GetString("horizon")
	outFile, _ := cmd.Flags().GetString("out")

	format := output.ParseFormat(viper.GetString("format"))
	verbose := viper.GetBool("verbose")
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	since, err := config.ParseTimeRef(sinceFlag)
	if err != nil {
		return fmt.Errorf("invalid --since: %w", err)
	}
	horizon, err := config.ParseDuration(horizonFlag)
	if err != nil {
		return fmt.Errorf("invalid --horizon: %w", err)
	}
	until := time.Now().Add(horizon)

	calendarID := calendarFlag
	if calendarID == "" {
		calendarID = cfg.Google.Calendar
	}

	logger := newLogger(verbose)

	client, err := gcal.NewClient(ctx, logger, cfg.Google, account)
	if err != nil {
		return fmt.Errorf("failed to create calendar client: %w\n\nRun 'calshield auth --account %s' to authorize this account", err, account)
	}

	events, err := client.ListEvents(calendarID, since, until)
	if err != nil {
		return err
	}

	logger.Info("fetched events",
		"account", account,
		"calendar", calendarID,
		"count", len(events),
	)

	if outFile != "" {
		data, err := json.MarshalIndent(events, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(outFile, append(data, '\n'), 0o600); err != nil {
			return fmt.Errorf("error writing %s: %w", outFile, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d event(s) to %s\n", len(events), outFile)
		return nil
	}

	return output.New(cmd.OutOrStdout(), format).WriteBatch(events)
}
