package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"calshield/internal/event"
	"calshield/internal/output"
	"calshield/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <feed.jsonl>",
	Short: "Sanitize a live feed of calendar events",
	Long: `Sanitize a JSON-lines feed of calendar events as they arrive.

Each line of the feed is one JSON-encoded event. New lines are sanitized
at the chosen protection level and written out one result at a time.
Without --replay only lines appended after startup are processed.

Examples:
  calshield watch --follow feed.jsonl
  calshield watch --replay --level maximum feed.jsonl
  calshield watch --follow --follow-rotate --format json feed.jsonl`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringP("level", "l", "", "protection level (minimal, standard, maximum)")
	watchCmd.Flags().Bool("follow", false, "keep following the feed for new lines")
	watchCmd.Flags().Bool("replay", false, "process lines already in the feed before following")
	watchCmd.Flags().Bool("follow-rotate", false, "keep following through feed rotations")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	levelFlag, _ := cmd.Flags().GetString("level")
	follow, _ := cmd.Flags().GetBool("follow")
	replay, _ := cmd.Flags().GetBool("replay")
	followRotate, _ := cmd.Flags().GetBool("follow-rotate")

	format := output.ParseFormat(viper.GetString("format"))

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	level, err := resolveLevel(levelFlag, cfg)
	if err != nil {
		return err
	}

	logger := newLogger(viper.GetBool("verbose"))
	orch := newOrchestrator(cfg, logger)
	writer := output.New(cmd.OutOrStdout(), format)

	follower := watch.New(watch.Options{
		FilePath:     args[0],
		Replay:       replay,
		Follow:       follow,
		FollowRotate: followRotate,
		Handler: func(ev event.CalendarEvent) error {
			result, err := orch.Process([]event.CalendarEvent{ev}, level)
			if err != nil {
				return err
			}
			return writer.WriteResult(result)
		},
	}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if follow {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sigCh
			logger.Info("shutting down")
			cancel()
		}()
	}

	return follower.Run(ctx)
}
