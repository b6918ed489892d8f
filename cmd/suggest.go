package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"calshield/internal/config"
	"calshield/internal/event"
	"calshield/internal/llm"
	"calshield/internal/output"
	"calshield/internal/prompt"
	"calshield/internal/protect"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [question] --file <batch.json>",
	Short: "Ask the AI collaborator for scheduling suggestions",
	Long: `Ask the AI collaborator for scheduling suggestions over a calendar batch.

The batch is sanitized at the standard protection level and only the
minimal safe projection is sent to the model. Pseudonyms in the model's
answer are mapped back to the real identities afterwards.

Without a question the model proposes meeting slots; with a question it
answers it directly.

Examples:
  calshield suggest --file events.json
  calshield suggest --file events.json --duration 45
  calshield suggest "when are PERSON_1 and PERSON_2 both free?" --file events.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().StringSliceP("file", "F", []string{}, "calendar batch file(s) (required, repeatable)")
	suggestCmd.Flags().IntP("duration", "d", 0, "desired meeting length in minutes")
	suggestCmd.Flags().Bool("availability", false, "summarize availability instead of proposing slots")

	_ = suggestCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	var question string
	if len(args) == 1 {
		question = args[0]
	}
	files, _ := cmd.Flags().GetStringSlice("file")
	duration, _ := cmd.Flags().GetInt("duration")
	availability, _ := cmd.Flags().GetBool("availability")

	format := output.ParseFormat(viper.GetString("format"))
	verbose := viper.GetBool("verbose")
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	expandedFiles, err := config.ExpandGlobs(files)
	if err != nil {
		return err
	}

	batch := make([]event.CalendarEvent, 0)
	for _, file := range expandedFiles {
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

	logger := newLogger(verbose)
	orch := newOrchestrator(cfg, logger)

	result, err := orch.Process(batch, protect.LevelStandard)
	if err != nil {
		return err
	}
	safeEvents, ok := result.SafeData.([]event.MinimalEvent)
	if !ok {
		return fmt.Errorf("unexpected sanitized payload type %T", result.SafeData)
	}

	promptType := prompt.TypeSuggestSlot
	if availability {
		promptType = prompt.TypeAvailability
	}
	if question != "" {
		promptType = prompt.TypeSchedulingQuery
	}

	messages, err := prompt.Build(promptType, prompt.BuildOptions{
		Events:          safeEvents,
		Question:        question,
		DurationMinutes: duration,
	})
	if err != nil {
		return err
	}

	provider, err := llm.NewProvider(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create LLM provider: %w\n\nTroubleshooting:\n- Ensure Ollama is running: ollama serve\n- Check llm config in ~/.calshield.yaml", err)
	}

	if err := provider.Heartbeat(ctx); err != nil {
		return fmt.Errorf("cannot connect to Ollama at %s: %w\n\nStart Ollama with: ollama serve",
			cfg.LLM.Ollama.Host, err)
	}

	chatOpts := &llm.ChatOptions{
		Model:       cfg.LLM.Ollama.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	}

	stream, err := provider.ChatStream(ctx, messages, chatOpts)
	if err != nil {
		return fmt.Errorf("failed to start LLM stream: %w", err)
	}

	if format == output.FormatText {
		fmt.Fprintln(cmd.OutOrStdout(), "=== Suggestion ===")
		fmt.Fprintln(cmd.OutOrStdout())
	}

	var fullResponse strings.Builder
	for ev := range stream {
		if ev.Error != nil {
			if fullResponse.Len() > 0 {
				fmt.Fprintf(os.Stderr, "\n\nError during streaming: %v\n", ev.Error)
			}
			return ev.Error
		}
		if ev.Content != "" {
			if format == output.FormatText {
				fmt.Fprint(cmd.OutOrStdout(), ev.Content)
			}
			fullResponse.WriteString(ev.Content)
		}
	}

	answer := fullResponse.String()
	restored, _ := orch.ProcessExternalResult(answer).(string)

	if format == output.FormatJSON {
		suggestResult := map[string]interface{}{
			"question":       question,
			"events":         len(batch),
			"answer":         answer,
			"restoredAnswer": restored,
			"safety":         result.SafetyValidation,
			"metadata": map[string]interface{}{
				"model": chatOpts.Model,
				"level": string(result.ProtectionLevel),
			},
		}
		return output.New(cmd.OutOrStdout(), output.FormatJSON).WriteJSON(suggestResult)
	}

	if restored != answer {
		fmt.Fprintln(cmd.OutOrStdout(), "\n\n=== With identities restored ===")
		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprintln(cmd.OutOrStdout(), restored)
	} else {
		fmt.Fprintln(cmd.OutOrStdout())
	}

	return nil
}
