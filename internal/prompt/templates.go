package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"calshield/internal/llm"
)

// Build constructs a []llm.Message slice ready to be sent to any llm.Provider.
//
// The returned slice always begins with a system message whose content is
// determined by pt, followed by a user message that embeds the sanitized
// event payload and the task instruction.
//
// Required fields per PromptType:
//   - All types:           Events must be non-empty
//   - TypeSchedulingQuery: Question must be non-empty
//
// Returns ErrMissingField if a required field is absent.
func Build(pt PromptType, opts BuildOptions) ([]llm.Message, error) {
	if len(opts.Events) == 0 {
		return nil, missingField("Events")
	}
	if pt == TypeSchedulingQuery && opts.Question == "" {
		return nil, missingField("Question")
	}

	payload, err := json.MarshalIndent(opts.Events, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("prompt: encoding events: %w", err)
	}

	return []llm.Message{
		{Role: "system", Content: systemPrompt(pt)},
		{Role: "user", Content: buildUserMessage(pt, opts, payload)},
	}, nil
}

// buildUserMessage assembles the user-turn content: task instruction,
// optional context notes, then the event payload.
func buildUserMessage(pt PromptType, opts BuildOptions, payload []byte) string {
	var sb strings.Builder

	switch pt {
	case TypeAvailability:
		sb.WriteString("Summarize the availability in the following calendar data:\n\n")
	case TypeSchedulingQuery:
		sb.WriteString("Question: ")
		sb.WriteString(opts.Question)
		sb.WriteString("\n\n")
	default: // TypeSuggestSlot
		sb.WriteString("Suggest meeting slots that fit around the following calendar data:\n\n")
	}

	if opts.DurationMinutes > 0 && pt == TypeSuggestSlot {
		fmt.Fprintf(&sb, "Desired meeting length: %d minutes\n", opts.DurationMinutes)
	}
	if opts.TimeRange != "" {
		fmt.Fprintf(&sb, "Calendar window: %s\n", opts.TimeRange)
	}
	if opts.DurationMinutes > 0 || opts.TimeRange != "" {
		sb.WriteString("\n")
	}

	sb.WriteString("Calendar data:\n")
	sb.Write(payload)

	return sb.String()
}
