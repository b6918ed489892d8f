package prompt

import (
	"errors"
	"fmt"

	"calshield/internal/event"
)

// PromptType identifies the scheduling task a prompt is designed to perform.
// Each type produces a distinct system persona and user message structure.
type PromptType string

const (
	// TypeSuggestSlot asks the model to propose concrete meeting slots that
	// fit around the events in the batch. It is the default mode used by
	// `calshield suggest`.
	TypeSuggestSlot PromptType = "suggest_slot"

	// TypeAvailability asks the model to summarize the free/busy structure
	// of the batch: dense days, open stretches, recurring commitments.
	TypeAvailability PromptType = "availability"

	// TypeSchedulingQuery asks the model to answer a specific free-form
	// question about the calendar. Used by `calshield suggest "<question>"`.
	TypeSchedulingQuery PromptType = "scheduling_query"
)

// BuildOptions holds all contextual information required to build a prompt.
// Not all fields are required for every [PromptType].
type BuildOptions struct {
	// Events is the sanitized minimal projection of the calendar batch.
	// Required for all prompt types.
	Events []event.MinimalEvent

	// Question is the user's scheduling question.
	// Required for [TypeSchedulingQuery].
	Question string

	// DurationMinutes is the desired meeting length for [TypeSuggestSlot].
	// Optional: included as a constraint when positive.
	DurationMinutes int

	// TimeRange is a human-readable description of the span the batch
	// covers (e.g. "2025-03-10 → 2025-03-14").
	// Optional: included as context when non-empty.
	TimeRange string
}

// ErrMissingField is returned by [Build] when a required field for the
// requested [PromptType] is absent from [BuildOptions].
var ErrMissingField = errors.New("prompt: missing required field")

// missingField wraps [ErrMissingField] with the specific field name.
func missingField(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, field)
}
