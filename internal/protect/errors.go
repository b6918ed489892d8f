package protect

import (
	"errors"
	"fmt"
	"strings"
)

// Errors surfaced to callers. Everything else (missing sub-fields,
// absent attendees, nil conference blocks) is handled as a no-op inside
// the pipeline.
var (
	// ErrInvalidInput means the event batch was null or carried no array.
	ErrInvalidInput = errors.New("invalid input: event batch is missing or not an array")

	// ErrUnknownLevel means the requested protection level is not one of
	// MINIMAL, STANDARD, MAXIMUM.
	ErrUnknownLevel = errors.New("unknown protection level")
)

// SafetyError is returned in strict mode when sanitized output still
// trips the safety validator. It carries every flagged path.
type SafetyError struct {
	Issues []string
}

func (e *SafetyError) Error() string {
	return fmt.Sprintf("sanitized output failed safety validation: %s", strings.Join(e.Issues, "; "))
}
