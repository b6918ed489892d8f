package protect

import (
	"fmt"
	"strings"
)

// Level is a named protection policy controlling how much event detail
// survives sanitization.
type Level string

const (
	// LevelMinimal runs credential redaction only; attendees,
	// descriptions, and locations otherwise pass through.
	LevelMinimal Level = "MINIMAL"

	// LevelStandard runs the full pipeline and emits the minimal safe
	// projection.
	LevelStandard Level = "STANDARD"

	// LevelMaximum reduces each event to time bounds, a generic summary
	// label, and coarse metadata.
	LevelMaximum Level = "MAXIMUM"
)

// ParseLevel converts a string to a Level, case-insensitively.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(LevelMinimal):
		return LevelMinimal, nil
	case string(LevelStandard):
		return LevelStandard, nil
	case string(LevelMaximum):
		return LevelMaximum, nil
	default:
		return "", fmt.Errorf("%w: %q (must be one of: minimal, standard, maximum)", ErrUnknownLevel, s)
	}
}

// Valid reports whether the level is one of the named policies.
func (l Level) Valid() bool {
	switch l {
	case LevelMinimal, LevelStandard, LevelMaximum:
		return true
	}
	return false
}
