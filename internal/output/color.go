package output

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
)

// ColorMode determines when to use colored output.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // Auto-detect based on TTY
	ColorAlways                  // Always use colors
	ColorNever                   // Never use colors
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// shouldColorize determines if output should be colorized based on mode and TTY detection.
func shouldColorize(mode ColorMode, w interface{}) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	case ColorAuto:
		if f, ok := w.(*os.File); ok {
			return isTerminal(f)
		}
		return false
	}
	return false
}

// FormatSafety renders a safety verdict, colored when requested.
func FormatSafety(isSafe bool, colorize bool) string {
	if isSafe {
		if colorize {
			return colorGreen + "safe" + colorReset
		}
		return "safe"
	}
	if colorize {
		return colorBold + colorRed + "unsafe" + colorReset
	}
	return "unsafe"
}

// FormatIssue renders one safety finding, colored when requested.
func FormatIssue(issue string, colorize bool) string {
	if colorize {
		return colorYellow + issue + colorReset
	}
	return issue
}

// WriteSafetyLine writes a one-line safety verdict with color based on ColorMode.
func (wr *Writer) WriteSafetyLine(isSafe bool, mode ColorMode) error {
	colorize := shouldColorize(mode, wr.w)
	_, err := fmt.Fprintf(wr.w, "Safety: %s\n", FormatSafety(isSafe, colorize))
	return err
}
