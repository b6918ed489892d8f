// Package output provides formatted rendering for sanitization results
// and calendar event batches. It supports text, JSON, and table formats.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"calshield/internal/event"
	"calshield/internal/protect"
)

// Format represents an output format type.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

// ParseFormat converts a string to a Format, defaulting to text.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON
	case "table":
		return FormatTable
	default:
		return FormatText
	}
}

// Writer handles writing formatted output.
type Writer struct {
	w      io.Writer
	format Format
}

// New creates a new output Writer.
func New(w io.Writer, format Format) *Writer {
	return &Writer{w: w, format: format}
}

// WriteJSON outputs any value as indented JSON.
func (wr *Writer) WriteJSON(v interface{}) error {
	enc := json.NewEncoder(wr.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteResult outputs one processing result in the configured format.
func (wr *Writer) WriteResult(res *protect.Result) error {
	switch wr.format {
	case FormatJSON:
		return wr.WriteJSON(res)
	case FormatTable:
		return wr.writeResultTable(res)
	default:
		return wr.writeResultText(res)
	}
}

func (wr *Writer) writeResultText(res *protect.Result) error {
	fmt.Fprintf(wr.w, "Protection level: %s\n", res.ProtectionLevel)
	fmt.Fprintf(wr.w, "Events processed: %d (%d ms)\n", res.Stats.EventsProcessed, res.ProcessingTimeMs)

	if res.SafetyValidation.IsSafe {
		fmt.Fprintln(wr.w, "Safety check:     passed")
	} else {
		fmt.Fprintf(wr.w, "Safety check:     %d finding(s)\n", len(res.SafetyValidation.Issues))
		for _, issue := range res.SafetyValidation.Issues {
			fmt.Fprintf(wr.w, "  - %s\n", issue)
		}
	}

	fmt.Fprintln(wr.w)
	return wr.WriteJSON(res.SafeData)
}

func (wr *Writer) writeResultTable(res *protect.Result) error {
	tw := tabwriter.NewWriter(wr.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "METRIC\tVALUE")
	fmt.Fprintln(tw, "------\t-----")
	fmt.Fprintf(tw, "level\t%s\n", res.ProtectionLevel)
	fmt.Fprintf(tw, "eventsProcessed\t%d\n", res.Stats.EventsProcessed)
	fmt.Fprintf(tw, "attendeesAnonymized\t%d\n", res.Stats.AttendeesAnonymized)
	fmt.Fprintf(tw, "conferenceDataRemoved\t%d\n", res.Stats.ConferenceDataRemoved)
	fmt.Fprintf(tw, "sensitiveDataRemoved\t%d\n", res.Stats.SensitiveDataRemoved)
	fmt.Fprintf(tw, "safe\t%t\n", res.SafetyValidation.IsSafe)
	fmt.Fprintf(tw, "processingTimeMs\t%d\n", res.ProcessingTimeMs)
	return tw.Flush()
}

// WriteBatch outputs a raw event batch in the configured format.
// Used by fetch to show what was pulled before it is sanitized.
func (wr *Writer) WriteBatch(events []event.CalendarEvent) error {
	switch wr.format {
	case FormatTable:
		return wr.writeBatchTable(events)
	case FormatText:
		for _, ev := range events {
			fmt.Fprintf(wr.w, "%s  %s\n", eventStart(ev), ev.Summary)
		}
		return nil
	default:
		return wr.WriteJSON(events)
	}
}

func (wr *Writer) writeBatchTable(events []event.CalendarEvent) error {
	tw := tabwriter.NewWriter(wr.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "START\tSUMMARY\tATTENDEES\tCONFERENCE")
	fmt.Fprintln(tw, "-----\t-------\t---------\t----------")

	for _, ev := range events {
		summary := ev.Summary
		if len(summary) > 60 {
			summary = summary[:57] + "..."
		}
		hasConf := ev.ConferenceData != nil || ev.HangoutLink != ""
		fmt.Fprintf(tw, "%s\t%s\t%d\t%t\n", eventStart(ev), summary, len(ev.Attendees), hasConf)
	}

	return tw.Flush()
}

func eventStart(ev event.CalendarEvent) string {
	if ev.Start == nil {
		return "-"
	}
	if ev.Start.DateTime != "" {
		return ev.Start.DateTime
	}
	if ev.Start.Date != "" {
		return ev.Start.Date
	}
	return "-"
}
