// Package event defines the calendar event data model shared by the
// sanitization pipeline. The raw shapes mirror the Google Calendar v3
// JSON representation; the sanitized shapes are what the pipeline is
// allowed to emit.
package event

import (
	"encoding/json"
	"fmt"
)

// CalendarEvent is a raw event as supplied by the upstream calendar client.
// All sub-fields are optional; the pipeline must tolerate any of them
// being absent.
type CalendarEvent struct {
	ID                 string              `json:"id,omitempty"`
	ICalUID            string              `json:"iCalUID,omitempty"`
	Summary            string              `json:"summary,omitempty"`
	Description        string              `json:"description,omitempty"`
	Location           string              `json:"location,omitempty"`
	Start              *EventTime          `json:"start,omitempty"`
	End                *EventTime          `json:"end,omitempty"`
	Attendees          []Person            `json:"attendees,omitempty"`
	Creator            *Person             `json:"creator,omitempty"`
	Organizer          *Person             `json:"organizer,omitempty"`
	ConferenceData     *ConferenceData     `json:"conferenceData,omitempty"`
	HangoutLink        string              `json:"hangoutLink,omitempty"`
	ExtendedProperties *ExtendedProperties `json:"extendedProperties,omitempty"`
	Status             string              `json:"status,omitempty"`
	Transparency       string              `json:"transparency,omitempty"`
	Recurrence         []string            `json:"recurrence,omitempty"`
}

// Person identifies an attendee, creator, or organizer. Email is the
// identity key; DisplayName is the fallback when no email is present.
type Person struct {
	Email          string `json:"email,omitempty"`
	DisplayName    string `json:"displayName,omitempty"`
	ResponseStatus string `json:"responseStatus,omitempty"`
	Optional       bool   `json:"optional,omitempty"`
	Self           bool   `json:"self,omitempty"`
}

// EventTime holds either a timed instant (DateTime, RFC 3339) or an
// all-day date (Date, yyyy-mm-dd). Exactly one is populated on real data.
type EventTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

// IsAllDay reports whether the time is a date without a clock component.
func (t *EventTime) IsAllDay() bool {
	return t != nil && t.DateTime == "" && t.Date != ""
}

// ConferenceData is the structured conference block attached to an event.
// On raw events it carries joinable entry points; after sanitization it is
// reduced to a type/notes placeholder with no entry points.
type ConferenceData struct {
	ConferenceID string       `json:"conferenceId,omitempty"`
	EntryPoints  []EntryPoint `json:"entryPoints,omitempty"`
	Notes        string       `json:"notes,omitempty"`
	Type         string       `json:"type,omitempty"`
}

// EntryPoint is a single way to join a conference. Every field except the
// type is a credential or deep link and must never survive sanitization.
type EntryPoint struct {
	EntryPointType string `json:"entryPointType,omitempty"`
	URI            string `json:"uri,omitempty"`
	Label          string `json:"label,omitempty"`
	MeetingCode    string `json:"meetingCode,omitempty"`
	Passcode       string `json:"passcode,omitempty"`
	Password       string `json:"password,omitempty"`
	PIN            string `json:"pin,omitempty"`
}

// ExtendedProperties carries the free-form key/value blocks Google
// attaches to events. Private is always dropped by the pipeline.
type ExtendedProperties struct {
	Private map[string]string `json:"private,omitempty"`
	Shared  map[string]string `json:"shared,omitempty"`
}

// SanitizedEvent is the full sanitized form of one event: every identity
// pseudonymized, every conference artifact removed, scheduling fields
// preserved exactly.
type SanitizedEvent struct {
	ID                 string              `json:"id"`
	ICalUID            string              `json:"iCalUID,omitempty"`
	Summary            string              `json:"summary,omitempty"`
	Description        string              `json:"description,omitempty"`
	Location           string              `json:"location,omitempty"`
	Start              *EventTime          `json:"start,omitempty"`
	End                *EventTime          `json:"end,omitempty"`
	Attendees          []Person            `json:"attendees,omitempty"`
	Creator            *Person             `json:"creator,omitempty"`
	Organizer          *Person             `json:"organizer,omitempty"`
	ConferenceData     *ConferenceData     `json:"conferenceData,omitempty"`
	ExtendedProperties *ExtendedProperties `json:"extendedProperties,omitempty"`
	Status             string              `json:"status,omitempty"`
	Transparency       string              `json:"transparency,omitempty"`
	Recurrence         []string            `json:"recurrence,omitempty"`
	Metadata           EventMetadata       `json:"metadata"`
}

// EventMetadata is computed scheduling metadata that survives even the
// most aggressive protection levels.
type EventMetadata struct {
	DurationMinutes *int   `json:"durationMinutes"`
	AttendeeCount   int    `json:"attendeeCount"`
	IsAllDay        bool   `json:"isAllDay"`
	HasAttendees    bool   `json:"hasAttendees"`
	IsRecurring     bool   `json:"isRecurring"`
	DayOfWeek       string `json:"dayOfWeek,omitempty"`
}

// MinimalEvent is the allow-listed projection sent to the external AI
// collaborator. Nothing outside this shape ever leaves the process.
type MinimalEvent struct {
	Start        *EventTime      `json:"start,omitempty"`
	End          *EventTime      `json:"end,omitempty"`
	Summary      string          `json:"summary,omitempty"`
	Attendees    []Person        `json:"attendees,omitempty"`
	Status       string          `json:"status,omitempty"`
	Transparency string          `json:"transparency,omitempty"`
	Metadata     MinimalMetadata `json:"metadata"`
}

// MinimalMetadata is the metadata subset carried by MinimalEvent.
type MinimalMetadata struct {
	DurationMinutes *int `json:"durationMinutes"`
	AttendeeCount   int  `json:"attendeeCount"`
	IsAllDay        bool `json:"isAllDay"`
}

// MaximumEvent is the MAXIMUM protection level output: time bounds, a
// generic summary label, and coarse metadata only.
type MaximumEvent struct {
	Start    *EventTime      `json:"start,omitempty"`
	End      *EventTime      `json:"end,omitempty"`
	Summary  string          `json:"summary"`
	Metadata MaximumMetadata `json:"metadata"`
}

// MaximumMetadata is the metadata subset carried by MaximumEvent.
type MaximumMetadata struct {
	HasAttendees    bool   `json:"hasAttendees"`
	DurationMinutes *int   `json:"durationMinutes"`
	DayOfWeek       string `json:"dayOfWeek,omitempty"`
	IsRecurring     bool   `json:"isRecurring"`
}

// SafetyReport is the result of the last-line safety validation over a
// payload about to be transmitted.
type SafetyReport struct {
	IsSafe bool     `json:"isSafe"`
	Issues []string `json:"issues"`
}

// batchEnvelope matches the {items: [...]} wrapper some upstream callers
// send instead of a bare array.
type batchEnvelope struct {
	Items []CalendarEvent `json:"items"`
}

// ParseBatch decodes a batch of calendar events from JSON. Both a bare
// array and an {items: [...]} envelope are accepted. A JSON null or a
// shape carrying no array is rejected.
func ParseBatch(data []byte) ([]CalendarEvent, error) {
	var events []CalendarEvent
	if err := json.Unmarshal(data, &events); err == nil {
		if events == nil {
			return nil, fmt.Errorf("event batch is null")
		}
		return events, nil
	}

	var envelope batchEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("event batch is not an array or {items: [...]} object: %w", err)
	}
	if envelope.Items == nil {
		return nil, fmt.Errorf("event batch object has no items array")
	}
	return envelope.Items, nil
}
