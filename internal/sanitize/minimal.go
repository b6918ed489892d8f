package sanitize

import (
	"time"

	"calshield/internal/event"
)

// CreateMinimalSafeData sanitizes a batch and projects each event onto
// the allow-listed minimal shape. This projection is the only payload
// ever handed to the external AI collaborator.
func (s *Sanitizer) CreateMinimalSafeData(events []event.CalendarEvent) []event.MinimalEvent {
	out := make([]event.MinimalEvent, 0, len(events))
	for _, ev := range events {
		out = append(out, Project(s.SanitizeEvent(ev)))
	}
	return out
}

// Project reduces a fully sanitized event to the minimal allow-listed
// shape.
func Project(sanitized event.SanitizedEvent) event.MinimalEvent {
	return event.MinimalEvent{
		Start:        sanitized.Start,
		End:          sanitized.End,
		Summary:      sanitized.Summary,
		Attendees:    sanitized.Attendees,
		Status:       sanitized.Status,
		Transparency: sanitized.Transparency,
		Metadata: event.MinimalMetadata{
			DurationMinutes: sanitized.Metadata.DurationMinutes,
			AttendeeCount:   sanitized.Metadata.AttendeeCount,
			IsAllDay:        sanitized.Metadata.IsAllDay,
		},
	}
}

// CalculateDuration returns the whole minutes between start and end,
// using whichever of dateTime or date is populated on each side. Nil when
// either side is absent or unparseable.
func CalculateDuration(start, end *event.EventTime) *int {
	from, ok := parseEventTime(start)
	if !ok {
		return nil
	}
	to, ok := parseEventTime(end)
	if !ok {
		return nil
	}

	minutes := int(to.Sub(from).Minutes())
	return &minutes
}

func parseEventTime(t *event.EventTime) (time.Time, bool) {
	if t == nil {
		return time.Time{}, false
	}
	if t.DateTime != "" {
		parsed, err := time.Parse(time.RFC3339, t.DateTime)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	}
	if t.Date != "" {
		parsed, err := time.Parse("2006-01-02", t.Date)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	}
	return time.Time{}, false
}

func dayOfWeek(t *event.EventTime) string {
	parsed, ok := parseEventTime(t)
	if !ok {
		return ""
	}
	return parsed.Weekday().String()
}
