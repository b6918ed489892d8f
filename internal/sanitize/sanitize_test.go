package sanitize

import (
	"regexp"
	"strings"
	"testing"

	"calshield/internal/anonymize"
	"calshield/internal/event"
	"calshield/internal/redact"
)

func newTestSanitizer() *Sanitizer {
	anon := anonymize.New(anonymize.Domains{
		Internal: []string{"ourco.com"},
		Client:   []string{"company.com"},
	})
	return New(redact.New(), anon)
}

func strPtr(s string) *event.EventTime {
	return &event.EventTime{DateTime: s}
}

func sampleEvent() event.CalendarEvent {
	return event.CalendarEvent{
		ID:          "original-id-123",
		ICalUID:     "original-uid-123@google.com",
		Summary:     "Confidential Project ABC-1234 Review",
		Description: "Budget discussion. https://company.zoom.us/j/87654321098",
		Location:    "https://company.zoom.us/j/87654321098",
		Start:       strPtr("2025-03-10T14:00:00Z"),
		End:         strPtr("2025-03-10T15:00:00Z"),
		Attendees: []event.Person{
			{Email: "john.doe@company.com", DisplayName: "John Doe", ResponseStatus: "accepted"},
			{Email: "jane@vendor.example", DisplayName: "Jane Smith", ResponseStatus: "needsAction", Optional: true},
		},
		Organizer: &event.Person{Email: "host@ourco.com", DisplayName: "The Host", Self: true},
		ConferenceData: &event.ConferenceData{
			ConferenceID: "876-5432-1098",
			EntryPoints:  []event.EntryPoint{{EntryPointType: "video", URI: "https://company.zoom.us/j/87654321098"}},
		},
		HangoutLink: "https://meet.google.com/abc-defg-hij",
		ExtendedProperties: &event.ExtendedProperties{
			Private: map[string]string{"note": "call john.doe@company.com"},
			Shared:  map[string]string{"color": "blue", "bridge": "https://company.zoom.us/j/87654321098"},
		},
		Status:       "confirmed",
		Transparency: "opaque",
		Recurrence:   []string{"RRULE:FREQ=WEEKLY;BYDAY=MO"},
	}
}

func TestSanitizeEventPipeline(t *testing.T) {
	s := newTestSanitizer()
	ev := sampleEvent()
	got := s.SanitizeEvent(ev)

	if got.ID == "" || got.ID == ev.ID {
		t.Errorf("id not replaced with an opaque token: %q", got.ID)
	}
	if got.ICalUID == "" || got.ICalUID == ev.ICalUID {
		t.Errorf("iCalUID not replaced: %q", got.ICalUID)
	}

	for _, leak := range []string{"ABC-1234", "Confidential", "zoom.us", "87654321098"} {
		if strings.Contains(got.Summary, leak) || strings.Contains(got.Description, leak) {
			t.Errorf("text fields leaked %q: summary=%q description=%q", leak, got.Summary, got.Description)
		}
	}

	if len(got.Attendees) != 2 {
		t.Fatalf("attendee count = %d, want 2", len(got.Attendees))
	}
	personEmail := regexp.MustCompile(`^PERSON_\d+@[A-Z][A-Z_]*_\d+$`)
	for i, att := range got.Attendees {
		if !personEmail.MatchString(att.Email) {
			t.Errorf("attendee[%d] email = %q, want PERSON_n@ORG_m shape", i, att.Email)
		}
		if strings.Contains(att.DisplayName, "John") || strings.Contains(att.DisplayName, "Jane") {
			t.Errorf("attendee[%d] display name leaked: %q", i, att.DisplayName)
		}
	}
	if got.Attendees[0].ResponseStatus != "accepted" {
		t.Errorf("responseStatus not preserved: %q", got.Attendees[0].ResponseStatus)
	}
	if !got.Attendees[1].Optional {
		t.Error("optional flag not preserved")
	}

	if got.Organizer == nil || !got.Organizer.Self {
		t.Errorf("organizer self flag not preserved: %+v", got.Organizer)
	}
	if got.Organizer != nil && strings.Contains(got.Organizer.Email, "ourco.com") {
		t.Errorf("organizer email leaked: %q", got.Organizer.Email)
	}

	if !strings.HasPrefix(got.Location, "VIRTUAL_MEETING_") {
		t.Errorf("location = %q, want a VIRTUAL_MEETING pseudonym", got.Location)
	}

	if got.ConferenceData == nil || got.ConferenceData.Type != "VIRTUAL_MEETING" || len(got.ConferenceData.EntryPoints) != 0 {
		t.Errorf("conference block not reduced to placeholder: %+v", got.ConferenceData)
	}

	if got.ExtendedProperties == nil {
		t.Fatal("shared extended properties dropped entirely")
	}
	if got.ExtendedProperties.Private != nil {
		t.Error("private extended properties survived")
	}
	if _, ok := got.ExtendedProperties.Shared["color"]; !ok {
		t.Error("benign shared property dropped")
	}
	if _, ok := got.ExtendedProperties.Shared["bridge"]; ok {
		t.Error("sensitive shared property survived")
	}

	// Scheduling semantics survive exactly.
	if got.Start != ev.Start || got.End != ev.End {
		t.Error("start/end modified")
	}
	if len(got.Recurrence) != 1 || got.Recurrence[0] != ev.Recurrence[0] {
		t.Errorf("recurrence modified: %v", got.Recurrence)
	}

	if got.Metadata.DurationMinutes == nil || *got.Metadata.DurationMinutes != 60 {
		t.Errorf("durationMinutes = %v, want 60", got.Metadata.DurationMinutes)
	}
	if got.Metadata.AttendeeCount != 2 || !got.Metadata.HasAttendees {
		t.Errorf("attendee metadata wrong: %+v", got.Metadata)
	}
	if !got.Metadata.IsRecurring {
		t.Error("isRecurring = false for recurring event")
	}
	if got.Metadata.DayOfWeek != "Monday" {
		t.Errorf("dayOfWeek = %q, want Monday", got.Metadata.DayOfWeek)
	}
}

func TestSanitizeEventDeterministicPseudonyms(t *testing.T) {
	s := newTestSanitizer()

	first := s.SanitizeEvent(sampleEvent())
	second := s.SanitizeEvent(sampleEvent())

	if first.Attendees[0].Email != second.Attendees[0].Email {
		t.Errorf("same attendee mapped to different pseudonyms: %q vs %q",
			first.Attendees[0].Email, second.Attendees[0].Email)
	}
	if first.ID == second.ID {
		t.Error("opaque ids must be fresh per sanitization")
	}
}

func TestSanitizeEventEmptyEvent(t *testing.T) {
	s := newTestSanitizer()

	got := s.SanitizeEvent(event.CalendarEvent{})

	if got.ID == "" {
		t.Error("empty event still gets an opaque id")
	}
	if got.Metadata.DurationMinutes != nil {
		t.Errorf("durationMinutes = %v for event without times, want nil", got.Metadata.DurationMinutes)
	}
	if got.Metadata.HasAttendees || got.Metadata.AttendeeCount != 0 {
		t.Errorf("attendee metadata wrong for empty event: %+v", got.Metadata)
	}
}

func TestRewriteTextAllowedPhrases(t *testing.T) {
	s := newTestSanitizer()

	got := s.RewriteText("Weekly Sync about Project Phoenix")
	if !strings.Contains(got, "Weekly Sync") {
		t.Errorf("allow-listed phrase rewritten: %q", got)
	}
	if strings.Contains(got, "Project Phoenix") {
		t.Errorf("capitalized phrase survived: %q", got)
	}
	if !strings.Contains(got, "PROJECT_") {
		t.Errorf("expected a project pseudonym, got %q", got)
	}
}

func TestRewriteTextTicketRefs(t *testing.T) {
	s := newTestSanitizer()

	got := s.RewriteText("Triage bug #4512 and issue 89 before standup")
	if strings.Contains(got, "4512") || strings.Contains(got, "89") {
		t.Errorf("ticket references survived: %q", got)
	}
}

func TestCreateMinimalSafeData(t *testing.T) {
	s := newTestSanitizer()

	minimal := s.CreateMinimalSafeData([]event.CalendarEvent{sampleEvent()})
	if len(minimal) != 1 {
		t.Fatalf("got %d events, want 1", len(minimal))
	}

	m := minimal[0]
	if m.Metadata.DurationMinutes == nil || *m.Metadata.DurationMinutes != 60 {
		t.Errorf("durationMinutes = %v, want 60", m.Metadata.DurationMinutes)
	}
	if m.Metadata.AttendeeCount != 2 {
		t.Errorf("attendeeCount = %d, want 2", m.Metadata.AttendeeCount)
	}
	if m.Metadata.IsAllDay {
		t.Error("isAllDay = true for timed event")
	}

	report := ValidateSafety(minimal)
	if !report.IsSafe {
		t.Errorf("minimal safe data failed validation: %v", report.Issues)
	}
}

func TestCalculateDuration(t *testing.T) {
	tests := []struct {
		name  string
		start *event.EventTime
		end   *event.EventTime
		want  *int
	}{
		{
			name:  "timed one hour",
			start: &event.EventTime{DateTime: "2025-03-10T14:00:00Z"},
			end:   &event.EventTime{DateTime: "2025-03-10T15:00:00Z"},
			want:  intPtr(60),
		},
		{
			name:  "all day",
			start: &event.EventTime{Date: "2025-03-10"},
			end:   &event.EventTime{Date: "2025-03-11"},
			want:  intPtr(1440),
		},
		{
			name:  "missing end",
			start: &event.EventTime{DateTime: "2025-03-10T14:00:00Z"},
			end:   nil,
			want:  nil,
		},
		{
			name:  "unparseable",
			start: &event.EventTime{DateTime: "not-a-time"},
			end:   &event.EventTime{DateTime: "2025-03-10T15:00:00Z"},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateDuration(tt.start, tt.end)
			switch {
			case got == nil && tt.want != nil:
				t.Errorf("CalculateDuration() = nil, want %d", *tt.want)
			case got != nil && tt.want == nil:
				t.Errorf("CalculateDuration() = %d, want nil", *got)
			case got != nil && tt.want != nil && *got != *tt.want:
				t.Errorf("CalculateDuration() = %d, want %d", *got, *tt.want)
			}
		})
	}
}

func intPtr(n int) *int { return &n }
