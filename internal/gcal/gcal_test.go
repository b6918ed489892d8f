package gcal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
)

func TestConvertEvents(t *testing.T) {
	items := []*calendar.Event{
		{
			Id:          "abc123",
			ICalUID:     "abc123@google.com",
			Summary:     "Project Kickoff",
			Description: "Agenda attached",
			Location:    "Conference Room 4B",
			Start:       &calendar.EventDateTime{DateTime: "2025-03-10T14:00:00Z", TimeZone: "UTC"},
			End:         &calendar.EventDateTime{DateTime: "2025-03-10T15:00:00Z", TimeZone: "UTC"},
			Attendees: []*calendar.EventAttendee{
				{Email: "a@example.com", DisplayName: "A", ResponseStatus: "accepted", Optional: true},
				nil,
				{Email: "b@example.com", Self: true},
			},
			Creator:   &calendar.EventCreator{Email: "a@example.com", Self: true},
			Organizer: &calendar.EventOrganizer{Email: "a@example.com"},
			ConferenceData: &calendar.ConferenceData{
				ConferenceId: "876543210",
				ConferenceSolution: &calendar.ConferenceSolution{
					Key: &calendar.ConferenceSolutionKey{Type: "hangoutsMeet"},
				},
				EntryPoints: []*calendar.EntryPoint{
					{EntryPointType: "video", Uri: "https://meet.google.com/abc-defg-hij", MeetingCode: "abc-defg-hij"},
					{EntryPointType: "phone", Uri: "tel:+1-555-123-4567", Pin: "123456"},
				},
			},
			HangoutLink: "https://meet.google.com/abc-defg-hij",
			ExtendedProperties: &calendar.EventExtendedProperties{
				Private: map[string]string{"note": "x"},
				Shared:  map[string]string{"team": "platform"},
			},
			Status:       "confirmed",
			Transparency: "opaque",
			Recurrence:   []string{"RRULE:FREQ=WEEKLY"},
		},
		nil,
		{
			Summary: "Holiday",
			Start:   &calendar.EventDateTime{Date: "2025-03-17"},
			End:     &calendar.EventDateTime{Date: "2025-03-18"},
		},
	}

	events := ConvertEvents(items)
	if len(events) != 2 {
		t.Fatalf("len = %d, want 2 (nil items skipped)", len(events))
	}

	ev := events[0]
	if ev.ID != "abc123" || ev.Summary != "Project Kickoff" {
		t.Errorf("identity fields = %q / %q", ev.ID, ev.Summary)
	}
	if ev.Start == nil || ev.Start.DateTime != "2025-03-10T14:00:00Z" {
		t.Errorf("start = %+v", ev.Start)
	}
	if len(ev.Attendees) != 2 {
		t.Fatalf("attendees = %d, want 2 (nil skipped)", len(ev.Attendees))
	}
	if !ev.Attendees[0].Optional || ev.Attendees[0].ResponseStatus != "accepted" {
		t.Errorf("attendee flags lost: %+v", ev.Attendees[0])
	}
	if !ev.Attendees[1].Self {
		t.Error("self flag lost")
	}
	if ev.Creator == nil || !ev.Creator.Self {
		t.Errorf("creator = %+v", ev.Creator)
	}
	if ev.ConferenceData == nil || ev.ConferenceData.Type != "hangoutsMeet" {
		t.Fatalf("conferenceData = %+v", ev.ConferenceData)
	}
	if len(ev.ConferenceData.EntryPoints) != 2 || ev.ConferenceData.EntryPoints[1].PIN != "123456" {
		t.Errorf("entry points = %+v", ev.ConferenceData.EntryPoints)
	}
	if ev.ExtendedProperties == nil || ev.ExtendedProperties.Private["note"] != "x" {
		t.Errorf("extendedProperties = %+v", ev.ExtendedProperties)
	}
	if len(ev.Recurrence) != 1 {
		t.Errorf("recurrence = %v", ev.Recurrence)
	}

	allDay := events[1]
	if allDay.Start == nil || !allDay.Start.IsAllDay() {
		t.Errorf("all-day start = %+v", allDay.Start)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	dir := t.TempDir()
	token := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour).UTC().Truncate(time.Second),
	}

	if err := SaveToken(dir, "work", token); err != nil {
		t.Fatalf("SaveToken() error = %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, "token-work.json"))
	if err != nil {
		t.Fatalf("token file missing: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("token file mode = %o, want 600", info.Mode().Perm())
	}

	loaded, err := LoadToken(dir, "work")
	if err != nil {
		t.Fatalf("LoadToken() error = %v", err)
	}
	if loaded.AccessToken != "access" || loaded.RefreshToken != "refresh" {
		t.Errorf("loaded token = %+v", loaded)
	}

	accounts, err := Accounts(dir)
	if err != nil {
		t.Fatalf("Accounts() error = %v", err)
	}
	if len(accounts) != 1 || accounts[0] != "work" {
		t.Errorf("accounts = %v", accounts)
	}
}

func TestLoadTokenMissingAccount(t *testing.T) {
	if _, err := LoadToken(t.TempDir(), "absent"); err == nil {
		t.Error("expected error for missing token file")
	}
}
