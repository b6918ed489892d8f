package gcal

import (
	"google.golang.org/api/calendar/v3"

	"calshield/internal/event"
)

// ConvertEvents converts Google Calendar API events into the pipeline's
// event model, carrying every field the sanitizer consumes.
func ConvertEvents(items []*calendar.Event) []event.CalendarEvent {
	events := make([]event.CalendarEvent, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		events = append(events, convertEvent(item))
	}
	return events
}

func convertEvent(item *calendar.Event) event.CalendarEvent {
	ev := event.CalendarEvent{
		ID:           item.Id,
		ICalUID:      item.ICalUID,
		Summary:      item.Summary,
		Description:  item.Description,
		Location:     item.Location,
		Start:        convertTime(item.Start),
		End:          convertTime(item.End),
		HangoutLink:  item.HangoutLink,
		Status:       item.Status,
		Transparency: item.Transparency,
		Recurrence:   item.Recurrence,
	}

	for _, a := range item.Attendees {
		if a == nil {
			continue
		}
		ev.Attendees = append(ev.Attendees, event.Person{
			Email:          a.Email,
			DisplayName:    a.DisplayName,
			ResponseStatus: a.ResponseStatus,
			Optional:       a.Optional,
			Self:           a.Self,
		})
	}

	if item.Creator != nil {
		ev.Creator = &event.Person{
			Email:       item.Creator.Email,
			DisplayName: item.Creator.DisplayName,
			Self:        item.Creator.Self,
		}
	}
	if item.Organizer != nil {
		ev.Organizer = &event.Person{
			Email:       item.Organizer.Email,
			DisplayName: item.Organizer.DisplayName,
			Self:        item.Organizer.Self,
		}
	}

	ev.ConferenceData = convertConference(item.ConferenceData)

	if item.ExtendedProperties != nil {
		ev.ExtendedProperties = &event.ExtendedProperties{
			Private: item.ExtendedProperties.Private,
			Shared:  item.ExtendedProperties.Shared,
		}
	}

	return ev
}

func convertTime(t *calendar.EventDateTime) *event.EventTime {
	if t == nil {
		return nil
	}
	return &event.EventTime{
		DateTime: t.DateTime,
		Date:     t.Date,
		TimeZone: t.TimeZone,
	}
}

func convertConference(cd *calendar.ConferenceData) *event.ConferenceData {
	if cd == nil {
		return nil
	}

	out := &event.ConferenceData{
		ConferenceID: cd.ConferenceId,
		Notes:        cd.Notes,
	}
	if cd.ConferenceSolution != nil && cd.ConferenceSolution.Key != nil {
		out.Type = cd.ConferenceSolution.Key.Type
	}

	for _, ep := range cd.EntryPoints {
		if ep == nil {
			continue
		}
		out.EntryPoints = append(out.EntryPoints, event.EntryPoint{
			EntryPointType: ep.EntryPointType,
			URI:            ep.Uri,
			Label:          ep.Label,
			MeetingCode:    ep.MeetingCode,
			Passcode:       ep.Passcode,
			Password:       ep.Password,
			PIN:            ep.Pin,
		})
	}

	return out
}
