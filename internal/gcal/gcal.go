// Package gcal provides a read-only Google Calendar client for pulling
// raw event batches into the sanitization pipeline.
package gcal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"calshield/internal/config"
	"calshield/internal/event"
)

// Client wraps an authenticated Google Calendar service.
type Client struct {
	service *calendar.Service
	logger  *slog.Logger
}

// NewClient creates a Google Calendar client for the named account.
// It loads the account's token file; run the auth command first to create it.
func NewClient(ctx context.Context, logger *slog.Logger, cfg config.GoogleConfig, account string) (*Client, error) {
	oauthCfg, err := OAuthConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build OAuth config: %w", err)
	}

	token, err := LoadToken(cfg.TokenDir, account)
	if err != nil {
		return nil, fmt.Errorf("could not load token for account %s: %w (run the auth command first)", account, err)
	}

	httpClient := oauthCfg.Client(ctx, token)
	service, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	return &Client{service: service, logger: logger}, nil
}

// ListEvents fetches single events from the calendar between since and until,
// ordered by start time, converted into the pipeline's event model.
func (c *Client) ListEvents(calendarID string, since, until time.Time) ([]event.CalendarEvent, error) {
	if calendarID == "" {
		calendarID = "primary"
	}
	c.logger.Debug("fetching events", "calendar", calendarID, "since", since, "until", until)

	resp, err := c.service.Events.List(calendarID).
		ShowDeleted(false).
		SingleEvents(true).
		TimeMin(since.Format(time.RFC3339)).
		TimeMax(until.Format(time.RFC3339)).
		OrderBy("startTime").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve events: %w", err)
	}

	events := ConvertEvents(resp.Items)
	c.logger.Info("fetched events", "calendar", calendarID, "count", len(events))
	return events, nil
}

// Calendars returns the IDs of every calendar visible to the account.
func (c *Client) Calendars() ([]string, error) {
	list, err := c.service.CalendarList.List().Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list calendars: %w", err)
	}

	ids := make([]string, 0, len(list.Items))
	for _, item := range list.Items {
		ids = append(ids, item.Id)
	}
	return ids, nil
}
