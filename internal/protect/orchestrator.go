package protect

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"calshield/internal/anonymize"
	"calshield/internal/event"
	"calshield/internal/redact"
	"calshield/internal/sanitize"
)

// shrinkSlack is the length delta beyond which a rewrite is assumed to
// have removed sensitive content. Best-effort telemetry, not an exact
// redaction count.
const shrinkSlack = 50

// Config controls orchestrator policy.
type Config struct {
	// StrictMode rejects output that trips the safety validator instead
	// of downgrading to a warning.
	StrictMode bool

	// AllowMinimalLocation gates whether MINIMAL keeps redacted location
	// text (reserved; currently only MINIMAL consults it).
	AllowMinimalLocation bool

	// PreserveTimePatterns is reserved for future time fuzzing control.
	PreserveTimePatterns bool

	// EnableLogging emits slog warnings for non-strict safety findings.
	EnableLogging bool
}

// Production is the strict, quiet preset.
func Production() Config {
	return Config{StrictMode: true, AllowMinimalLocation: true}
}

// Development is the lenient, verbose preset.
func Development() Config {
	return Config{AllowMinimalLocation: true, EnableLogging: true}
}

// Option mutates the orchestrator configuration.
type Option func(*Orchestrator)

// WithConfig replaces the whole configuration (used with the presets).
func WithConfig(cfg Config) Option {
	return func(o *Orchestrator) { o.cfg = cfg }
}

// WithStrictMode toggles rejection of unsafe output.
func WithStrictMode(strict bool) Option {
	return func(o *Orchestrator) { o.cfg.StrictMode = strict }
}

// WithLogging toggles warning logs for non-strict safety findings.
func WithLogging(enabled bool) Option {
	return func(o *Orchestrator) { o.cfg.EnableLogging = enabled }
}

// WithLogger sets the slog logger used when logging is enabled.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSanitizerOptions forwards options to the owned sanitizer.
func WithSanitizerOptions(opts ...sanitize.Option) Option {
	return func(o *Orchestrator) { o.sanitizerOpts = append(o.sanitizerOpts, opts...) }
}

// Orchestrator is the top-level policy object: it owns one sanitizer and
// redactor pair around an injected anonymizer, applies a named protection
// level to each batch, and accumulates processing statistics.
//
// The anonymizer is injected so the caller decides its scope (per
// request, per session); the orchestrator never creates hidden shared
// state.
type Orchestrator struct {
	mu sync.Mutex

	cfg           Config
	anon          *anonymize.Anonymizer
	redactor      *redact.Redactor
	sanitizer     *sanitize.Sanitizer
	sanitizerOpts []sanitize.Option
	logger        *slog.Logger

	stats Stats
}

// Stats are cumulative processing counters. SensitiveDataRemoved is a
// length-delta heuristic, not an exact redaction count.
type Stats struct {
	EventsProcessed       int       `json:"eventsProcessed"`
	AttendeesAnonymized   int       `json:"attendeesAnonymized"`
	ConferenceDataRemoved int       `json:"conferenceDataRemoved"`
	SensitiveDataRemoved  int       `json:"sensitiveDataRemoved"`
	LastProcessed         time.Time `json:"lastProcessed"`
}

// Result is the successful outcome of processing one batch.
type Result struct {
	SafeData         any                `json:"safeData"`
	Stats            Stats              `json:"stats"`
	ProtectionLevel  Level              `json:"protectionLevel"`
	ProcessingTimeMs int64              `json:"processingTimeMs"`
	SafetyValidation event.SafetyReport `json:"safetyValidation"`
}

// New creates an orchestrator around the injected anonymizer.
func New(anon *anonymize.Anonymizer, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		cfg:      Development(),
		anon:     anon,
		redactor: redact.New(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.sanitizer = sanitize.New(o.redactor, o.anon, o.sanitizerOpts...)
	return o
}

// Process applies the named protection level to a batch. A returned
// error means no output was produced and no statistics were mutated;
// per-batch counters accumulate in a scratch struct and merge only on
// full success.
func (o *Orchestrator) Process(events []event.CalendarEvent, level Level) (*Result, error) {
	started := time.Now()

	if events == nil {
		return nil, ErrInvalidInput
	}
	if !level.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLevel, level)
	}

	scratch := Stats{EventsProcessed: len(events)}
	for _, ev := range events {
		scratch.AttendeesAnonymized += len(ev.Attendees)
		if ev.ConferenceData != nil || ev.HangoutLink != "" {
			scratch.ConferenceDataRemoved++
		}
	}

	var safeData any
	switch level {
	case LevelMinimal:
		safeData = o.processMinimal(events, &scratch)
	case LevelStandard:
		safeData = o.processStandard(events, &scratch)
	case LevelMaximum:
		safeData = o.processMaximum(events, &scratch)
	}

	report := sanitize.ValidateSafety(safeData)
	if !report.IsSafe {
		if o.cfg.StrictMode {
			return nil, &SafetyError{Issues: report.Issues}
		}
		if o.cfg.EnableLogging {
			o.logger.Warn("sanitized output carries residual findings",
				"level", string(level),
				"issues", len(report.Issues))
		}
	}

	scratch.LastProcessed = time.Now()
	o.mergeStats(scratch)

	return &Result{
		SafeData:         safeData,
		Stats:            o.Stats(),
		ProtectionLevel:  level,
		ProcessingTimeMs: time.Since(started).Milliseconds(),
		SafetyValidation: report,
	}, nil
}

// ProcessJSON decodes a batch (bare array or {items: [...]}) and a level
// string, then processes it.
func (o *Orchestrator) ProcessJSON(data []byte, levelStr string) (*Result, error) {
	events, err := event.ParseBatch(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	level, err := ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}
	return o.Process(events, level)
}

// ProcessExternalResult restores every known pseudonym inside an
// arbitrary AI response.
func (o *Orchestrator) ProcessExternalResult(payload any) any {
	return o.anon.MapBack(payload)
}

// processMinimal redacts credentials only: attendees, descriptions, and
// locations otherwise pass through verbatim.
func (o *Orchestrator) processMinimal(events []event.CalendarEvent, scratch *Stats) []event.CalendarEvent {
	out := make([]event.CalendarEvent, len(events))
	for i, ev := range events {
		clean := ev
		clean.Summary = o.redactor.RedactConferenceArtifacts(ev.Summary)
		clean.Description = o.redactor.RedactConferenceArtifacts(ev.Description)
		if o.cfg.AllowMinimalLocation {
			clean.Location = o.redactor.SanitizeLocationField(ev.Location)
		} else {
			clean.Location = ""
		}
		clean.ConferenceData = o.redactor.SanitizeConferenceBlock(ev.ConferenceData)
		clean.HangoutLink = ""
		countShrinkage(ev, clean.Summary, clean.Description, scratch)
		out[i] = clean
	}
	return out
}

// processStandard runs the full sanitizer and projects onto the minimal
// safe shape.
func (o *Orchestrator) processStandard(events []event.CalendarEvent, scratch *Stats) []event.MinimalEvent {
	out := make([]event.MinimalEvent, len(events))
	for i, ev := range events {
		sanitized := o.sanitizer.SanitizeEvent(ev)
		countShrinkage(ev, sanitized.Summary, sanitized.Description, scratch)
		out[i] = sanitize.Project(sanitized)
	}
	return out
}

// processMaximum runs the full sanitizer, then collapses the summary to
// a generic label and keeps only time bounds plus coarse metadata.
func (o *Orchestrator) processMaximum(events []event.CalendarEvent, scratch *Stats) []event.MaximumEvent {
	out := make([]event.MaximumEvent, len(events))
	for i, ev := range events {
		sanitized := o.sanitizer.SanitizeEvent(ev)
		countShrinkage(ev, sanitized.Summary, sanitized.Description, scratch)
		out[i] = event.MaximumEvent{
			Start:   sanitized.Start,
			End:     sanitized.End,
			Summary: CollapseSummary(sanitized.Summary),
			Metadata: event.MaximumMetadata{
				HasAttendees:    sanitized.Metadata.HasAttendees,
				DurationMinutes: sanitized.Metadata.DurationMinutes,
				DayOfWeek:       sanitized.Metadata.DayOfWeek,
				IsRecurring:     sanitized.Metadata.IsRecurring,
			},
		}
	}
	return out
}

// countShrinkage bumps the sensitive-data counter when the combined
// summary and description shrank past the slack.
func countShrinkage(original event.CalendarEvent, summary, description string, scratch *Stats) {
	before := len(original.Summary) + len(original.Description)
	after := len(summary) + len(description)
	if before-after > shrinkSlack {
		scratch.SensitiveDataRemoved++
	}
}

func (o *Orchestrator) mergeStats(scratch Stats) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stats.EventsProcessed += scratch.EventsProcessed
	o.stats.AttendeesAnonymized += scratch.AttendeesAnonymized
	o.stats.ConferenceDataRemoved += scratch.ConferenceDataRemoved
	o.stats.SensitiveDataRemoved += scratch.SensitiveDataRemoved
	o.stats.LastProcessed = scratch.LastProcessed
}

// Stats returns a copy of the cumulative counters.
func (o *Orchestrator) Stats() Stats {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.stats
}

// Configure applies option patches to the live configuration. The
// sanitizer is rebuilt so sanitizer options forwarded after construction
// take effect.
func (o *Orchestrator) Configure(opts ...Option) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, opt := range opts {
		opt(o)
	}
	o.sanitizer = sanitize.New(o.redactor, o.anon, o.sanitizerOpts...)
}

// Config returns a copy of the current configuration.
func (o *Orchestrator) Config() Config {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.cfg
}

// Reset clears cumulative statistics and every anonymization table.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	o.stats = Stats{}
	o.mu.Unlock()
	o.anon.Reset()
}
