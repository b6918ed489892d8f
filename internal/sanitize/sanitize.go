package sanitize

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"calshield/internal/anonymize"
	"calshield/internal/event"
	"calshield/internal/redact"
)

// Sanitizer transforms raw calendar events into their sanitized form. It
// delegates credential removal to a Redactor and identity replacement to
// an Anonymizer; both are injected so the caller controls their scope.
type Sanitizer struct {
	redactor       *redact.Redactor
	anon           *anonymize.Anonymizer
	keywordRegex   *regexp.Regexp
	allowedPhrases map[string]bool
}

// Option configures a Sanitizer.
type Option func(*Sanitizer)

// WithSensitiveKeywords overrides the default keyword list stripped from
// summaries and descriptions.
func WithSensitiveKeywords(keywords []string) Option {
	return func(s *Sanitizer) {
		s.keywordRegex = buildKeywordRegex(keywords)
	}
}

// WithAllowedPhrases overrides the allow-list of generic meeting-type
// phrases that survive the capitalized-phrase anonymization.
func WithAllowedPhrases(phrases []string) Option {
	return func(s *Sanitizer) {
		s.allowedPhrases = buildPhraseSet(phrases)
	}
}

// New creates a Sanitizer around the given redactor and anonymizer.
func New(redactor *redact.Redactor, anon *anonymize.Anonymizer, opts ...Option) *Sanitizer {
	s := &Sanitizer{
		redactor:       redactor,
		anon:           anon,
		keywordRegex:   buildKeywordRegex(DefaultSensitiveKeywords()),
		allowedPhrases: buildPhraseSet(DefaultAllowedPhrases()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultSensitiveKeywords returns the keywords stripped from event text
// before transmission.
func DefaultSensitiveKeywords() []string {
	return []string{
		"confidential",
		"secret",
		"classified",
		"internal only",
		"private",
		"sensitive",
		"restricted",
		"nda",
		"acquisition",
		"merger",
		"layoff",
		"salary",
		"compensation",
		"termination",
		"lawsuit",
	}
}

// DefaultAllowedPhrases returns generic meeting-type phrases that keep
// their literal text so routine meetings stay recognizable downstream.
func DefaultAllowedPhrases() []string {
	return []string{
		"Team Meeting",
		"Staff Meeting",
		"Weekly Sync",
		"Daily Standup",
		"Morning Standup",
		"Sprint Planning",
		"Sprint Review",
		"Sprint Retrospective",
		"All Hands",
		"Town Hall",
		"Office Hours",
		"One On One",
		"Happy Hour",
		"Lunch And Learn",
		"Code Review",
		"Design Review",
		"Status Update",
		"Coffee Chat",
		"Focus Time",
		"Project Review",
	}
}

var (
	// Project-code-shaped tokens: ABC-1234, INFRA-42019
	projectCodeRegex = regexp.MustCompile(`\b[A-Z]{2,4}-\d{3,6}\b`)

	// Ticket, PR, issue, and bug references
	ticketRefRegex = regexp.MustCompile(`(?i)\b(?:ticket|issue|bug|pr|case)\s*#?\d+\b`)

	// Capitalized multi-word phrases: two or more capitalized words in a row
	multiWordPhraseRegex = regexp.MustCompile(`\b[A-Z][A-Za-z0-9'&.-]*(?: [A-Z][A-Za-z0-9'&.-]*)+\b`)

	whitespaceRegex = regexp.MustCompile(`[ \t]+`)

	emailShapeRegex = regexp.MustCompile(`[\w.%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	longDigitRegex  = regexp.MustCompile(`\d{6,}`)
)

// SanitizeEvent runs the full per-event pipeline. Scheduling semantics
// (start, end, recurrence) survive exactly; every identity is
// pseudonymized and every credential removed. Missing sub-fields are
// tolerated throughout.
func (s *Sanitizer) SanitizeEvent(ev event.CalendarEvent) event.SanitizedEvent {
	out := event.SanitizedEvent{
		ID:           uuid.NewString(),
		Start:        ev.Start,
		End:          ev.End,
		Recurrence:   ev.Recurrence,
		Status:       ev.Status,
		Transparency: ev.Transparency,
		Metadata:     s.buildMetadata(ev),
	}
	if ev.ICalUID != "" {
		out.ICalUID = uuid.NewString()
	}

	summary := s.redactor.RedactConferenceArtifacts(ev.Summary)
	description := s.redactor.RedactConferenceArtifacts(ev.Description)
	out.Summary = s.RewriteText(summary)
	out.Description = s.RewriteText(description)

	if len(ev.Attendees) > 0 {
		out.Attendees = make([]event.Person, len(ev.Attendees))
		for i, att := range ev.Attendees {
			out.Attendees[i] = s.anonymizeAttendee(att)
		}
	}
	out.Creator = s.anonymizeOrganizerField(ev.Creator)
	out.Organizer = s.anonymizeOrganizerField(ev.Organizer)

	cleaned := s.redactor.SanitizeLocationField(ev.Location)
	if cleaned != "" {
		out.Location = s.anon.Location(cleaned)
	}

	out.ConferenceData = s.redactor.SanitizeConferenceBlock(ev.ConferenceData)
	// HangoutLink is a deep link and is dropped by omission.

	out.ExtendedProperties = s.filterExtendedProperties(ev.ExtendedProperties)

	return out
}

// RewriteText pseudonymizes embedded email addresses, strips project
// codes, ticket references, and sensitive keywords, then replaces
// remaining capitalized multi-word phrases with project pseudonyms.
// Allow-listed generic phrases keep their text.
func (s *Sanitizer) RewriteText(text string) string {
	if text == "" {
		return text
	}

	result := emailShapeRegex.ReplaceAllStringFunc(text, func(addr string) string {
		at := strings.LastIndex(addr, "@")
		name := s.anon.Person(addr, "")
		return name + "@" + s.anon.Organization(addr[at+1:])
	})

	result = projectCodeRegex.ReplaceAllString(result, "")
	result = ticketRefRegex.ReplaceAllString(result, "")
	if s.keywordRegex != nil {
		result = s.keywordRegex.ReplaceAllString(result, "")
	}

	result = multiWordPhraseRegex.ReplaceAllStringFunc(result, func(phrase string) string {
		if s.allowedPhrases[normalizePhrase(phrase)] {
			return phrase
		}
		return s.anon.Project(phrase)
	})

	result = whitespaceRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// anonymizeAttendee rebuilds an attendee from scratch: pseudonymous
// display name and a pseudonymous email of the form PERSON_n@ORG_m.
func (s *Sanitizer) anonymizeAttendee(p event.Person) event.Person {
	name := s.anon.Person(p.Email, p.DisplayName)
	out := event.Person{
		DisplayName:    name,
		ResponseStatus: p.ResponseStatus,
		Optional:       p.Optional,
	}
	if at := strings.LastIndex(p.Email, "@"); at >= 0 && at < len(p.Email)-1 {
		out.Email = name + "@" + s.anon.Organization(p.Email[at+1:])
	}
	return out
}

// anonymizeOrganizerField handles creator/organizer, which additionally
// preserve the self flag.
func (s *Sanitizer) anonymizeOrganizerField(p *event.Person) *event.Person {
	if p == nil {
		return nil
	}
	out := s.anonymizeAttendee(*p)
	out.Self = p.Self
	return &out
}

// filterExtendedProperties drops the private block entirely and keeps
// shared values only when they fail every sensitivity heuristic.
func (s *Sanitizer) filterExtendedProperties(props *event.ExtendedProperties) *event.ExtendedProperties {
	if props == nil || len(props.Shared) == 0 {
		return nil
	}

	shared := make(map[string]string)
	for k, v := range props.Shared {
		if s.looksSensitiveValue(v) {
			continue
		}
		shared[k] = v
	}
	if len(shared) == 0 {
		return nil
	}
	return &event.ExtendedProperties{Shared: shared}
}

// looksSensitiveValue applies the shared-property heuristics: email,
// phone, or URL shape, a long digit run, or a sensitive keyword or
// project-code pattern.
func (s *Sanitizer) looksSensitiveValue(v string) bool {
	if v == "" {
		return false
	}
	if emailShapeRegex.MatchString(v) {
		return true
	}
	if longDigitRegex.MatchString(v) {
		return true
	}
	if projectCodeRegex.MatchString(v) {
		return true
	}
	if s.redactor.IsSensitive(v) {
		return true
	}
	return s.keywordRegex != nil && s.keywordRegex.MatchString(v)
}

func (s *Sanitizer) buildMetadata(ev event.CalendarEvent) event.EventMetadata {
	meta := event.EventMetadata{
		DurationMinutes: CalculateDuration(ev.Start, ev.End),
		AttendeeCount:   len(ev.Attendees),
		HasAttendees:    len(ev.Attendees) > 0,
		IsAllDay:        ev.Start.IsAllDay(),
		IsRecurring:     len(ev.Recurrence) > 0,
		DayOfWeek:       dayOfWeek(ev.Start),
	}
	return meta
}

func buildKeywordRegex(keywords []string) *regexp.Regexp {
	cleaned := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		cleaned = append(cleaned, regexp.QuoteMeta(kw))
	}
	if len(cleaned) == 0 {
		return nil
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(cleaned, `|`) + `)\b`)
}

func buildPhraseSet(phrases []string) map[string]bool {
	set := make(map[string]bool, len(phrases))
	for _, p := range phrases {
		set[normalizePhrase(p)] = true
	}
	return set
}

func normalizePhrase(p string) string {
	return strings.ToLower(strings.Join(strings.Fields(p), " "))
}
