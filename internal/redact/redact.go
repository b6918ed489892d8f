package redact

import (
	"regexp"
	"strings"

	"calshield/internal/event"
)

// Redactor removes conferencing credentials and joinable artifacts from
// free text. All methods are pure and total: absent input comes back
// unchanged and nothing ever panics.
type Redactor struct {
	rules []Rule
}

// New creates a Redactor using the built-in ordered rule set.
func New() *Redactor {
	return &Redactor{rules: ConferenceRules}
}

// NewWithRules creates a Redactor with a custom ordered rule set. An
// empty set falls back to the built-in rules.
func NewWithRules(rules []Rule) *Redactor {
	if len(rules) == 0 {
		rules = ConferenceRules
	}
	return &Redactor{rules: rules}
}

// One collapse pattern per marker: runs of the same marker fold to a
// single occurrence. Runs of different markers are left alone.
var markerRuns = []struct {
	regex  *regexp.Regexp
	marker string
}{
	{collapseRuns(MeetingInfoMarker), MeetingInfoMarker},
	{collapseRuns(PhoneMarker), PhoneMarker},
}

func collapseRuns(marker string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(marker)
	return regexp.MustCompile(quoted + `(\s*` + quoted + `)+`)
}

// RedactConferenceArtifacts drops whole lines that carry joining
// credentials, replaces every remaining recognized artifact with a fixed
// marker, collapses runs of identical markers, and trims the result.
func (r *Redactor) RedactConferenceArtifacts(text string) string {
	result, _ := r.RedactAndCount(text)
	return result
}

// RedactAndCount behaves like RedactConferenceArtifacts and also reports
// how many artifacts were removed. Dropped credential lines count once
// each.
func (r *Redactor) RedactAndCount(text string) (string, int) {
	if text == "" {
		return text, 0
	}

	// Credential lines are dropped before the recognizers run so the
	// keyword is still visible on the line.
	result, count := splitCredentialLines(text)

	for _, rule := range r.rules {
		matches := rule.Regex.FindAllString(result, -1)
		count += len(matches)
		result = rule.Regex.ReplaceAllString(result, rule.Replacement)
	}

	for _, run := range markerRuns {
		result = run.regex.ReplaceAllString(result, run.marker)
	}

	return strings.TrimSpace(result), count
}

// SanitizeLocationField redacts a location string, falling back to the
// literal "Virtual Meeting" when the result is empty or still looks like
// it carries joining details. An empty location stays empty.
func (r *Redactor) SanitizeLocationField(location string) string {
	if location == "" {
		return location
	}

	result := r.RedactConferenceArtifacts(location)
	if result == "" || containsMarker(result) || looksCredentialBearing(strings.ToLower(result)) {
		return "Virtual Meeting"
	}
	return result
}

// SanitizeConferenceBlock replaces a structured conference block with a
// placeholder carrying no joinable details. Nil passes through.
func (r *Redactor) SanitizeConferenceBlock(conf *event.ConferenceData) *event.ConferenceData {
	if conf == nil {
		return nil
	}
	return &event.ConferenceData{
		Type:  "VIRTUAL_MEETING",
		Notes: "details removed",
	}
}

// IsSensitive reports whether text still matches any recognizer rule.
// Markers themselves are not sensitive.
func (r *Redactor) IsSensitive(text string) bool {
	if text == "" {
		return false
	}
	for _, rule := range r.rules {
		if rule.Regex.MatchString(text) {
			return true
		}
	}
	return false
}

// splitCredentialLines removes whole lines that contain a credential
// keyword and look credential-bearing, returning the kept text and the
// number of dropped lines.
func splitCredentialLines(text string) (string, int) {
	if !strings.Contains(text, "\n") {
		if isCredentialLine(text) {
			return "", 1
		}
		return text, 0
	}

	lines := strings.Split(text, "\n")
	kept := lines[:0]
	dropped := 0
	for _, line := range lines {
		if isCredentialLine(line) {
			dropped++
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n"), dropped
}

// isCredentialLine reports whether a single line carries joining
// credentials: a credential keyword plus a credential-bearing shape.
func isCredentialLine(line string) bool {
	lower := strings.ToLower(line)

	keyword := false
	for _, kw := range credentialKeywords {
		if strings.Contains(lower, kw) {
			keyword = true
			break
		}
	}
	if !keyword {
		return false
	}

	return looksCredentialBearing(lower)
}

// looksCredentialBearing reports whether lowercased text has a 6+ digit
// run, a "label: value" shape, or a bare URL.
func looksCredentialBearing(lower string) bool {
	if credentialDigitsRegex.MatchString(lower) {
		return true
	}
	if labelValueRegex.MatchString(lower) {
		return true
	}
	return strings.Contains(lower, "://")
}

func containsMarker(text string) bool {
	return strings.Contains(text, MeetingInfoMarker) || strings.Contains(text, PhoneMarker)
}
