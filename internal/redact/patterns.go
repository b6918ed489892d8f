package redact

import (
	"regexp"
)

// Markers substituted for removed conference artifacts. Validators treat
// text containing only these markers as safe.
const (
	MeetingInfoMarker = "[MEETING_INFO_REMOVED]"
	PhoneMarker       = "[PHONE_REMOVED]"
)

// Rule is a single text-to-text recognizer. Rules are folded over the
// input left to right; order matters because provider-specific grammars
// must win before the generic catch-alls.
type Rule struct {
	Name        string
	Regex       *regexp.Regexp
	Replacement string
	Description string
}

var (
	// Zoom join links with a numeric meeting ID, optionally carrying a
	// pwd query parameter: https://company.zoom.us/j/87654321098?pwd=...
	zoomJoinRegex = regexp.MustCompile(`(?i)\bhttps?://[\w.-]*zoom\.us/(?:j|my|s)/[^\s<>"]+`)

	// Spelled-out Zoom credentials: "Meeting ID: 876 5432 1098",
	// "Passcode: phoenix2024"
	meetingIDRegex = regexp.MustCompile(`(?i)\bmeeting\s*id:?\s*[\d][\d\s-]{4,}\d`)
	passcodeRegex  = regexp.MustCompile(`(?i)\bpass(?:code|word):?\s*\S+`)

	// Teams meetup-join deep links
	teamsJoinRegex = regexp.MustCompile(`(?i)\bhttps?://teams\.(?:microsoft|live)\.com/(?:l/meetup-join|meet)/[^\s<>"]+`)

	// Google Meet short-slug links: https://meet.google.com/abc-defg-hij
	meetSlugRegex = regexp.MustCompile(`(?i)\bhttps?://meet\.google\.com/[a-z]{3}-[a-z]{4}-[a-z]{3}[^\s<>"]*`)

	// Webex links and spelled-out credentials: "Meeting number: 2345 678
	// 9012", "Access code: 2345 678 9012"
	webexJoinRegex   = regexp.MustCompile(`(?i)\bhttps?://[\w.-]*webex\.com/[^\s<>"]+`)
	meetingNumRegex  = regexp.MustCompile(`(?i)\bmeeting\s*number:?\s*[\d][\d\s-]{4,}\d`)
	accessCodeRegex  = regexp.MustCompile(`(?i)\baccess\s*code:?\s*[\d][\d\s#*-]{3,}`)
	conferenceIDExpr = regexp.MustCompile(`(?i)\bconference\s*id:?\s*[\d][\d\s#*-]{3,}`)

	// Dial-in phone numbers: +1-555-123-4567, (555) 123-4567, +44 20 7946 0958
	dialInRegex = regexp.MustCompile(`(?i)(?:\bdial[\s-]?in[^:\n]*:?\s*)?\+?\d{1,3}[-.\s]?\(?\d{2,4}\)?[-.\s]?\d{3,4}[-.\s]?\d{3,4}\b`)

	// Generic URL catch-all, last so provider grammars win first. Common
	// scheme typos (htp://, htps://) are matched on purpose so a mangled
	// join link cannot slip through.
	genericURLRegex = regexp.MustCompile(`(?i)\b(?:https?|htps?)://[^\s<>"]+`)

	// Line-level credential detection
	credentialDigitsRegex = regexp.MustCompile(`(?:\d[\s-]?){6,}`)
	labelValueRegex       = regexp.MustCompile(`^\s*[\w][\w\s()-]*:\s*\S+`)
)

// credentialKeywords mark a line as carrying joining credentials when
// combined with a credential-bearing shape (digit run, label: value, or a
// bare URL). Matching is against the lowercased line.
var credentialKeywords = []string{
	"meeting id",
	"passcode",
	"password",
	"access code",
	"conference id",
	"dial-in",
	"pin",
	"security code",
	"host key",
}

// ConferenceRules is the ordered recognizer list applied by
// RedactConferenceArtifacts. Provider-specific grammars come first, then
// spelled-out credential grammars, then the phone and URL catch-alls.
var ConferenceRules = []Rule{
	{Name: "zoom_join", Regex: zoomJoinRegex, Replacement: MeetingInfoMarker, Description: "Zoom join links"},
	{Name: "teams_join", Regex: teamsJoinRegex, Replacement: MeetingInfoMarker, Description: "Teams meetup-join links"},
	{Name: "meet_slug", Regex: meetSlugRegex, Replacement: MeetingInfoMarker, Description: "Google Meet short-slug links"},
	{Name: "webex_join", Regex: webexJoinRegex, Replacement: MeetingInfoMarker, Description: "Webex join links"},
	{Name: "meeting_id", Regex: meetingIDRegex, Replacement: MeetingInfoMarker, Description: "Spelled-out meeting IDs"},
	{Name: "meeting_number", Regex: meetingNumRegex, Replacement: MeetingInfoMarker, Description: "Spelled-out meeting numbers"},
	{Name: "access_code", Regex: accessCodeRegex, Replacement: MeetingInfoMarker, Description: "Access codes"},
	{Name: "conference_id", Regex: conferenceIDExpr, Replacement: MeetingInfoMarker, Description: "Conference IDs"},
	{Name: "passcode", Regex: passcodeRegex, Replacement: MeetingInfoMarker, Description: "Passcodes and passwords"},
	{Name: "dial_in", Regex: dialInRegex, Replacement: PhoneMarker, Description: "Dial-in and phone numbers"},
	{Name: "generic_url", Regex: genericURLRegex, Replacement: MeetingInfoMarker, Description: "Remaining URLs"},
}
