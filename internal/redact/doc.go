// Package redact strips conferencing credentials from calendar text.
//
// The redactor applies an ordered list of pure text recognizers: Zoom,
// Teams, Meet, and Webex join grammars first, then spelled-out credential
// grammars (meeting IDs, passcodes, access codes), then dial-in phone and
// URL catch-alls. Matches become fixed markers and whole lines that carry
// joining credentials are dropped.
//
//	r := redact.New()
//	clean := r.RedactConferenceArtifacts(description)
//	loc := r.SanitizeLocationField(location)
//
// All functions are pure and never panic; empty input passes through
// unchanged.
package redact
