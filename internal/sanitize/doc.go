// Package sanitize transforms raw calendar events into shapes that are
// safe to transmit externally.
//
// SanitizeEvent runs a fixed per-event pipeline: credential redaction,
// attendee and organizer pseudonymization, text rewriting (project codes,
// ticket references, sensitive keywords, capitalized phrases), location
// anonymization, extended-property filtering, and opaque id replacement.
// Start, end, and recurrence pass through untouched so scheduling
// semantics survive exactly.
//
// CreateMinimalSafeData produces the allow-listed projection that is the
// only payload ever sent to the AI collaborator, and ValidateSafety
// re-checks any outgoing payload for residual emails, phone numbers, and
// live URLs.
package sanitize
