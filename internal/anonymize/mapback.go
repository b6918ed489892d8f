package anonymize

import "regexp"

// pseudonymRegex matches pseudonym-shaped tokens: an uppercase class name
// followed by an underscore and a counter, e.g. PERSON_3 or
// CONFERENCE_ROOM_12.
var pseudonymRegex = regexp.MustCompile(`\b[A-Z][A-Z_]*_\d+\b`)

// MapBack restores every known pseudonym inside an arbitrary decoded-JSON
// value. It recurses over the closed variant set produced by
// encoding/json: string, []any, map[string]any, and scalars. Strings may
// carry pseudonyms embedded in larger text; unknown tokens and
// non-pseudonym leaves pass through unchanged.
func (a *Anonymizer) MapBack(value any) any {
	switch v := value.(type) {
	case string:
		return a.mapBackString(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = a.MapBack(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = a.MapBack(item)
		}
		return out
	default:
		return value
	}
}

// MapBackString restores known pseudonyms inside a single string.
func (a *Anonymizer) MapBackString(s string) string {
	return a.mapBackString(s)
}

func (a *Anonymizer) mapBackString(s string) string {
	return pseudonymRegex.ReplaceAllStringFunc(s, func(token string) string {
		a.mu.Lock()
		original, ok := a.reverse[token]
		a.mu.Unlock()
		if !ok {
			return token
		}
		return original
	})
}
