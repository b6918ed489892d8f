package sanitize

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"

	"calshield/internal/event"
)

var (
	// handleRegex finds the token immediately preceding an @ sign.
	handleRegex = regexp.MustCompile(`([\w.%+-]+)@`)

	// pseudonymTokenRegex matches a complete pseudonym such as PERSON_3.
	pseudonymTokenRegex = regexp.MustCompile(`^[A-Z][A-Z_]*_\d+$`)

	phoneShapeRegex = regexp.MustCompile(`\+?\d{1,2}[-.\s]?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`)
	liveURLRegex    = regexp.MustCompile(`(?i)https?://`)
)

// ValidateSafety is the last line of defense before transmission: it
// walks every string leaf of a payload and flags residual emails, phone
// shapes, and live URLs. Anonymized handles (PERSON_n@ORG_m) pass. The
// payload is normalized through its JSON encoding, so any marshalable
// value can be checked.
func ValidateSafety(data any) event.SafetyReport {
	node, err := normalize(data)
	if err != nil {
		return event.SafetyReport{
			IsSafe: false,
			Issues: []string{fmt.Sprintf("payload is not inspectable: %v", err)},
		}
	}

	issues := []string{}
	walkStrings("$", node, &issues)
	return event.SafetyReport{IsSafe: len(issues) == 0, Issues: issues}
}

// normalize reduces any marshalable value to the closed decoded-JSON
// variant set {string, []any, map[string]any, scalar}.
func normalize(data any) (any, error) {
	switch data.(type) {
	case nil, string, bool, float64, []any, map[string]any:
		return data, nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var node any
	if err := json.Unmarshal(raw, &node); err != nil {
		return nil, err
	}
	return node, nil
}

func walkStrings(path string, node any, issues *[]string) {
	switch v := node.(type) {
	case string:
		checkString(path, v, issues)
	case []any:
		for i, item := range v {
			walkStrings(path+"["+strconv.Itoa(i)+"]", item, issues)
		}
	case map[string]any:
		for key, item := range v {
			walkStrings(path+"."+key, item, issues)
		}
	}
}

func checkString(path, s string, issues *[]string) {
	for _, match := range handleRegex.FindAllStringSubmatch(s, -1) {
		if !pseudonymTokenRegex.MatchString(match[1]) {
			*issues = append(*issues, fmt.Sprintf("%s: contains an unanonymized email or handle", path))
			break
		}
	}

	if phoneShapeRegex.MatchString(s) {
		*issues = append(*issues, fmt.Sprintf("%s: contains a phone-shaped number", path))
	}

	if liveURLRegex.MatchString(s) {
		*issues = append(*issues, fmt.Sprintf("%s: contains a live URL", path))
	}
}
