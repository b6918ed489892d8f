package protect

import "strings"

// labelRule maps a lowercase keyword or phrase found in a sanitized
// summary to a generic label.
type labelRule struct {
	match string
	label string
}

// Multi-word patterns are checked before single-word fallbacks so
// "sprint planning" resolves to a planning label rather than whatever
// "sprint" alone would imply.
var multiWordLabels = []labelRule{
	{"one on one", "One-on-One"},
	{"one-on-one", "One-on-One"},
	{"1:1", "One-on-One"},
	{"all hands", "All Hands"},
	{"town hall", "All Hands"},
	{"office hours", "Office Hours"},
	{"sprint planning", "Planning Session"},
	{"sprint review", "Review Session"},
	{"sprint retrospective", "Retrospective"},
	{"code review", "Review Session"},
	{"design review", "Review Session"},
	{"performance review", "Review Session"},
	{"project review", "Review Session"},
	{"status update", "Status Update"},
	{"happy hour", "Social Event"},
	{"team lunch", "Social Event"},
	{"coffee chat", "Social Event"},
	{"lunch and learn", "Training"},
	{"focus time", "Focus Time"},
}

var singleWordLabels = []labelRule{
	{"standup", "Team Sync"},
	{"sync", "Team Sync"},
	{"scrum", "Team Sync"},
	{"retrospective", "Retrospective"},
	{"retro", "Retrospective"},
	{"planning", "Planning Session"},
	{"review", "Review Session"},
	{"interview", "Interview"},
	{"screening", "Interview"},
	{"demo", "Presentation"},
	{"presentation", "Presentation"},
	{"training", "Training"},
	{"onboarding", "Training"},
	{"workshop", "Training"},
	{"lunch", "Social Event"},
	{"dinner", "Social Event"},
	{"breakfast", "Social Event"},
	{"focus", "Focus Time"},
}

// defaultSummaryLabel is used when no pattern matches.
const defaultSummaryLabel = "Meeting"

// CollapseSummary reduces a sanitized summary to a fixed generic label.
// Multi-word patterns win before single-word fallbacks; the first match
// in order decides.
func CollapseSummary(summary string) string {
	lower := strings.ToLower(summary)

	for _, rule := range multiWordLabels {
		if strings.Contains(lower, rule.match) {
			return rule.label
		}
	}
	for _, rule := range singleWordLabels {
		if strings.Contains(lower, rule.match) {
			return rule.label
		}
	}
	return defaultSummaryLabel
}
