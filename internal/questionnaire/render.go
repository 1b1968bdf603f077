package questionnaire

import (
	"fmt"
	"strings"
)

// Dash is the placeholder shown for missing or blank answers.
const Dash = "—"

// RenderAnswer flattens a stored answer value into the string shown in
// tables and reports. Multi-select answers join with ", "; anything blank
// renders as Dash.
func RenderAnswer(v any) string {
	switch x := v.(type) {
	case nil:
		return Dash
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return Dash
		}
		return s
	case []string:
		if len(x) == 0 {
			return Dash
		}
		return strings.Join(x, ", ")
	case []any:
		if len(x) == 0 {
			return Dash
		}
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = fmt.Sprintf("%v", e)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", x)
	}
}

// FreeText reports whether a question id is excluded from change
// highlighting: notes, header fields and the workstation photo vary
// legitimately between answers.
func FreeText(id string) bool {
	return strings.Contains(id, "_note") ||
		strings.HasPrefix(id, "meta_") ||
		id == PhotoQuestionID
}
