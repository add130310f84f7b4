package question

import "fmt"

// FormatResponse renders the current response for display, or "" when unset.
func FormatResponse(q Question) string {
	v, ok := q.Response()
	if !ok {
		return ""
	}
	switch u := Unwrap(q).(type) {
	case Alternative:
		if s, ok := v.(string); ok {
			return u.LabelFor(s)
		}
	case Slider:
		if f, ok := v.(float64); ok {
			if l := u.Label(f); l != "" {
				return fmt.Sprintf("%s (%s)", formatFloat(f), l)
			}
			return formatFloat(f)
		}
	case Number:
		if f, ok := v.(float64); ok {
			return formatFloat(f)
		}
	}
	return fmt.Sprint(v)
}
