package occupancy

import (
	"strings"
	"time"
)

// CanonicalDateLayout is the only date form ever persisted.
const CanonicalDateLayout = "2006-01-02"

// Accepted input layouts, tried in order. The two-digit-year form must come
// first so "03/15/24" is not rejected by the four-digit parse.
var dateLayouts = []string{"01/02/06", "01/02/2006", "2006-01-02"}

// NormalizeDate converts raw date text into canonical YYYY-MM-DD form. Empty or
// whitespace-only input yields (nil, false): structurally absent, no warning.
// Text that matches none of the accepted layouts also yields nil, but with
// warned=true so callers can report the degraded field without failing.
func NormalizeDate(raw string) (date *string, warned bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			formatted := t.Format(CanonicalDateLayout)
			return &formatted, false
		}
	}

	return nil, true
}
