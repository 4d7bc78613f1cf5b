package core

import (
	"strings"
	"time"
)

// dateLayouts are tried in order when a cell holds date text. Values without a
// zone are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.DateOnly,
	"2006-1-2",
	"2006/01/02",
	"2006/01/02 15:04:05",
	"01/02/2006",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"1/2/2006",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"02-Jan-2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// parseDate coerces a cell to a time. Unparseable and null cells report false,
// which callers treat as a missing date.
func parseDate(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, !x.IsZero()
	case *time.Time:
		if x == nil || x.IsZero() {
			return time.Time{}, false
		}
		return *x, true
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// hoursBetween returns b - a in fractional hours.
func hoursBetween(a, b time.Time) float64 {
	return b.Sub(a).Hours()
}
