package contract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Define the regular expression to capture "N [units] ago"
// e.g., "2 years ago", "3 months ago", "1 week ago".
var relativeTimeRe = regexp.MustCompile(`^(\d+)\s+(year|month|week|day|hour|minute)s?\s+ago$`)

// ParseRelativeTime converts strings like "2 years ago" into a time.Time before now.
func ParseRelativeTime(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	matches := relativeTimeRe.FindStringSubmatch(s)

	if len(matches) == 0 {
		return time.Time{}, fmt.Errorf("invalid relative time format: %s", s)
	}

	// 1: Value (e.g., "2")
	// 2: Unit (e.g., "year" or "month")
	value, err := strconv.Atoi(matches[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid relative time value: %s", matches[1])
	}

	switch matches[2] {
	case "year":
		return now.AddDate(-value, 0, 0), nil
	case "month":
		return now.AddDate(0, -value, 0), nil
	case "week":
		return now.AddDate(0, 0, -7*value), nil
	case "day":
		return now.AddDate(0, 0, -value), nil
	case "hour":
		return now.Add(time.Duration(-value) * time.Hour), nil
	default: // "minute"
		return now.Add(time.Duration(-value) * time.Minute), nil
	}
}
