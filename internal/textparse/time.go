package textparse

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Duration parses "M:SS" or "H:MM:SS" into seconds.
func Duration(s string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}

	total := 0
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, false
		}
		total = total*60 + n
	}
	return total, true
}

var relativeTime = regexp.MustCompile(`^(\d+)\s+(second|minute|hour|day|week|month|year)s?\s+ago$`)

// Months and years are approximated as 30 and 365 days.
var relativeUnits = map[string]time.Duration{
	"second": time.Second,
	"minute": time.Minute,
	"hour":   time.Hour,
	"day":    24 * time.Hour,
	"week":   7 * 24 * time.Hour,
	"month":  30 * 24 * time.Hour,
	"year":   365 * 24 * time.Hour,
}

// RelativeTime converts "<n> <unit>[s] ago" into an absolute time relative to
// now. Matching is case-insensitive and ignores surrounding whitespace.
func RelativeTime(s string, now time.Time) (time.Time, bool) {
	m := relativeTime.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil {
		return time.Time{}, false
	}

	n, err := strconv.ParseInt(m[1], 10, 64)
	unit := relativeUnits[m[2]]
	if err != nil || n > math.MaxInt64/int64(unit) {
		return time.Time{}, false
	}
	return now.Add(-time.Duration(n) * unit), true
}

// JoinedDate parses the about page's "Joined Feb 19, 2012" into midnight UTC of
// that day. The "Joined " prefix is optional.
func JoinedDate(s string) (time.Time, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "Joined ")
	t, err := time.Parse("Jan 2, 2006", s)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}
