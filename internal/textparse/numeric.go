// Package textparse turns the display strings of the upstream API into numbers
// and timestamps. Every parser is total: malformed input yields the zero value
// or a false ok flag, never an error.
package textparse

import (
	"math"
	"strconv"
	"strings"
)

// Numeric parses the first whitespace-separated token of s as an integer,
// ignoring thousands separators. "1,234 views" -> 1234, "abc" -> 0.
func Numeric(s string) int64 {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0
	}

	n, err := strconv.ParseInt(strings.ReplaceAll(fields[0], ",", ""), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

var multipliers = map[byte]float64{
	'K': 1e3,
	'M': 1e6,
	'B': 1e9,
}

// Multiplied parses abbreviated counts such as "1.5K" or "2M". Values without
// a suffix are parsed as plain integers.
func Multiplied(s string) int64 {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0
	}
	token := fields[0]

	mult, ok := multipliers[token[len(token)-1]]
	if !ok {
		n, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return 0
		}
		return n
	}

	v, err := strconv.ParseFloat(token[:len(token)-1], 64)
	if err != nil {
		return 0
	}
	return int64(math.Round(v * mult))
}

// ViewCount interprets a video's view-count text. present reports whether the
// upstream sent the text at all; a missing text means the count is hidden.
func ViewCount(text string, present bool) (views int64, hidden bool) {
	if !present {
		return 0, true
	}

	text = strings.TrimSpace(text)
	if text == "No views" {
		return 0, false
	}
	return Numeric(strings.TrimSuffix(text, " views")), false
}
