package orders

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	minuteMillis = int64(60 * 1000)
	hourMillis   = 60 * minuteMillis
	dayMillis    = 24 * hourMillis
	weekMillis   = 7 * dayMillis
)

var (
	hourCountPattern = regexp.MustCompile(`(\d+)\s*hour`)
	dayCountPattern  = regexp.MustCompile(`(\d+)\s*day`)
	weekCountPattern = regexp.MustCompile(`(\d+)\s*week`)

	absoluteDateLayouts = []string{
		"Jan 2, 2006",
		"January 2, 2006",
		"Jan 2 2006",
		"January 2 2006",
		"2 Jan 2006",
		"2 January 2006",
		"Jan 2, 2006 3:04 PM",
		"2006-01-02",
		"2006-01-02 15:04",
		"2006-01-02T15:04:05",
		time.RFC3339,
		"01/02/2006",
		"1/2/2006",
	}
)

// ParseApproxDate turns a display date ("Just now", "3 hours ago", "Feb 2, 2023") into Unix
// milliseconds relative to now. Anything it cannot read maps to 0 so it sorts first.
//
// The rules are tried in a fixed order and the first hit wins; relative phrases are matched
// before the absolute parser ever sees the string.
func ParseApproxDate(s string, now time.Time) int64 {
	lower := strings.ToLower(s)
	nowMillis := now.UnixMilli()

	switch {
	case strings.Contains(lower, "just now"):
		return nowMillis
	case strings.Contains(lower, "minute ago"):
		return nowMillis - minuteMillis
	case strings.Contains(lower, "hour ago"), strings.Contains(lower, "hours ago"):
		return nowMillis - relativeMillis(hourCountPattern, lower, hourMillis)
	case strings.Contains(lower, "yesterday"):
		return nowMillis - dayMillis
	case strings.Contains(lower, "day ago"), strings.Contains(lower, "days ago"):
		return nowMillis - relativeMillis(dayCountPattern, lower, dayMillis)
	case strings.Contains(lower, "week ago"), strings.Contains(lower, "weeks ago"):
		return nowMillis - relativeMillis(weekCountPattern, lower, weekMillis)
	}

	if parsed, ok := parseAbsoluteDate(s, now.Location()); ok {
		return parsed.UnixMilli()
	}
	return 0
}

// relativeMillis is the count before the unit word times the unit. Counts too large for int64
// saturate, so absurd phrases sort as the oldest possible relative date.
func relativeMillis(pattern *regexp.Regexp, lower string, unit int64) int64 {
	return min(leadingCount(pattern, lower), math.MaxInt64/unit) * unit
}

// leadingCount reads the integer written right before the unit word, defaulting to 1.
func leadingCount(pattern *regexp.Regexp, lower string) int64 {
	match := pattern.FindStringSubmatch(lower)
	if match == nil {
		return 1
	}
	n, err := strconv.ParseInt(match[1], 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		return math.MaxInt64
	}
	if err != nil {
		return 1
	}
	return n
}

func parseAbsoluteDate(s string, loc *time.Location) (time.Time, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range absoluteDateLayouts {
		if parsed, err := time.ParseInLocation(layout, trimmed, loc); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
