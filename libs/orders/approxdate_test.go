package orders

import (
	"math"
	"testing"
	"time"
)

func TestParseApproxDate(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	nowMillis := now.UnixMilli()

	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{name: "just now", input: "Just now", want: nowMillis},
		{name: "a minute ago", input: "A minute ago", want: nowMillis - 60_000},
		{name: "one hour", input: "1 hour ago", want: nowMillis - 3_600_000},
		{name: "hour without count", input: "An hour ago", want: nowMillis - 3_600_000},
		{name: "plural hours", input: "3 hours ago", want: nowMillis - 10_800_000},
		{name: "yesterday", input: "Yesterday", want: nowMillis - 86_400_000},
		{name: "one day", input: "1 day ago", want: nowMillis - 86_400_000},
		{name: "plural days", input: "4 days ago", want: nowMillis - 4*86_400_000},
		{name: "one week", input: "1 week ago", want: nowMillis - 604_800_000},
		{name: "plural weeks", input: "2 weeks ago", want: nowMillis - 1_209_600_000},
		{name: "odd plural", input: "1 weeks ago", want: nowMillis - 604_800_000},
		{name: "absolute short month", input: "Feb 2, 2023", want: time.Date(2023, time.February, 2, 0, 0, 0, 0, time.UTC).UnixMilli()},
		{name: "absolute long month", input: "January 15, 2024", want: time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC).UnixMilli()},
		{name: "iso date", input: "2023-08-21", want: time.Date(2023, time.August, 21, 0, 0, 0, 0, time.UTC).UnixMilli()},
		{name: "garbage", input: "garbage", want: 0},
		{name: "empty", input: "", want: 0},
		{name: "today with clock", input: "Today, 11:59 AM", want: 0},
		{name: "plural minutes are not a rule", input: "59 minutes ago", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseApproxDate(tt.input, now); got != tt.want {
				t.Fatalf("ParseApproxDate(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseApproxDateSaturatesHugeCounts(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	nowMillis := now.UnixMilli()

	tests := []struct {
		input string
		unit  int64
	}{
		{input: "99999999999999 weeks ago", unit: weekMillis},
		{input: "99999999999999999999999 weeks ago", unit: weekMillis},
		{input: "999999999999999 days ago", unit: dayMillis},
		{input: "99999999999999999 hours ago", unit: hourMillis},
	}

	for _, tt := range tests {
		want := nowMillis - (math.MaxInt64/tt.unit)*tt.unit
		got := ParseApproxDate(tt.input, now)
		if got != want {
			t.Fatalf("ParseApproxDate(%q) = %d, want %d", tt.input, got, want)
		}
		if got >= ParseApproxDate("2 weeks ago", now) {
			t.Fatalf("ParseApproxDate(%q) = %d should sort before two weeks ago", tt.input, got)
		}
	}
}

func TestParseApproxDateRuleOrder(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	// "just now" wins over every later phrase in the same string.
	if got := ParseApproxDate("just now, not 3 hours ago", now); got != now.UnixMilli() {
		t.Fatalf("expected just-now rule to win, got %d", got)
	}
	// "yesterday" is checked before "day ago".
	if got := ParseApproxDate("yesterday, 2 days ago", now); got != now.UnixMilli()-86_400_000 {
		t.Fatalf("expected yesterday rule to win, got %d", got)
	}
	// Relative phrases never reach the absolute parser.
	if got := ParseApproxDate("2 hours ago Feb 2, 2023", now); got != now.UnixMilli()-7_200_000 {
		t.Fatalf("expected hour rule to win, got %d", got)
	}
}

func TestParseApproxDateUsesLocationOfNow(t *testing.T) {
	amsterdam, err := time.LoadLocation("Europe/Amsterdam")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, amsterdam)

	want := time.Date(2023, time.February, 2, 0, 0, 0, 0, amsterdam).UnixMilli()
	if got := ParseApproxDate("Feb 2, 2023", now); got != want {
		t.Fatalf("expected local midnight %d, got %d", want, got)
	}
}
