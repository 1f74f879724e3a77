package banner_test

import (
	"strings"
	"testing"
	"time"

	"github.com/t50io/t50/internal/banner"
)

func TestOrdinalSuffix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		day  int
		want string
	}{
		{1, "st"}, {2, "nd"}, {3, "rd"}, {4, "th"},
		{11, "th"}, {12, "th"}, {13, "th"},
		{21, "st"}, {22, "nd"}, {23, "rd"}, {24, "th"},
		{31, "st"},
	}

	for _, tt := range tests {
		if got := banner.OrdinalSuffix(tt.day); got != tt.want {
			t.Errorf("OrdinalSuffix(%d) = %q, want %q", tt.day, got, tt.want)
		}
	}
}

func TestMonth(t *testing.T) {
	t.Parallel()

	jan := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	if got := banner.Month(jan); got != "Jan" {
		t.Errorf("Month(January) = %q, want Jan", got)
	}

	dec := time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC)
	if got := banner.Month(dec); got != "Dec" {
		t.Errorf("Month(December) = %q, want Dec", got)
	}
}

func TestLineFormat(t *testing.T) {
	t.Parallel()

	ts := time.Date(2026, time.July, 31, 9, 5, 3, 0, time.UTC)
	line := banner.Line("t50", "1.0", "launched", ts)

	for _, want := range []string{"t50", "1.0", "successfully", "launched", "Jul", "31st", "2026", "09:05:03"} {
		if !strings.Contains(line, want) {
			t.Errorf("Line() = %q, missing %q", line, want)
		}
	}
}
