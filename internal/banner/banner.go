// Package banner formats the launch/finish announcements the parent
// worker prints to stdout, ported from the original's getOrdinalSuffix/
// getMonth helpers (§6, "CLI surface").
package banner

import (
	"fmt"
	"time"
)

var months = [...]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// Month returns the three-letter month abbreviation for t, or "" if t's
// month is somehow out of range.
func Month(t time.Time) string {
	m := int(t.Month()) - 1
	if m < 0 || m > 11 {
		return ""
	}
	return months[m]
}

// OrdinalSuffix returns the English ordinal suffix for a day-of-month
// value: 11th/12th/13th are "th" even though they end in 1/2/3.
func OrdinalSuffix(day int) string {
	if day < 11 || day > 13 {
		switch day % 10 {
		case 1:
			return "st"
		case 2:
			return "nd"
		case 3:
			return "rd"
		}
	}
	return "th"
}

// Line formats a single-line timestamped announcement in the original's
// "<name> <version> successfully <verb> at <Mon> <D><suffix> <Y> <H:M:S>"
// shape.
func Line(name, version, verb string, t time.Time) string {
	return fmt.Sprintf("%s %s successfully %s at %s %d%s %d %02d:%02d:%02d",
		name, version, verb,
		Month(t), t.Day(), OrdinalSuffix(t.Day()), t.Year(),
		t.Hour(), t.Minute(), t.Second(),
	)
}
