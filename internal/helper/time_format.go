package helper

import (
	"strings"
	"time"
)

var apiTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// ParseAPITime accepts the timestamp shapes the marketplace API emits.
// Timestamps without a zone are taken as UTC.
func ParseAPITime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range apiTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatMessageTime renders a message timestamp relative to now: a clock time
// inside 24 hours, the weekday inside 7 days, month and day otherwise.
func FormatMessageTime(t, now time.Time) string {
	t = t.In(now.Location())
	age := now.Sub(t)

	switch {
	case age < 24*time.Hour:
		return t.Format("15:04")
	case age < 7*24*time.Hour:
		return t.Weekday().String()
	default:
		return t.Format("Jan 2")
	}
}

func FormatAPITime(value string, now time.Time) string {
	t, ok := ParseAPITime(value)
	if !ok {
		return ""
	}
	return FormatMessageTime(t, now)
}
