package form

import (
	"fmt"
	"strings"
	"time"
)

// ParseDeadline parses a deadline in now's location. Accepted forms:
// "2006-01-02T15:04", "2006-01-02 15:04", RFC 3339, "2006-01-02",
// and today, tomorrow, nextweek or a weekday name. Dates without a time
// mean the end of that day.
func ParseDeadline(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	loc := now.Location()

	if t, ok := parseNaturalDate(strings.ToLower(s), now); ok {
		return t, nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{DateTimeLayout, "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	if t, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		return endOfDay(t), nil
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDeadline, s)
}

// FormatDeadline renders a deadline for an edit field.
func FormatDeadline(d *time.Time, loc *time.Location) string {
	if d == nil {
		return ""
	}
	return d.In(loc).Format(DateTimeLayout)
}

func parseNaturalDate(s string, now time.Time) (time.Time, bool) {
	today := endOfDay(now)

	switch s {
	case "today":
		return today, true
	case "tomorrow", "tom":
		return today.AddDate(0, 0, 1), true
	case "nextweek":
		return today.AddDate(0, 0, 7), true
	}

	weekdays := map[string]time.Weekday{
		"monday": time.Monday, "mon": time.Monday,
		"tuesday": time.Tuesday, "tue": time.Tuesday,
		"wednesday": time.Wednesday, "wed": time.Wednesday,
		"thursday": time.Thursday, "thu": time.Thursday,
		"friday": time.Friday, "fri": time.Friday,
		"saturday": time.Saturday, "sat": time.Saturday,
		"sunday": time.Sunday, "sun": time.Sunday,
	}
	day, ok := weekdays[s]
	if !ok {
		return time.Time{}, false
	}

	daysUntil := int(day - now.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return today.AddDate(0, 0, daysUntil), true
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 0, 0, t.Location())
}
