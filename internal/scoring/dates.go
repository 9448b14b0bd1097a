package scoring

import (
	"fmt"
	"time"
)

// DateLayout is the ISO calendar-day format used for every stored date.
const DateLayout = "2006-01-02"

// ParseDate parses an ISO date into midnight UTC of that calendar day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// FormatDate renders the calendar day of t in t's own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DaysBetween returns b minus a in whole calendar days.
func DaysBetween(a, b string) (int, error) {
	ta, err := ParseDate(a)
	if err != nil {
		return 0, err
	}
	tb, err := ParseDate(b)
	if err != nil {
		return 0, err
	}
	// Both values sit at UTC midnight, so the difference is an exact multiple of 24h.
	return int(tb.Sub(ta).Hours() / 24), nil
}

// AddDays shifts an ISO date by n calendar days.
func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return FormatDate(t.AddDate(0, 0, n)), nil
}

// IsSameDay reports whether a and b name the same calendar day.
func IsSameDay(a, b string) (bool, error) {
	d, err := DaysBetween(a, b)
	if err != nil {
		return false, err
	}
	return d == 0, nil
}

// IsPreviousDay reports whether day is exactly one calendar day before ref.
func IsPreviousDay(day, ref string) (bool, error) {
	d, err := DaysBetween(day, ref)
	if err != nil {
		return false, err
	}
	return d == 1, nil
}

// WeekStart returns the Monday of the week containing date.
func WeekStart(date string) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	// time.Weekday counts from Sunday; shift so Monday is 0.
	back := (int(t.Weekday()) + 6) % 7
	return FormatDate(t.AddDate(0, 0, -back)), nil
}

// WeekBounds returns the Monday and Sunday of the week containing today,
// moved by offsetWeeks whole weeks (negative looks back).
func WeekBounds(clock Clock, offsetWeeks int) (start, end string, err error) {
	monday, err := WeekStart(clock.Today())
	if err != nil {
		return "", "", err
	}
	if start, err = AddDays(monday, offsetWeeks*7); err != nil {
		return "", "", err
	}
	if end, err = AddDays(start, 6); err != nil {
		return "", "", err
	}
	return start, end, nil
}

// FormatRelativeTime renders then relative to now for feed items.
func FormatRelativeTime(now, then time.Time) string {
	diff := now.Sub(then)
	mins := int(diff.Minutes())
	hours := mins / 60
	days := hours / 24

	switch {
	case mins < 1:
		return "just now"
	case mins < 60:
		return fmt.Sprintf("%dm ago", mins)
	case hours < 24:
		return fmt.Sprintf("%dh ago", hours)
	case days == 1:
		return "yesterday"
	case days < 7:
		return fmt.Sprintf("%dd ago", days)
	}
	return then.Format("Jan 2, 2006")
}
