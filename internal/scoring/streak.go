package scoring

import (
	"fmt"
	"sort"
)

// CurrentStreak counts consecutive calendar days ending at today. dates is the
// user's check-in history with today's check-in already included; order does
// not matter, duplicates collapse, and dates after today are ignored. If today
// itself is missing the streak is 0.
func CurrentStreak(dates []string, today string) (int, error) {
	ref, err := ParseDate(today)
	if err != nil {
		return 0, err
	}

	seen := make(map[string]struct{}, len(dates))
	days := make([]string, 0, len(dates))
	for _, d := range dates {
		t, err := ParseDate(d)
		if err != nil {
			return 0, err
		}
		if t.After(ref) {
			continue
		}
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, d)
	}

	// ISO dates sort lexically in calendar order.
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	streak := 0
	expected := ref
	for _, d := range days {
		if d != FormatDate(expected) {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak, nil
}

// StreakMessage is the short encouragement attached to check-in activity.
func StreakMessage(streak int) string {
	switch {
	case streak <= 0:
		return "Start your consistency journey! 🎯"
	case streak == 1:
		return "First step taken! Keep going 🚀"
	case streak == 3:
		return "Building momentum! 💪"
	case streak == 7:
		return "One week strong! You're unstoppable! 🔥"
	case streak == 14:
		return "Two weeks! This is becoming a habit 🌟"
	case streak == 30:
		return "30 days! You're an inspiration! 👑"
	case streak >= 100:
		return "100+ days! Legendary consistency! 🏆"
	}
	return fmt.Sprintf("%d days and counting! 🔥", streak)
}
