package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentStreak(t *testing.T) {
	const today = "2026-10-16"

	tests := []struct {
		name  string
		dates []string
		want  int
	}{
		{"empty", nil, 0},
		{"today only", []string{today}, 1},
		{"gap after three days", []string{today, "2026-10-15", "2026-10-14", "2026-10-11"}, 3},
		{"unordered input", []string{"2026-10-14", today, "2026-10-15"}, 3},
		{"duplicates collapse", []string{today, today, "2026-10-15", "2026-10-15"}, 2},
		{"future dates ignored", []string{"2026-10-17", "2026-10-20", today, "2026-10-15"}, 2},
		{"today missing", []string{"2026-10-15", "2026-10-14"}, 0},
		{"stale run before today", []string{"2026-10-02", "2026-10-01", "2026-09-30", "2026-09-29"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CurrentStreak(tt.dates, today)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCurrentStreakCrossesMonthAndYear(t *testing.T) {
	got, err := CurrentStreak([]string{"2027-01-01", "2026-12-31", "2026-12-30"}, "2027-01-01")
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestCurrentStreakRejectsBadDates(t *testing.T) {
	_, err := CurrentStreak([]string{"2026-10-16", "yesterday"}, "2026-10-16")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = CurrentStreak(nil, "")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestStreakMessage(t *testing.T) {
	assert.Contains(t, StreakMessage(7), "One week strong")
	assert.Contains(t, StreakMessage(150), "Legendary")
	assert.Equal(t, "12 days and counting! 🔥", StreakMessage(12))
}
