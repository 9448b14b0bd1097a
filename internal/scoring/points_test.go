package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculatePoints(t *testing.T) {
	tests := []struct {
		name     string
		assisted bool
		streak   int
		longest  int
		want     Points
	}{
		{
			name:    "plain day",
			streak:  5,
			longest: 10,
			want:    Points{Base: 100, Total: 100},
		},
		{
			name:     "assisted new record",
			assisted: true,
			streak:   8,
			longest:  7,
			want:     Points{Base: 100, AssistBonus: 5, StreakBonus: 500, Total: 605, IsNewRecord: true},
		},
		{
			name:    "seventh day without record",
			streak:  7,
			longest: 20,
			want:    Points{Base: 100, StreakBonus: 300, Total: 400},
		},
		{
			name:    "fourteenth day earns no weekly bonus",
			streak:  14,
			longest: 20,
			want:    Points{Base: 100, Total: 100},
		},
		{
			name:    "seventh day that is also a record",
			streak:  7,
			longest: 6,
			want:    Points{Base: 100, StreakBonus: 800, Total: 900, IsNewRecord: true},
		},
		{
			name:    "first check-in ever",
			streak:  1,
			longest: 0,
			want:    Points{Base: 100, StreakBonus: 500, Total: 600, IsNewRecord: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculatePoints(tt.assisted, tt.streak, tt.longest)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculatePointsRecordFlagMatchesComparison(t *testing.T) {
	for streak := 0; streak <= 12; streak++ {
		for longest := 0; longest <= 12; longest++ {
			p, err := CalculatePoints(false, streak, longest)
			require.NoError(t, err)
			assert.Equal(t, streak > longest, p.IsNewRecord, "streak=%d longest=%d", streak, longest)
		}
	}
}

func TestCalculatePointsRejectsNegative(t *testing.T) {
	_, err := CalculatePoints(false, -1, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = CalculatePoints(true, 3, -2)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
