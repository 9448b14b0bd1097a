package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntakeAdd(t *testing.T) {
	protein, water := 30.0, 250
	var in Intake
	in.Add(500, &protein, nil, nil, &water)
	in.Add(200, nil, nil, nil, nil)

	assert.Equal(t, Intake{Calories: 700, ProteinG: 30, WaterMl: 250, Meals: 2}, in)
}

func TestCompareMacro(t *testing.T) {
	target := 2000.0
	zero := 0.0
	tests := []struct {
		name    string
		current float64
		target  *float64
		pct     int
		status  MacroStatus
	}{
		{name: "no target", current: 1500, status: MacroNoTarget},
		{name: "zero target", current: 1500, target: &zero, status: MacroNoTarget},
		{name: "under", current: 1000, target: &target, pct: 50, status: MacroUnder},
		{name: "lower edge of on track", current: 1700, target: &target, pct: 85, status: MacroOnTrack},
		{name: "exactly on target", current: 2000, target: &target, pct: 100, status: MacroOnTrack},
		{name: "slightly over", current: 2300, target: &target, pct: 115, status: MacroSlightlyOver},
		{name: "way over", current: 2400, target: &target, pct: 120, status: MacroWayOver},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompareMacro(tt.current, tt.target)
			assert.Equal(t, tt.pct, got.Percentage)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.current, got.Current)
		})
	}
}
