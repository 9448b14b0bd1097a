package scoring

import "math"

// Intake is a sum of logged food and water.
type Intake struct {
	Calories int     `json:"calories"`
	ProteinG float64 `json:"proteinG"`
	CarbsG   float64 `json:"carbsG"`
	FatsG    float64 `json:"fatsG"`
	WaterMl  int     `json:"waterMl"`
	Meals    int     `json:"meals"`
}

// Add counts one meal. Missing macros count as zero.
func (in *Intake) Add(calories int, protein, carbs, fats *float64, water *int) {
	in.Meals++
	in.Calories += calories
	if protein != nil {
		in.ProteinG += *protein
	}
	if carbs != nil {
		in.CarbsG += *carbs
	}
	if fats != nil {
		in.FatsG += *fats
	}
	if water != nil {
		in.WaterMl += *water
	}
}

type MacroStatus string

const (
	MacroNoTarget     MacroStatus = "no_target"
	MacroUnder        MacroStatus = "under"
	MacroOnTrack      MacroStatus = "on_track"
	MacroSlightlyOver MacroStatus = "slightly_over"
	MacroWayOver      MacroStatus = "way_over"
)

// MacroProgress compares one nutrient against its daily target.
type MacroProgress struct {
	Current    float64     `json:"current"`
	Target     *float64    `json:"target"`
	Percentage int         `json:"percentage"`
	Status     MacroStatus `json:"status"`
}

// CompareMacro buckets current against target: under 85% is under, up to
// 100% on track, up to 115% slightly over, beyond that way over. A missing or
// zero target yields no_target.
func CompareMacro(current float64, target *float64) MacroProgress {
	p := MacroProgress{Current: current, Target: target, Status: MacroNoTarget}
	if target == nil || *target <= 0 {
		return p
	}
	p.Percentage = int(math.Round(current / *target * 100))
	switch {
	case p.Percentage < 85:
		p.Status = MacroUnder
	case p.Percentage <= 100:
		p.Status = MacroOnTrack
	case p.Percentage <= 115:
		p.Status = MacroSlightlyOver
	default:
		p.Status = MacroWayOver
	}
	return p
}
