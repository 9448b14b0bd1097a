package scoring

import (
	"fmt"
	"math"
)

// TargetGoal is the weight objective the progress calculator works from.
type TargetGoal struct {
	GoalID           string
	StartingWeightKg float64
	StartingDate     string
	TargetWeightKg   float64
	TargetDate       string
}

// Validate checks the goal invariants: positive weights, parseable dates and
// StartingDate strictly before TargetDate.
func (g TargetGoal) Validate() error {
	if g.StartingWeightKg <= 0 || g.TargetWeightKg <= 0 {
		return fmt.Errorf("%w: weights must be positive", ErrInvalidArgument)
	}
	span, err := DaysBetween(g.StartingDate, g.TargetDate)
	if err != nil {
		return err
	}
	if span <= 0 {
		return fmt.Errorf("%w: target date %s is not after starting date %s", ErrInvalidArgument, g.TargetDate, g.StartingDate)
	}
	return nil
}

// TargetProgress is a snapshot of where the user stands against their goal.
type TargetProgress struct {
	GoalID               string  `json:"goalId"`
	TargetWeightKg       float64 `json:"targetWeightKg"`
	CurrentWeightKg      float64 `json:"currentWeightKg"`
	StartingWeightKg     float64 `json:"startingWeightKg"`
	TargetDate           string  `json:"targetDate"`
	DaysRemaining        int     `json:"daysRemaining"`
	KgRemaining          float64 `json:"kgRemaining"`
	KgProgress           float64 `json:"kgProgress"`
	WeeklyRequiredChange float64 `json:"weeklyRequiredChange"`
	ProgressPercentage   float64 `json:"progressPercentage"`
	IsOnTrack            bool    `json:"isOnTrack"`
}

// GoalReached reports whether the current weight is at or below the target.
func (p TargetProgress) GoalReached() bool {
	return p.CurrentWeightKg <= p.TargetWeightKg
}

// CalculateTargetProgress measures currentWeightKg against goal as of today.
// A nil goal or nil weight yields (nil, nil): progress is simply unavailable.
//
// IsOnTrack compares actual loss with a straight line from the starting weight
// on the starting date to the target weight on the target date. It is an
// approximation, not an adherence model. Once the target date has passed the
// user is on track only if the goal has been reached.
func CalculateTargetProgress(goal *TargetGoal, currentWeightKg *float64, today string) (*TargetProgress, error) {
	if goal == nil || currentWeightKg == nil {
		return nil, nil
	}
	if err := goal.Validate(); err != nil {
		return nil, err
	}
	if *currentWeightKg <= 0 {
		return nil, fmt.Errorf("%w: current weight must be positive", ErrInvalidArgument)
	}

	daysRemaining, err := DaysBetween(today, goal.TargetDate)
	if err != nil {
		return nil, err
	}
	planDays, _ := DaysBetween(goal.StartingDate, goal.TargetDate)
	elapsed, err := DaysBetween(goal.StartingDate, today)
	if err != nil {
		return nil, err
	}

	current := *currentWeightKg
	totalToChange := goal.StartingWeightKg - goal.TargetWeightKg
	kgRemaining := math.Max(0, current-goal.TargetWeightKg)
	kgProgress := goal.StartingWeightKg - current

	p := &TargetProgress{
		GoalID:           goal.GoalID,
		TargetWeightKg:   goal.TargetWeightKg,
		CurrentWeightKg:  current,
		StartingWeightKg: goal.StartingWeightKg,
		TargetDate:       goal.TargetDate,
		DaysRemaining:    daysRemaining,
		KgRemaining:      kgRemaining,
		KgProgress:       kgProgress,
	}

	weeksRemaining := float64(daysRemaining) / 7
	if weeksRemaining > 0 {
		p.WeeklyRequiredChange = kgRemaining / weeksRemaining
	}

	if totalToChange > 0 {
		p.ProgressPercentage = clamp(kgProgress/totalToChange*100, 0, 100)
	}

	switch {
	case totalToChange <= 0, daysRemaining < 0:
		p.IsOnTrack = kgRemaining == 0
	default:
		fraction := clamp(float64(elapsed)/float64(planDays), 0, 1)
		p.IsOnTrack = kgProgress >= totalToChange*fraction
	}
	return p, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
