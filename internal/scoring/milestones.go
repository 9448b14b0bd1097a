package scoring

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Kind is the closed set of milestone types.
type Kind string

const (
	KindWeightThreshold Kind = "weight_milestone"
	KindWeeklyStreak    Kind = "weekly_completion"
	KindMonthlyStreak   Kind = "monthly_consistency"
	KindGoalAchieved    Kind = "target_achieved"
)

const (
	weightStepKg          = 2
	weightBonusPerKg      = 5
	weeklyStreakLength    = 7
	weeklyMilestoneBonus  = 20
	monthlyStreakLength   = 30
	monthlyMilestoneBonus = 100
	goalAchievedBonus     = 500
)

func (k Kind) Valid() bool {
	switch k {
	case KindWeightThreshold, KindWeeklyStreak, KindMonthlyStreak, KindGoalAchieved:
		return true
	}
	return false
}

// Metadata is the kind-specific payload of a milestone. The set of
// implementations is closed: WeightThreshold, StreakLength and GoalAchieved.
type Metadata interface {
	isMetadata()
}

// WeightThreshold records the whole-kilogram loss a weight milestone marks.
type WeightThreshold struct {
	KgLost int `json:"kg_lost"`
}

// StreakLength records the streak a weekly or monthly milestone marks.
type StreakLength struct {
	Streak int `json:"streak"`
}

// GoalAchieved records the goal that was reached.
type GoalAchieved struct {
	GoalID           string  `json:"goal_id"`
	TargetWeightKg   float64 `json:"target_weight"`
	StartingWeightKg float64 `json:"starting_weight"`
	TotalLostKg      float64 `json:"total_lost"`
}

func (WeightThreshold) isMetadata() {}
func (StreakLength) isMetadata()    {}
func (GoalAchieved) isMetadata()    {}

// Milestone is an awarded achievement.
type Milestone struct {
	UserID      string
	Kind        Kind
	Title       string
	Description string
	Icon        string
	BonusPoints int
	Metadata    Metadata
	CreatedAt   time.Time
}

// Key identifies an award for deduplication in storage. Weight steps and the
// goal bonus are awarded once per user; streak awards once per calendar day.
func (m Milestone) Key() string {
	switch m.Kind {
	case KindWeightThreshold:
		if w, ok := m.Metadata.(WeightThreshold); ok {
			return fmt.Sprintf("weight:%d", w.KgLost)
		}
	case KindGoalAchieved:
		return "goal"
	}
	return fmt.Sprintf("%s:%s", m.Kind, FormatDate(m.CreatedAt))
}

// MarshalMetadata encodes a payload for storage.
func MarshalMetadata(m Metadata) ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

// UnmarshalMetadata decodes a stored payload into the type that matches kind.
func UnmarshalMetadata(kind Kind, raw []byte) (Metadata, error) {
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	switch kind {
	case KindWeightThreshold:
		var m WeightThreshold
		err := json.Unmarshal(raw, &m)
		return m, err
	case KindWeeklyStreak, KindMonthlyStreak:
		var m StreakLength
		err := json.Unmarshal(raw, &m)
		return m, err
	case KindGoalAchieved:
		var m GoalAchieved
		err := json.Unmarshal(raw, &m)
		return m, err
	}
	return nil, fmt.Errorf("%w: unknown milestone kind %q", ErrInvalidArgument, kind)
}

// MilestoneInput is everything the evaluator looks at.
type MilestoneInput struct {
	UserID        string
	CurrentStreak int
	// Progress is nil when the user has no goal or no weight reading.
	Progress *TargetProgress
	// Existing holds milestones already awarded to the user.
	Existing []Milestone
	Now      time.Time
}

// EvaluateMilestones returns the milestones the user newly qualifies for.
// Rules are independent, so one call may return several. Feeding the result
// back in through Existing makes a repeat call return nothing.
func EvaluateMilestones(in MilestoneInput) []Milestone {
	var out []Milestone

	if m, ok := weightMilestone(in); ok {
		out = append(out, m)
	}
	if in.CurrentStreak == weeklyStreakLength && !awardedWithin(in, KindWeeklyStreak, 7*24*time.Hour) {
		out = append(out, Milestone{
			UserID:      in.UserID,
			Kind:        KindWeeklyStreak,
			Title:       "7-Day Streak!",
			Description: "Completed a full week of consistency",
			Icon:        "🔥",
			BonusPoints: weeklyMilestoneBonus,
			Metadata:    StreakLength{Streak: weeklyStreakLength},
			CreatedAt:   in.Now,
		})
	}
	if in.CurrentStreak == monthlyStreakLength && !awardedWithin(in, KindMonthlyStreak, 30*24*time.Hour) {
		out = append(out, Milestone{
			UserID:      in.UserID,
			Kind:        KindMonthlyStreak,
			Title:       "30-Day Elite!",
			Description: "Maintained consistency for a full month",
			Icon:        "👑",
			BonusPoints: monthlyMilestoneBonus,
			Metadata:    StreakLength{Streak: monthlyStreakLength},
			CreatedAt:   in.Now,
		})
	}
	if m, ok := goalMilestone(in); ok {
		out = append(out, m)
	}
	return out
}

// weightMilestone only considers the highest full 2 kg step reached; steps
// skipped between evaluations are not back-filled.
func weightMilestone(in MilestoneInput) (Milestone, bool) {
	if in.Progress == nil || in.Progress.KgProgress <= 0 {
		return Milestone{}, false
	}
	threshold := int(math.Floor(in.Progress.KgProgress/weightStepKg)) * weightStepKg
	if threshold < weightStepKg {
		return Milestone{}, false
	}
	for _, m := range in.Existing {
		if w, ok := m.Metadata.(WeightThreshold); ok && m.Kind == KindWeightThreshold && w.KgLost == threshold {
			return Milestone{}, false
		}
	}
	return Milestone{
		UserID:      in.UserID,
		Kind:        KindWeightThreshold,
		Title:       fmt.Sprintf("%dkg Down!", threshold),
		Description: fmt.Sprintf("You've lost %dkg towards your goal", threshold),
		Icon:        "🏆",
		BonusPoints: threshold * weightBonusPerKg,
		Metadata:    WeightThreshold{KgLost: threshold},
		CreatedAt:   in.Now,
	}, true
}

// goalMilestone pays the goal bonus once per user, whatever goal is current.
func goalMilestone(in MilestoneInput) (Milestone, bool) {
	if in.Progress == nil || !in.Progress.GoalReached() {
		return Milestone{}, false
	}
	for _, m := range in.Existing {
		if m.Kind == KindGoalAchieved {
			return Milestone{}, false
		}
	}
	return Milestone{
		UserID:      in.UserID,
		Kind:        KindGoalAchieved,
		Title:       "Target Achieved! 🎉",
		Description: fmt.Sprintf("Reached %gkg goal!", in.Progress.TargetWeightKg),
		Icon:        "🎯",
		BonusPoints: goalAchievedBonus,
		Metadata: GoalAchieved{
			GoalID:           in.Progress.GoalID,
			TargetWeightKg:   in.Progress.TargetWeightKg,
			StartingWeightKg: in.Progress.StartingWeightKg,
			TotalLostKg:      in.Progress.KgProgress,
		},
		CreatedAt: in.Now,
	}, true
}

func awardedWithin(in MilestoneInput, kind Kind, window time.Duration) bool {
	since := in.Now.Add(-window)
	for _, m := range in.Existing {
		if m.Kind == kind && !m.CreatedAt.Before(since) {
			return true
		}
	}
	return false
}
