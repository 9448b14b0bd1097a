package scoring

import "fmt"

const (
	BasePoints        = 100
	AssistBonusPoints = 5
	// WeeklyStreakBonus is paid only when the streak is exactly seven days.
	// Days 14, 21, ... earn nothing extra; kept literal pending product review.
	WeeklyStreakBonus = 300
	RecordBonus       = 500
)

// Points is the award for a single check-in.
type Points struct {
	Base        int  `json:"base"`
	AssistBonus int  `json:"assistBonus"`
	StreakBonus int  `json:"streakBonus"`
	Total       int  `json:"total"`
	IsNewRecord bool `json:"isNewRecord"`
}

// CalculatePoints scores a check-in. wasAssisted means a circle-mate pushed
// the user earlier the same day.
func CalculatePoints(wasAssisted bool, newStreak, priorLongest int) (Points, error) {
	if newStreak < 0 || priorLongest < 0 {
		return Points{}, fmt.Errorf("%w: streak %d, longest %d", ErrInvalidArgument, newStreak, priorLongest)
	}

	p := Points{Base: BasePoints}
	if wasAssisted {
		p.AssistBonus = AssistBonusPoints
	}
	if newStreak == 7 {
		p.StreakBonus = WeeklyStreakBonus
	}
	if newStreak > priorLongest {
		p.StreakBonus += RecordBonus
		p.IsNewRecord = true
	}
	p.Total = p.Base + p.AssistBonus + p.StreakBonus
	return p, nil
}
