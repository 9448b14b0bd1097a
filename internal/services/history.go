package services

import (
	"context"
	"math"

	"github.com/google/uuid"

	"github.com/imaaryan1108/consist/internal/scoring"
	"github.com/imaaryan1108/consist/internal/store"
)

// DaySummary is one day of a weekly summary.
type DaySummary struct {
	Date       string         `json:"date"`
	Totals     scoring.Intake `json:"totals"`
	HasWorkout bool           `json:"hasWorkout"`
}

// WeeklySummary rolls up a Monday to Sunday week of meal and workout logs.
// Averages are per tracked day, meaning a day with at least one meal.
type WeeklySummary struct {
	StartDate         string         `json:"startDate"`
	EndDate           string         `json:"endDate"`
	Offset            int            `json:"offset"`
	DaysTracked       int            `json:"daysTracked"`
	Totals            scoring.Intake `json:"totals"`
	AvgCalories       int            `json:"avgCalories"`
	WorkoutsCompleted int            `json:"workoutsCompleted"`
	// Macros compares the daily averages with the goal; nil without a goal.
	Macros *MacroReport `json:"macros"`
	// Days runs newest first and always has seven entries.
	Days []DaySummary `json:"days"`
}

type HistoryService struct {
	store *store.Store
	clock scoring.Clock
}

func NewHistoryService(st *store.Store, clock scoring.Clock) *HistoryService {
	return &HistoryService{store: st, clock: clock}
}

// Weekly summarises the week offset whole weeks from the current one; 0 is
// this week and -1 last week.
func (s *HistoryService) Weekly(ctx context.Context, userID uuid.UUID, offset int) (*WeeklySummary, error) {
	start, end, err := scoring.WeekBounds(s.clock, offset)
	if err != nil {
		return nil, err
	}
	meals, err := s.store.MealsBetween(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	workoutDates, err := s.store.WorkoutDatesBetween(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	perDay := map[string]*scoring.Intake{}
	out := &WeeklySummary{StartDate: start, EndDate: end, Offset: offset}
	for _, m := range meals {
		in, ok := perDay[m.Date]
		if !ok {
			in = &scoring.Intake{}
			perDay[m.Date] = in
		}
		in.Add(m.Calories, m.ProteinG, m.CarbsG, m.FatsG, m.WaterMl)
		out.Totals.Add(m.Calories, m.ProteinG, m.CarbsG, m.FatsG, m.WaterMl)
	}
	worked := map[string]bool{}
	for _, d := range workoutDates {
		worked[d] = true
	}
	out.DaysTracked = len(perDay)
	out.WorkoutsCompleted = len(worked)
	if out.DaysTracked > 0 {
		out.AvgCalories = int(math.Round(float64(out.Totals.Calories) / float64(out.DaysTracked)))
	}

	for i := 6; i >= 0; i-- {
		date, err := scoring.AddDays(start, i)
		if err != nil {
			return nil, err
		}
		day := DaySummary{Date: date, HasWorkout: worked[date]}
		if in, ok := perDay[date]; ok {
			day.Totals = *in
		}
		out.Days = append(out.Days, day)
	}

	macros, err := macroTargets(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}
	if macros != nil {
		out.Macros = compareIntake(out.Totals, out.DaysTracked, *macros)
	}
	return out, nil
}
