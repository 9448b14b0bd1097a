package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/imaaryan1108/consist/internal/models"
	"github.com/imaaryan1108/consist/internal/scoring"
	"github.com/imaaryan1108/consist/internal/store"
)

// MacroReport compares intake with the goal's daily macro targets.
type MacroReport struct {
	Calories scoring.MacroProgress `json:"calories"`
	Protein  scoring.MacroProgress `json:"protein"`
	Carbs    scoring.MacroProgress `json:"carbs"`
	Fats     scoring.MacroProgress `json:"fats"`
}

// DailyNutrition is one day's meals and their totals. Macros is nil when the
// user has no goal.
type DailyNutrition struct {
	Date   string           `json:"date"`
	Totals scoring.Intake   `json:"totals"`
	Meals  []models.MealLog `json:"meals"`
	Macros *MacroReport     `json:"macros"`
}

type MealService struct {
	store *store.Store
	clock scoring.Clock
}

func NewMealService(st *store.Store, clock scoring.Clock) *MealService {
	return &MealService{store: st, clock: clock}
}

func (s *MealService) Log(ctx context.Context, userID uuid.UUID, req models.LogMealRequest) (*models.MealLog, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	date, err := resolveDate(s.clock, req.Date)
	if err != nil {
		return nil, err
	}
	m := &models.MealLog{
		UserID:   userID,
		Date:     date,
		MealType: req.MealType,
		FoodName: req.FoodName,
		Calories: req.Calories,
		ProteinG: req.ProteinG,
		CarbsG:   req.CarbsG,
		FatsG:    req.FatsG,
		WaterMl:  req.WaterMl,
	}
	if err := s.store.CreateMeal(ctx, m); err != nil {
		return nil, fmt.Errorf("create meal: %w", err)
	}
	return m, nil
}

// ForDate totals the day's meals. An empty date means today.
func (s *MealService) ForDate(ctx context.Context, userID uuid.UUID, date string) (*DailyNutrition, error) {
	date, err := resolveDate(s.clock, date)
	if err != nil {
		return nil, err
	}
	meals, err := s.store.MealsOn(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	out := &DailyNutrition{Date: date, Meals: meals}
	for _, m := range meals {
		out.Totals.Add(m.Calories, m.ProteinG, m.CarbsG, m.FatsG, m.WaterMl)
	}
	macros, err := macroTargets(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}
	if macros != nil {
		out.Macros = compareIntake(out.Totals, 1, *macros)
	}
	return out, nil
}

func (s *MealService) Update(ctx context.Context, userID, id uuid.UUID, req models.UpdateMealRequest) (*models.MealLog, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	m, err := s.store.GetMeal(ctx, userID, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrMealNotFound
	}
	if err != nil {
		return nil, err
	}
	changes := req.Changes()
	if len(changes) == 0 {
		return m, nil
	}
	if err := s.store.UpdateMeal(ctx, userID, id, changes); err != nil {
		return nil, fmt.Errorf("update meal: %w", err)
	}
	return s.store.GetMeal(ctx, userID, id)
}

func (s *MealService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	ok, err := s.store.DeleteMeal(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrMealNotFound
	}
	return nil
}

// resolveDate defaults an empty date to today and normalises the rest.
func resolveDate(clock scoring.Clock, date string) (string, error) {
	if date == "" {
		return clock.Today(), nil
	}
	t, err := scoring.ParseDate(date)
	if err != nil {
		return "", err
	}
	return scoring.FormatDate(t), nil
}

// macroTargets returns nil when the user has no goal.
func macroTargets(ctx context.Context, st *store.Store, userID uuid.UUID) (*models.MacroTargets, error) {
	goal, err := st.GetTarget(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &goal.Macros, nil
}

// compareIntake compares the per-day average of in over days with targets.
func compareIntake(in scoring.Intake, days int, targets models.MacroTargets) *MacroReport {
	if days < 1 {
		days = 1
	}
	n := float64(days)
	var calories *float64
	if targets.CaloriesDaily != nil {
		c := float64(*targets.CaloriesDaily)
		calories = &c
	}
	return &MacroReport{
		Calories: scoring.CompareMacro(float64(in.Calories)/n, calories),
		Protein:  scoring.CompareMacro(in.ProteinG/n, targets.ProteinGDaily),
		Carbs:    scoring.CompareMacro(in.CarbsG/n, targets.CarbsGDaily),
		Fats:     scoring.CompareMacro(in.FatsG/n, targets.FatsGDaily),
	}
}
