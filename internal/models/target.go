package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/imaaryan1108/consist/internal/scoring"
)

// MacroTargets are optional daily nutrition goals. A nil field means the user
// has not set that goal.
type MacroTargets struct {
	CaloriesDaily *int     `json:"caloriesDaily" gorm:"column:target_calories_daily"`
	ProteinGDaily *float64 `json:"proteinGDaily" gorm:"column:target_protein_g_daily"`
	CarbsGDaily   *float64 `json:"carbsGDaily" gorm:"column:target_carbs_g_daily"`
	FatsGDaily    *float64 `json:"fatsGDaily" gorm:"column:target_fats_g_daily"`
}

func (m MacroTargets) Validate() error {
	if m.CaloriesDaily != nil && *m.CaloriesDaily < 0 {
		return fmt.Errorf("%w: calories must not be negative", scoring.ErrInvalidArgument)
	}
	for name, v := range map[string]*float64{"protein": m.ProteinGDaily, "carbs": m.CarbsGDaily, "fats": m.FatsGDaily} {
		if v != nil && *v < 0 {
			return fmt.Errorf("%w: %s must not be negative", scoring.ErrInvalidArgument, name)
		}
	}
	return nil
}

// TargetGoal is a user's single weight objective. Replacing it deletes the
// old row and inserts a new one, so ID identifies one version of the goal.
type TargetGoal struct {
	ID               uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID    `json:"userId" gorm:"type:uuid;uniqueIndex;not null"`
	StartingWeightKg float64      `json:"startingWeightKg" gorm:"not null"`
	StartingDate     string       `json:"startingDate" gorm:"size:10;not null"`
	TargetWeightKg   float64      `json:"targetWeightKg" gorm:"not null"`
	TargetDate       string       `json:"targetDate" gorm:"size:10;not null"`
	CustomMessage    *string      `json:"customMessage"`
	Macros           MacroTargets `json:"macros" gorm:"embedded"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

func (t *TargetGoal) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Scoring converts the row into the calculator's goal type.
func (t *TargetGoal) Scoring() *scoring.TargetGoal {
	if t == nil {
		return nil
	}
	return &scoring.TargetGoal{
		GoalID:           t.ID.String(),
		StartingWeightKg: t.StartingWeightKg,
		StartingDate:     t.StartingDate,
		TargetWeightKg:   t.TargetWeightKg,
		TargetDate:       t.TargetDate,
	}
}

type SetTargetRequest struct {
	TargetWeightKg float64      `json:"targetWeightKg" validate:"required,gt=0"`
	TargetDate     string       `json:"targetDate" validate:"required"`
	CustomMessage  *string      `json:"customMessage"`
	Macros         MacroTargets `json:"macros"`
}
