package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/imaaryan1108/consist/internal/scoring"
)

const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

func validMealType(t string) bool {
	switch t {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

// MealLog is one food item logged by hand. A day may hold any number of them.
type MealLog struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;index:idx_meal_user_date"`
	Date      string    `json:"date" gorm:"size:10;not null;index:idx_meal_user_date"`
	MealType  string    `json:"mealType" gorm:"size:16;not null"`
	FoodName  string    `json:"foodName" gorm:"not null"`
	Calories  int       `json:"calories" gorm:"not null"`
	ProteinG  *float64  `json:"proteinG"`
	CarbsG    *float64  `json:"carbsG"`
	FatsG     *float64  `json:"fatsG"`
	WaterMl   *int      `json:"waterMl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *MealLog) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

type LogMealRequest struct {
	MealType string   `json:"mealType" validate:"required,oneof=breakfast lunch dinner snack"`
	FoodName string   `json:"foodName" validate:"required"`
	Calories int      `json:"calories" validate:"gte=0"`
	ProteinG *float64 `json:"proteinG" validate:"omitempty,gte=0"`
	CarbsG   *float64 `json:"carbsG" validate:"omitempty,gte=0"`
	FatsG    *float64 `json:"fatsG" validate:"omitempty,gte=0"`
	WaterMl  *int     `json:"waterMl" validate:"omitempty,gte=0"`
	// Date defaults to today.
	Date string `json:"date"`
}

func (r LogMealRequest) Validate() error {
	if !validMealType(r.MealType) {
		return fmt.Errorf("%w: meal type must be breakfast, lunch, dinner or snack", scoring.ErrInvalidArgument)
	}
	if r.FoodName == "" {
		return fmt.Errorf("%w: food name is required", scoring.ErrInvalidArgument)
	}
	return nonNegative(r.Calories, r.ProteinG, r.CarbsG, r.FatsG, r.WaterMl)
}

// UpdateMealRequest changes only the fields that are set.
type UpdateMealRequest struct {
	MealType *string  `json:"mealType" validate:"omitempty,oneof=breakfast lunch dinner snack"`
	FoodName *string  `json:"foodName" validate:"omitempty,min=1"`
	Calories *int     `json:"calories" validate:"omitempty,gte=0"`
	ProteinG *float64 `json:"proteinG" validate:"omitempty,gte=0"`
	CarbsG   *float64 `json:"carbsG" validate:"omitempty,gte=0"`
	FatsG    *float64 `json:"fatsG" validate:"omitempty,gte=0"`
	WaterMl  *int     `json:"waterMl" validate:"omitempty,gte=0"`
}

func (r UpdateMealRequest) Validate() error {
	if r.MealType != nil && !validMealType(*r.MealType) {
		return fmt.Errorf("%w: meal type must be breakfast, lunch, dinner or snack", scoring.ErrInvalidArgument)
	}
	if r.FoodName != nil && *r.FoodName == "" {
		return fmt.Errorf("%w: food name must not be empty", scoring.ErrInvalidArgument)
	}
	calories := 0
	if r.Calories != nil {
		calories = *r.Calories
	}
	return nonNegative(calories, r.ProteinG, r.CarbsG, r.FatsG, r.WaterMl)
}

// Changes returns the column updates for the set fields.
func (r UpdateMealRequest) Changes() map[string]interface{} {
	out := map[string]interface{}{}
	if r.MealType != nil {
		out["meal_type"] = *r.MealType
	}
	if r.FoodName != nil {
		out["food_name"] = *r.FoodName
	}
	if r.Calories != nil {
		out["calories"] = *r.Calories
	}
	if r.ProteinG != nil {
		out["protein_g"] = *r.ProteinG
	}
	if r.CarbsG != nil {
		out["carbs_g"] = *r.CarbsG
	}
	if r.FatsG != nil {
		out["fats_g"] = *r.FatsG
	}
	if r.WaterMl != nil {
		out["water_ml"] = *r.WaterMl
	}
	return out
}

func nonNegative(calories int, protein, carbs, fats *float64, water *int) error {
	if calories < 0 || (water != nil && *water < 0) {
		return fmt.Errorf("%w: calories and water must not be negative", scoring.ErrInvalidArgument)
	}
	for name, v := range map[string]*float64{"protein": protein, "carbs": carbs, "fats": fats} {
		if v != nil && *v < 0 {
			return fmt.Errorf("%w: %s must not be negative", scoring.ErrInvalidArgument, name)
		}
	}
	return nil
}
