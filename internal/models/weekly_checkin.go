package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/imaaryan1108/consist/internal/scoring"
)

// WeeklyCheckin is the once-a-week weigh-in, keyed by the Monday of its week.
type WeeklyCheckin struct {
	ID             uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID    `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_weekly_user_week"`
	WeekStartDate  string       `json:"weekStartDate" gorm:"size:10;not null;uniqueIndex:idx_weekly_user_week"`
	WeightKg       float64      `json:"weightKg" gorm:"not null"`
	Measurements   Measurements `json:"measurements" gorm:"embedded"`
	WeightChangeKg *float64     `json:"weightChangeKg"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

func (w *WeeklyCheckin) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

type SubmitWeeklyCheckinRequest struct {
	WeightKg     float64      `json:"weightKg" validate:"required,gt=0"`
	Measurements Measurements `json:"measurements"`
}

func (r SubmitWeeklyCheckinRequest) Validate() error {
	if r.WeightKg <= 0 {
		return fmt.Errorf("%w: weight must be positive", scoring.ErrInvalidArgument)
	}
	return r.Measurements.Validate()
}
