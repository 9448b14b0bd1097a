package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/imaaryan1108/consist/internal/scoring"
)

const (
	UnitsMetric   = "metric"
	UnitsImperial = "imperial"
)

// Measurements are optional body circumferences in centimetres.
type Measurements struct {
	WaistCm *float64 `json:"waistCm"`
	ChestCm *float64 `json:"chestCm"`
	ArmsCm  *float64 `json:"armsCm"`
}

func (m Measurements) Validate() error {
	for name, v := range map[string]*float64{"waist": m.WaistCm, "chest": m.ChestCm, "arms": m.ArmsCm} {
		if v != nil && *v <= 0 {
			return fmt.Errorf("%w: %s must be positive", scoring.ErrInvalidArgument, name)
		}
	}
	return nil
}

// Merge overwrites only the fields set in other.
func (m *Measurements) Merge(other Measurements) {
	if other.WaistCm != nil {
		m.WaistCm = other.WaistCm
	}
	if other.ChestCm != nil {
		m.ChestCm = other.ChestCm
	}
	if other.ArmsCm != nil {
		m.ArmsCm = other.ArmsCm
	}
}

// BodyProfile holds the latest body reading; CurrentWeightKg feeds target progress.
type BodyProfile struct {
	ID              uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID    `json:"userId" gorm:"type:uuid;uniqueIndex;not null"`
	HeightCm        float64      `json:"heightCm" gorm:"not null"`
	CurrentWeightKg float64      `json:"currentWeightKg" gorm:"not null"`
	Measurements    Measurements `json:"measurements" gorm:"embedded"`
	UnitPreference  string       `json:"unitPreference" gorm:"not null;default:'metric'"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

func (b *BodyProfile) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.UnitPreference == "" {
		b.UnitPreference = UnitsMetric
	}
	return nil
}

type UpsertBodyProfileRequest struct {
	HeightCm        float64      `json:"heightCm" validate:"required,gt=0"`
	CurrentWeightKg float64      `json:"currentWeightKg" validate:"required,gt=0"`
	Measurements    Measurements `json:"measurements"`
	// UnitPreference defaults to metric when omitted.
	UnitPreference *string `json:"unitPreference"`
}

func (r UpsertBodyProfileRequest) Validate() error {
	if r.HeightCm <= 0 || r.CurrentWeightKg <= 0 {
		return fmt.Errorf("%w: height and weight must be positive", scoring.ErrInvalidArgument)
	}
	if r.UnitPreference != nil && *r.UnitPreference != UnitsMetric && *r.UnitPreference != UnitsImperial {
		return fmt.Errorf("%w: unit preference must be metric or imperial", scoring.ErrInvalidArgument)
	}
	return r.Measurements.Validate()
}
