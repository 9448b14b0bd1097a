package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/imaaryan1108/consist/internal/scoring"
)

const (
	WorkoutGym    = "gym"
	WorkoutWalk   = "walk"
	WorkoutCardio = "cardio"
	WorkoutRest   = "rest"
	WorkoutOther  = "other"
)

// WorkoutLog is a user's one workout entry for a day. Logging the same day
// again overwrites it in place and keeps its exercises.
type WorkoutLog struct {
	ID              uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID     `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_workout_user_date"`
	Date            string        `json:"date" gorm:"size:10;not null;uniqueIndex:idx_workout_user_date"`
	WorkoutType     string        `json:"workoutType" gorm:"size:16;not null"`
	DurationMinutes *int          `json:"durationMinutes"`
	MuscleGroup     *string       `json:"muscleGroup"`
	Notes           *string       `json:"notes"`
	Exercises       []ExerciseLog `json:"exercises" gorm:"foreignKey:WorkoutLogID"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

func (w *WorkoutLog) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// ExerciseLog is one movement performed within a workout.
type ExerciseLog struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `json:"userId" gorm:"type:uuid;not null;index"`
	WorkoutLogID uuid.UUID `json:"workoutLogId" gorm:"type:uuid;not null;index"`
	ExerciseName string    `json:"exerciseName" gorm:"not null;index"`
	Sets         int       `json:"sets" gorm:"not null"`
	Reps         int       `json:"reps" gorm:"not null"`
	WeightKg     *float64  `json:"weightKg"`
	RestSeconds  *int      `json:"restSeconds"`
	Notes        *string   `json:"notes"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (e *ExerciseLog) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

type LogWorkoutRequest struct {
	WorkoutType     string  `json:"workoutType" validate:"required,oneof=gym walk cardio rest other"`
	DurationMinutes *int    `json:"durationMinutes" validate:"omitempty,gte=0"`
	MuscleGroup     *string `json:"muscleGroup"`
	Notes           *string `json:"notes"`
	// Date defaults to today.
	Date string `json:"date"`
}

func (r LogWorkoutRequest) Validate() error {
	switch r.WorkoutType {
	case WorkoutGym, WorkoutWalk, WorkoutCardio, WorkoutRest, WorkoutOther:
	default:
		return fmt.Errorf("%w: workout type must be gym, walk, cardio, rest or other", scoring.ErrInvalidArgument)
	}
	if r.DurationMinutes != nil && *r.DurationMinutes < 0 {
		return fmt.Errorf("%w: duration must not be negative", scoring.ErrInvalidArgument)
	}
	return nil
}

type LogExerciseRequest struct {
	ExerciseName string   `json:"exerciseName" validate:"required"`
	Sets         int      `json:"sets" validate:"required,gt=0"`
	Reps         int      `json:"reps" validate:"required,gt=0"`
	WeightKg     *float64 `json:"weightKg" validate:"omitempty,gte=0"`
	RestSeconds  *int     `json:"restSeconds" validate:"omitempty,gte=0"`
	Notes        *string  `json:"notes"`
}

func (r LogExerciseRequest) Validate() error {
	if r.ExerciseName == "" {
		return fmt.Errorf("%w: exercise name is required", scoring.ErrInvalidArgument)
	}
	if r.Sets <= 0 || r.Reps <= 0 {
		return fmt.Errorf("%w: sets and reps must be positive", scoring.ErrInvalidArgument)
	}
	if (r.WeightKg != nil && *r.WeightKg < 0) || (r.RestSeconds != nil && *r.RestSeconds < 0) {
		return fmt.Errorf("%w: weight and rest must not be negative", scoring.ErrInvalidArgument)
	}
	return nil
}

// UpdateExerciseRequest changes only the fields that are set.
type UpdateExerciseRequest struct {
	ExerciseName *string  `json:"exerciseName" validate:"omitempty,min=1"`
	Sets         *int     `json:"sets" validate:"omitempty,gt=0"`
	Reps         *int     `json:"reps" validate:"omitempty,gt=0"`
	WeightKg     *float64 `json:"weightKg" validate:"omitempty,gte=0"`
	RestSeconds  *int     `json:"restSeconds" validate:"omitempty,gte=0"`
	Notes        *string  `json:"notes"`
}

func (r UpdateExerciseRequest) Validate() error {
	if r.ExerciseName != nil && *r.ExerciseName == "" {
		return fmt.Errorf("%w: exercise name must not be empty", scoring.ErrInvalidArgument)
	}
	if (r.Sets != nil && *r.Sets <= 0) || (r.Reps != nil && *r.Reps <= 0) {
		return fmt.Errorf("%w: sets and reps must be positive", scoring.ErrInvalidArgument)
	}
	if (r.WeightKg != nil && *r.WeightKg < 0) || (r.RestSeconds != nil && *r.RestSeconds < 0) {
		return fmt.Errorf("%w: weight and rest must not be negative", scoring.ErrInvalidArgument)
	}
	return nil
}

func (r UpdateExerciseRequest) Changes() map[string]interface{} {
	out := map[string]interface{}{}
	if r.ExerciseName != nil {
		out["exercise_name"] = *r.ExerciseName
	}
	if r.Sets != nil {
		out["sets"] = *r.Sets
	}
	if r.Reps != nil {
		out["reps"] = *r.Reps
	}
	if r.WeightKg != nil {
		out["weight_kg"] = *r.WeightKg
	}
	if r.RestSeconds != nil {
		out["rest_seconds"] = *r.RestSeconds
	}
	if r.Notes != nil {
		out["notes"] = *r.Notes
	}
	return out
}
