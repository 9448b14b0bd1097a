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

type WorkoutService struct {
	store *store.Store
	clock scoring.Clock
}

func NewWorkoutService(st *store.Store, clock scoring.Clock) *WorkoutService {
	return &WorkoutService{store: st, clock: clock}
}

// Log records the day's workout, overwriting any earlier entry for that day.
func (s *WorkoutService) Log(ctx context.Context, userID uuid.UUID, req models.LogWorkoutRequest) (*models.WorkoutLog, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	date, err := resolveDate(s.clock, req.Date)
	if err != nil {
		return nil, err
	}
	w := &models.WorkoutLog{
		UserID:          userID,
		Date:            date,
		WorkoutType:     req.WorkoutType,
		DurationMinutes: req.DurationMinutes,
		MuscleGroup:     req.MuscleGroup,
		Notes:           req.Notes,
	}
	err = s.store.UpsertWorkout(ctx, w)
	if errors.Is(err, store.ErrDuplicate) {
		// lost the first-write race; the row exists now, so update it
		w.ID = uuid.Nil
		err = s.store.UpsertWorkout(ctx, w)
	}
	if err != nil {
		return nil, fmt.Errorf("upsert workout: %w", err)
	}
	return s.store.GetWorkout(ctx, userID, date)
}

// ForDate returns the day's workout with its exercises. An empty date means today.
func (s *WorkoutService) ForDate(ctx context.Context, userID uuid.UUID, date string) (*models.WorkoutLog, error) {
	date, err := resolveDate(s.clock, date)
	if err != nil {
		return nil, err
	}
	w, err := s.store.GetWorkout(ctx, userID, date)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrWorkoutNotFound
	}
	return w, err
}

// History lists recent workouts, newest first. limit is clamped to 1..100.
func (s *WorkoutService) History(ctx context.Context, userID uuid.UUID, limit int) ([]models.WorkoutLog, error) {
	if limit < 1 || limit > 100 {
		limit = 30
	}
	return s.store.ListWorkouts(ctx, userID, limit)
}

func (s *WorkoutService) Delete(ctx context.Context, userID uuid.UUID, date string) error {
	date, err := resolveDate(s.clock, date)
	if err != nil {
		return err
	}
	ok, err := s.store.DeleteWorkout(ctx, userID, date)
	if err != nil {
		return err
	}
	if !ok {
		return ErrWorkoutNotFound
	}
	return nil
}

// AddExercise appends an exercise to one of the user's own workouts.
func (s *WorkoutService) AddExercise(ctx context.Context, userID, workoutID uuid.UUID, req models.LogExerciseRequest) (*models.ExerciseLog, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.store.GetWorkoutByID(ctx, userID, workoutID); errors.Is(err, store.ErrNotFound) {
		return nil, ErrWorkoutNotFound
	} else if err != nil {
		return nil, err
	}
	e := &models.ExerciseLog{
		UserID:       userID,
		WorkoutLogID: workoutID,
		ExerciseName: req.ExerciseName,
		Sets:         req.Sets,
		Reps:         req.Reps,
		WeightKg:     req.WeightKg,
		RestSeconds:  req.RestSeconds,
		Notes:        req.Notes,
	}
	if err := s.store.CreateExercise(ctx, e); err != nil {
		return nil, fmt.Errorf("create exercise: %w", err)
	}
	return e, nil
}

func (s *WorkoutService) UpdateExercise(ctx context.Context, userID, id uuid.UUID, req models.UpdateExerciseRequest) (*models.ExerciseLog, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	e, err := s.store.GetExercise(ctx, userID, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrExerciseNotFound
	}
	if err != nil {
		return nil, err
	}
	changes := req.Changes()
	if len(changes) == 0 {
		return e, nil
	}
	if err := s.store.UpdateExercise(ctx, userID, id, changes); err != nil {
		return nil, fmt.Errorf("update exercise: %w", err)
	}
	return s.store.GetExercise(ctx, userID, id)
}

func (s *WorkoutService) DeleteExercise(ctx context.Context, userID, id uuid.UUID) error {
	ok, err := s.store.DeleteExercise(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrExerciseNotFound
	}
	return nil
}

// ExerciseHistory returns past sets of the named exercise for progress
// tracking. limit is clamped to 1..50.
func (s *WorkoutService) ExerciseHistory(ctx context.Context, userID uuid.UUID, name string, limit int) ([]models.ExerciseLog, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: exercise name is required", scoring.ErrInvalidArgument)
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}
	return s.store.ExerciseHistory(ctx, userID, name, limit)
}
