package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/imaaryan1108/consist/internal/models"
)

func exercisesInOrder(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

// UpsertWorkout writes w as the user's workout for w.Date. An existing row
// keeps its ID and exercises; w is filled with the stored ID and creation time.
// Two first writes for the same day race on the unique index, and the loser
// gets ErrDuplicate.
func (s *Store) UpsertWorkout(ctx context.Context, w *models.WorkoutLog) error {
	return translate(s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.WorkoutLog
		err := tx.Where("user_id = ? AND date = ?", w.UserID, w.Date).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Omit("Exercises").Create(w).Error
		}
		if err != nil {
			return err
		}
		w.ID = existing.ID
		w.CreatedAt = existing.CreatedAt
		return tx.Model(&existing).Updates(map[string]interface{}{
			"workout_type":     w.WorkoutType,
			"duration_minutes": w.DurationMinutes,
			"muscle_group":     w.MuscleGroup,
			"notes":            w.Notes,
		}).Error
	}))
}

// GetWorkout returns the user's workout for date with its exercises.
func (s *Store) GetWorkout(ctx context.Context, userID uuid.UUID, date string) (*models.WorkoutLog, error) {
	var w models.WorkoutLog
	err := s.conn(ctx).Preload("Exercises", exercisesInOrder).
		Where("user_id = ? AND date = ?", userID, date).
		First(&w).Error
	if err != nil {
		return nil, translate(err)
	}
	return &w, nil
}

// GetWorkoutByID only finds workouts owned by userID.
func (s *Store) GetWorkoutByID(ctx context.Context, userID, id uuid.UUID) (*models.WorkoutLog, error) {
	var w models.WorkoutLog
	if err := s.conn(ctx).Where("id = ? AND user_id = ?", id, userID).First(&w).Error; err != nil {
		return nil, translate(err)
	}
	return &w, nil
}

// ListWorkouts returns up to limit workouts with exercises, newest day first.
func (s *Store) ListWorkouts(ctx context.Context, userID uuid.UUID, limit int) ([]models.WorkoutLog, error) {
	var rows []models.WorkoutLog
	err := s.conn(ctx).Preload("Exercises", exercisesInOrder).
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, translate(err)
}

// WorkoutDatesBetween lists the days in [start, end] that have a workout.
func (s *Store) WorkoutDatesBetween(ctx context.Context, userID uuid.UUID, start, end string) ([]string, error) {
	var dates []string
	err := s.conn(ctx).Model(&models.WorkoutLog{}).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date DESC").
		Pluck("date", &dates).Error
	return dates, translate(err)
}

// DeleteWorkout removes the day's workout and its exercises, reporting
// whether there was one.
func (s *Store) DeleteWorkout(ctx context.Context, userID uuid.UUID, date string) (bool, error) {
	found := false
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var w models.WorkoutLog
		err := tx.Where("user_id = ? AND date = ?", userID, date).First(&w).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := tx.Where("workout_log_id = ?", w.ID).Delete(&models.ExerciseLog{}).Error; err != nil {
			return err
		}
		found = true
		return tx.Delete(&w).Error
	})
	return found, translate(err)
}

func (s *Store) CreateExercise(ctx context.Context, e *models.ExerciseLog) error {
	return translate(s.conn(ctx).Create(e).Error)
}

// GetExercise only finds exercises owned by userID.
func (s *Store) GetExercise(ctx context.Context, userID, id uuid.UUID) (*models.ExerciseLog, error) {
	var e models.ExerciseLog
	if err := s.conn(ctx).Where("id = ? AND user_id = ?", id, userID).First(&e).Error; err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

func (s *Store) UpdateExercise(ctx context.Context, userID, id uuid.UUID, changes map[string]interface{}) error {
	return translate(s.conn(ctx).Model(&models.ExerciseLog{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(changes).Error)
}

func (s *Store) DeleteExercise(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	res := s.conn(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.ExerciseLog{})
	return res.RowsAffected > 0, translate(res.Error)
}

// ExerciseHistory returns the latest sets of one exercise, matching the name
// case-insensitively.
func (s *Store) ExerciseHistory(ctx context.Context, userID uuid.UUID, name string, limit int) ([]models.ExerciseLog, error) {
	var rows []models.ExerciseLog
	err := s.conn(ctx).
		Where("user_id = ? AND LOWER(exercise_name) = LOWER(?)", userID, name).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, translate(err)
}
