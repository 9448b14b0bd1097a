package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/imaaryan1108/consist/internal/models"
)

func (s *Store) CreateMeal(ctx context.Context, m *models.MealLog) error {
	return translate(s.conn(ctx).Create(m).Error)
}

// GetMeal only finds meals owned by userID.
func (s *Store) GetMeal(ctx context.Context, userID, id uuid.UUID) (*models.MealLog, error) {
	var m models.MealLog
	if err := s.conn(ctx).Where("id = ? AND user_id = ?", id, userID).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

// MealsOn returns the day's meals in the order they were logged.
func (s *Store) MealsOn(ctx context.Context, userID uuid.UUID, date string) ([]models.MealLog, error) {
	var rows []models.MealLog
	err := s.conn(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, translate(err)
}

// MealsBetween returns meals with start <= date <= end, newest day first.
func (s *Store) MealsBetween(ctx context.Context, userID uuid.UUID, start, end string) ([]models.MealLog, error) {
	var rows []models.MealLog
	err := s.conn(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date DESC").Order("created_at ASC").
		Find(&rows).Error
	return rows, translate(err)
}

func (s *Store) UpdateMeal(ctx context.Context, userID, id uuid.UUID, changes map[string]interface{}) error {
	return translate(s.conn(ctx).Model(&models.MealLog{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(changes).Error)
}

// DeleteMeal reports whether a meal owned by userID was removed.
func (s *Store) DeleteMeal(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	res := s.conn(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.MealLog{})
	return res.RowsAffected > 0, translate(res.Error)
}
