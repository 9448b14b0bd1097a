package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/imaaryan1108/consist/internal/models"
)

func (s *Store) GetTarget(ctx context.Context, userID uuid.UUID) (*models.TargetGoal, error) {
	var t models.TargetGoal
	if err := s.conn(ctx).Where("user_id = ?", userID).First(&t).Error; err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

// ReplaceTarget removes any existing goal for t.UserID and inserts t, so the
// replaced goal gets a fresh ID.
func (s *Store) ReplaceTarget(ctx context.Context, t *models.TargetGoal) error {
	return translate(s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", t.UserID).Delete(&models.TargetGoal{}).Error; err != nil {
			return err
		}
		t.ID = uuid.Nil
		return tx.Create(t).Error
	}))
}

// DeleteTarget reports whether a goal existed.
func (s *Store) DeleteTarget(ctx context.Context, userID uuid.UUID) (bool, error) {
	res := s.conn(ctx).Where("user_id = ?", userID).Delete(&models.TargetGoal{})
	return res.RowsAffected > 0, translate(res.Error)
}

func (s *Store) GetBodyProfile(ctx context.Context, userID uuid.UUID) (*models.BodyProfile, error) {
	var p models.BodyProfile
	if err := s.conn(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

// SaveBodyProfile inserts p when it has no ID yet, otherwise updates every column.
func (s *Store) SaveBodyProfile(ctx context.Context, p *models.BodyProfile) error {
	if p.ID == uuid.Nil {
		return translate(s.conn(ctx).Create(p).Error)
	}
	return translate(s.conn(ctx).Save(p).Error)
}

// LatestWeeklyCheckins returns up to limit weigh-ins, newest week first.
func (s *Store) LatestWeeklyCheckins(ctx context.Context, userID uuid.UUID, limit int) ([]models.WeeklyCheckin, error) {
	var rows []models.WeeklyCheckin
	q := s.conn(ctx).Where("user_id = ?", userID).Order("week_start_date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&rows).Error
	return rows, translate(err)
}

func (s *Store) GetWeeklyCheckin(ctx context.Context, userID uuid.UUID, weekStart string) (*models.WeeklyCheckin, error) {
	var w models.WeeklyCheckin
	err := s.conn(ctx).Where("user_id = ? AND week_start_date = ?", userID, weekStart).First(&w).Error
	if err != nil {
		return nil, translate(err)
	}
	return &w, nil
}

// PreviousWeeklyCheckin returns the latest weigh-in strictly before weekStart.
func (s *Store) PreviousWeeklyCheckin(ctx context.Context, userID uuid.UUID, weekStart string) (*models.WeeklyCheckin, error) {
	var w models.WeeklyCheckin
	err := s.conn(ctx).
		Where("user_id = ? AND week_start_date < ?", userID, weekStart).
		Order("week_start_date DESC").
		First(&w).Error
	if err != nil {
		return nil, translate(err)
	}
	return &w, nil
}

func (s *Store) SaveWeeklyCheckin(ctx context.Context, w *models.WeeklyCheckin) error {
	if w.ID == uuid.Nil {
		return translate(s.conn(ctx).Create(w).Error)
	}
	return translate(s.conn(ctx).Save(w).Error)
}
