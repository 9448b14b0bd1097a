package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/imaaryan1108/consist/internal/models"
)

// InsertCheckIn records a check-in. A second insert for the same user and
// date fails with ErrDuplicate from the unique index.
func (s *Store) InsertCheckIn(ctx context.Context, userID uuid.UUID, date string) error {
	return translate(s.conn(ctx).Create(&models.CheckIn{UserID: userID, Date: date}).Error)
}

func (s *Store) HasCheckIn(ctx context.Context, userID uuid.UUID, date string) (bool, error) {
	var count int64
	err := s.conn(ctx).Model(&models.CheckIn{}).
		Where("user_id = ? AND date = ?", userID, date).
		Count(&count).Error
	return count > 0, translate(err)
}

// RecentCheckInDates returns up to limit check-in dates, newest first.
func (s *Store) RecentCheckInDates(ctx context.Context, userID uuid.UUID, limit int) ([]string, error) {
	return s.CheckInDatesPage(ctx, userID, 0, limit)
}

// CheckInDatesPage returns check-in dates newest first, skipping offset rows.
func (s *Store) CheckInDatesPage(ctx context.Context, userID uuid.UUID, offset, limit int) ([]string, error) {
	var dates []string
	err := s.conn(ctx).Model(&models.CheckIn{}).
		Where("user_id = ?", userID).
		Order("date DESC").
		Offset(offset).
		Limit(limit).
		Pluck("date", &dates).Error
	return dates, translate(err)
}

// CheckedInOn reports which of userIDs have a check-in on date.
func (s *Store) CheckedInOn(ctx context.Context, userIDs []uuid.UUID, date string) (map[uuid.UUID]bool, error) {
	out := make(map[uuid.UUID]bool, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	var ids []uuid.UUID
	err := s.conn(ctx).Model(&models.CheckIn{}).
		Where("user_id IN ? AND date = ?", userIDs, date).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, translate(err)
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

// ApplyCheckInStats writes the outcome of a check-in in one UPDATE. Counters
// are incremented in SQL and longest_streak only ever grows, so concurrent
// bonus awards cannot be lost.
func (s *Store) ApplyCheckInStats(ctx context.Context, userID uuid.UUID, date string, streak, points int) error {
	res := s.conn(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"current_streak":     streak,
			"total_days":         gorm.Expr("total_days + 1"),
			"score":              gorm.Expr("score + ?", points),
			"last_check_in_date": date,
			"longest_streak":     gorm.Expr("CASE WHEN longest_streak < ? THEN ? ELSE longest_streak END", streak, streak),
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementScore adds n points with a single atomic UPDATE.
func (s *Store) IncrementScore(ctx context.Context, userID uuid.UUID, n int) error {
	res := s.conn(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("score", gorm.Expr("score + ?", n))
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
