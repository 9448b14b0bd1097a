package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/imaaryan1108/consist/internal/models"
)

func (s *Store) CountPushesFrom(ctx context.Context, fromUserID uuid.UUID, date string) (int64, error) {
	var count int64
	err := s.conn(ctx).Model(&models.Push{}).
		Where("from_user_id = ? AND date = ?", fromUserID, date).
		Count(&count).Error
	return count, translate(err)
}

// WasPushedOn reports whether anyone pushed toUserID on date.
func (s *Store) WasPushedOn(ctx context.Context, toUserID uuid.UUID, date string) (bool, error) {
	var count int64
	err := s.conn(ctx).Model(&models.Push{}).
		Where("to_user_id = ? AND date = ?", toUserID, date).
		Count(&count).Error
	return count > 0, translate(err)
}

// PushedTo reports whether fromUserID already pushed toUserID on date.
func (s *Store) PushedTo(ctx context.Context, fromUserID, toUserID uuid.UUID, date string) (bool, error) {
	var count int64
	err := s.conn(ctx).Model(&models.Push{}).
		Where("from_user_id = ? AND to_user_id = ? AND date = ?", fromUserID, toUserID, date).
		Count(&count).Error
	return count > 0, translate(err)
}

// InsertPush fails with ErrDuplicate when the pair already has a push that
// day or the sender's slot is taken.
func (s *Store) InsertPush(ctx context.Context, p *models.Push) error {
	return translate(s.conn(ctx).Create(p).Error)
}
