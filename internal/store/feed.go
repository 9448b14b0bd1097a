package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/imaaryan1108/consist/internal/models"
)

func (s *Store) CreateActivity(ctx context.Context, a *models.Activity) error {
	return translate(s.conn(ctx).Omit("Actor").Create(a).Error)
}

// ListActivities pages through a circle's feed, newest first, with actors preloaded.
func (s *Store) ListActivities(ctx context.Context, circleID uuid.UUID, offset, limit int) ([]models.Activity, int64, error) {
	var (
		rows  []models.Activity
		total int64
	)
	q := s.conn(ctx).Model(&models.Activity{}).Where("circle_id = ?", circleID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	err := s.conn(ctx).
		Where("circle_id = ?", circleID).
		Preload("Actor").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	return rows, total, translate(err)
}

func (s *Store) CreateNotification(ctx context.Context, n *models.Notification) error {
	return translate(s.conn(ctx).Create(n).Error)
}

// ListNotifications pages through a user's notifications, newest first, and
// also reports the total and unread counts.
func (s *Store) ListNotifications(ctx context.Context, userID uuid.UUID, offset, limit int) ([]models.Notification, int64, int64, error) {
	var (
		rows          []models.Notification
		total, unread int64
	)
	if err := s.conn(ctx).Model(&models.Notification{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, 0, translate(err)
	}
	err := s.conn(ctx).Model(&models.Notification{}).
		Where(&models.Notification{UserID: userID}).
		Where(map[string]interface{}{"read": false}).
		Count(&unread).Error
	if err != nil {
		return nil, 0, 0, translate(err)
	}
	err = s.conn(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	return rows, total, unread, translate(err)
}

// MarkNotificationRead reports whether a notification owned by userID was found.
func (s *Store) MarkNotificationRead(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	res := s.conn(ctx).Model(&models.Notification{}).
		Where(&models.Notification{ID: id, UserID: userID}).
		Update("read", true)
	return res.RowsAffected > 0, translate(res.Error)
}

func (s *Store) MarkAllNotificationsRead(ctx context.Context, userID uuid.UUID) error {
	return translate(s.conn(ctx).Model(&models.Notification{}).
		Where(&models.Notification{UserID: userID}).
		Update("read", true).Error)
}

func (s *Store) DeleteNotification(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	res := s.conn(ctx).Where(&models.Notification{ID: id, UserID: userID}).Delete(&models.Notification{})
	return res.RowsAffected > 0, translate(res.Error)
}
