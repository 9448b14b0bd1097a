package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/imaaryan1108/consist/internal/models"
	"github.com/imaaryan1108/consist/internal/store"
)

// NotificationService writes inbox entries and forwards them to the user's
// device when a Messenger is configured.
type NotificationService struct {
	store     *store.Store
	messenger Messenger
	log       *zap.Logger
}

// NewNotificationService accepts a nil messenger.
func NewNotificationService(st *store.Store, messenger Messenger, log *zap.Logger) *NotificationService {
	return &NotificationService{store: st, messenger: messenger, log: log}
}

// Notify stores a notification and sends the device copy in the background.
func (s *NotificationService) Notify(ctx context.Context, userID uuid.UUID, kind, title, body string, metadata map[string]interface{}) error {
	n := models.Notification{
		UserID: userID,
		Type:   kind,
		Title:  title,
		Body:   body,
	}

	var pushData map[string]string
	if metadata != nil {
		raw, err := json.Marshal(metadata)
		if err != nil {
			return fmt.Errorf("encode notification metadata: %w", err)
		}
		n.Metadata = datatypes.JSON(raw)

		pushData = make(map[string]string, len(metadata)+1)
		for k, v := range metadata {
			pushData[k] = fmt.Sprintf("%v", v)
		}
		pushData["type"] = kind
	}

	if err := s.store.CreateNotification(ctx, &n); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	if s.messenger != nil {
		go s.sendToDevice(userID, title, body, pushData)
	}
	return nil
}

func (s *NotificationService) sendToDevice(userID uuid.UUID, title, body string, data map[string]string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := s.store.GetUser(ctx, userID)
	if err != nil || user.FCMToken == "" {
		return
	}
	if err := s.messenger.Send(ctx, user.FCMToken, title, body, data); err != nil {
		s.log.Warn("fcm send failed", zap.String("user_id", userID.String()), zap.Error(err))
	}
}

type NotificationPage struct {
	Notifications []models.Notification `json:"notifications"`
	Total         int64                 `json:"total"`
	Unread        int64                 `json:"unread"`
	Page          int                   `json:"page"`
	Limit         int                   `json:"limit"`
}

func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, page, limit int) (*NotificationPage, error) {
	page, limit = normalizePage(page, limit)
	rows, total, unread, err := s.store.ListNotifications(ctx, userID, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	return &NotificationPage{Notifications: rows, Total: total, Unread: unread, Page: page, Limit: limit}, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	ok, err := s.store.MarkNotificationRead(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *NotificationService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	ok, err := s.store.DeleteNotification(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.store.MarkAllNotificationsRead(ctx, userID)
}

func (s *NotificationService) RegisterDeviceToken(ctx context.Context, userID uuid.UUID, token string) error {
	if token == "" {
		return ErrDeviceTokenRequired
	}
	return s.store.SetFCMToken(ctx, userID, token)
}

// normalizePage applies the API's pagination defaults: page from 1, limit 1..50.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}
	return page, limit
}
