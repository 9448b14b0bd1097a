package services

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Messenger sends a device notification.
type Messenger interface {
	Send(ctx context.Context, token, title, body string, data map[string]string) error
}

// FCMMessenger delivers through Firebase Cloud Messaging.
type FCMMessenger struct {
	client *messaging.Client
}

// NewFCMMessenger returns nil, nil when no service account is configured so
// device delivery is simply disabled in development.
func NewFCMMessenger(ctx context.Context, serviceAccountPath string, log *zap.Logger) (*FCMMessenger, error) {
	if serviceAccountPath == "" {
		log.Info("fcm: no service account configured, device notifications disabled")
		return nil, nil
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(serviceAccountPath))
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("get messaging client: %w", err)
	}

	log.Info("fcm: device notifications enabled")
	return &FCMMessenger{client: client}, nil
}

func (m *FCMMessenger) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	_, err := m.client.Send(ctx, msg)
	return err
}
