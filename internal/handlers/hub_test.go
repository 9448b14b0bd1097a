package handlers

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/imaaryan1108/consist/internal/services"
)

func TestHubRooms(t *testing.T) {
	hub := NewHub(zap.NewNop())
	circle := uuid.New()
	a := &connection{userID: uuid.New()}
	b := &connection{userID: uuid.New()}

	hub.register(circle, a)
	hub.register(circle, b)
	assert.Equal(t, 2, hub.Subscribers(circle))

	hub.unregister(circle, a)
	assert.Equal(t, 1, hub.Subscribers(circle))
	hub.unregister(circle, b)
	assert.Equal(t, 0, hub.Subscribers(circle))

	// No subscribers left: publishing is a no-op.
	hub.Publish(circle, uuid.Nil, services.Event{Type: services.EventCheckedIn})
}

func TestStatusFor(t *testing.T) {
	cases := map[error]int{
		services.ErrCannotPushSelf:         400,
		services.ErrInvalidCredentials:     401,
		services.ErrNotCircleMate:          403,
		services.ErrNoGoalConfigured:       404,
		services.ErrNoProfileConfigured:    404,
		services.ErrPushLimitExceeded:      409,
		services.ErrAlreadyPushedToday:     409,
		services.ErrTargetAlreadyCheckedIn: 409,
		assert.AnError:                     500,
	}
	for err, want := range cases {
		assert.Equal(t, want, statusFor(err), err.Error())
	}
}
