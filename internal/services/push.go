package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/imaaryan1108/consist/internal/models"
	"github.com/imaaryan1108/consist/internal/scoring"
	"github.com/imaaryan1108/consist/internal/store"
)

// PushService handles nudges between circle members.
type PushService struct {
	store         *store.Store
	clock         scoring.Clock
	notifications *NotificationService
	feed          feed
	maxPerDay     int
	log           *zap.Logger
}

func NewPushService(st *store.Store, clock scoring.Clock, notifications *NotificationService, publisher Publisher, maxPerDay int, log *zap.Logger) *PushService {
	return &PushService{
		store:         st,
		clock:         clock,
		notifications: notifications,
		feed:          feed{store: st, publisher: publisher},
		maxPerDay:     maxPerDay,
		log:           log,
	}
}

type PushResult struct {
	Push       models.Push `json:"push"`
	PushesLeft int         `json:"pushesLeft"`
}

// Push nudges toUserID on behalf of fromUserID. Both must share a circle, the
// target must not have checked in today, and the sender is limited to
// maxPerDay pushes and one per target per day.
func (s *PushService) Push(ctx context.Context, fromUserID, toUserID uuid.UUID) (*PushResult, error) {
	if fromUserID == toUserID {
		return nil, ErrCannotPushSelf
	}
	today := s.clock.Today()

	from, err := loadUser(ctx, s.store, fromUserID)
	if err != nil {
		return nil, err
	}
	if from.CircleID == nil {
		return nil, ErrNotInCircle
	}
	to, err := loadUser(ctx, s.store, toUserID)
	if err != nil {
		return nil, err
	}
	if to.CircleID == nil || *to.CircleID != *from.CircleID {
		return nil, ErrNotCircleMate
	}

	done, err := s.store.HasCheckIn(ctx, toUserID, today)
	if err != nil {
		return nil, err
	}
	if done {
		return nil, ErrTargetAlreadyCheckedIn
	}

	push, err := s.claimSlot(ctx, fromUserID, toUserID, today)
	if err != nil {
		return nil, err
	}

	meta := map[string]interface{}{
		"from_user_id": fromUserID.String(),
		"from_name":    displayName(from),
	}
	body := fmt.Sprintf("%s is pushing you to stay consistent today!", displayName(from))
	if err := s.notifications.Notify(ctx, toUserID, models.NotificationPushReceived, "You got a push 👊", body, meta); err != nil {
		s.log.Warn("notify push", zap.String("user_id", toUserID.String()), zap.Error(err))
	}
	target := toUserID
	if err := s.feed.record(ctx, *from.CircleID, fromUserID, &target, models.ActivityPushed, EventPushed, meta); err != nil {
		s.log.Warn("record push activity", zap.String("user_id", fromUserID.String()), zap.Error(err))
	}

	left := s.maxPerDay - push.Slot
	if left < 0 {
		left = 0
	}
	return &PushResult{Push: *push, PushesLeft: left}, nil
}

// claimSlot inserts the push in the sender's next free daily slot. Losing a
// slot to a concurrent push means counting again, so the limit holds without
// locking.
func (s *PushService) claimSlot(ctx context.Context, fromUserID, toUserID uuid.UUID, today string) (*models.Push, error) {
	for attempt := 0; attempt <= s.maxPerDay; attempt++ {
		sent, err := s.store.CountPushesFrom(ctx, fromUserID, today)
		if err != nil {
			return nil, err
		}
		if int(sent) >= s.maxPerDay {
			return nil, ErrPushLimitExceeded
		}

		push := models.Push{FromUserID: fromUserID, ToUserID: toUserID, Date: today, Slot: int(sent) + 1}
		err = s.store.InsertPush(ctx, &push)
		if err == nil {
			return &push, nil
		}
		if !errors.Is(err, store.ErrDuplicate) {
			return nil, fmt.Errorf("insert push: %w", err)
		}
		again, err := s.store.PushedTo(ctx, fromUserID, toUserID, today)
		if err != nil {
			return nil, err
		}
		if again {
			return nil, ErrAlreadyPushedToday
		}
	}
	return nil, ErrPushLimitExceeded
}
