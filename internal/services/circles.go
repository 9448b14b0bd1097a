package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/imaaryan1108/consist/internal/models"
	"github.com/imaaryan1108/consist/internal/scoring"
	"github.com/imaaryan1108/consist/internal/store"
)

type CircleService struct {
	store         *store.Store
	clock         scoring.Clock
	feed          feed
	notifications *NotificationService
	log           *zap.Logger
}

func NewCircleService(st *store.Store, clock scoring.Clock, publisher Publisher, notifications *NotificationService, log *zap.Logger) *CircleService {
	return &CircleService{
		store:         st,
		clock:         clock,
		feed:          feed{store: st, publisher: publisher},
		notifications: notifications,
		log:           log,
	}
}

// Create makes a new circle and moves the creator into it.
func (s *CircleService) Create(ctx context.Context, userID uuid.UUID, name string) (*models.Circle, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: circle name is required", scoring.ErrInvalidArgument)
	}
	user, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.CircleID != nil {
		return nil, ErrAlreadyInCircle
	}

	circle := models.Circle{Name: name, CreatedBy: &userID}
	err = s.store.Transaction(ctx, func(tx *store.Store) error {
		if err := tx.CreateCircle(ctx, &circle); err != nil {
			return err
		}
		return tx.SetUserCircle(ctx, userID, circle.ID)
	})
	if err != nil {
		return nil, fmt.Errorf("create circle: %w", err)
	}
	return &circle, nil
}

// Join moves the user into the circle with the given code and tells the
// existing members.
func (s *CircleService) Join(ctx context.Context, userID uuid.UUID, code string) (*models.Circle, error) {
	user, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.CircleID != nil {
		return nil, ErrAlreadyInCircle
	}

	circle, err := s.store.GetCircleByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrCircleNotFound
	}
	if err != nil {
		return nil, err
	}

	members, err := s.store.CircleMembers(ctx, circle.ID)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetUserCircle(ctx, userID, circle.ID); err != nil {
		return nil, fmt.Errorf("join circle: %w", err)
	}

	meta := map[string]interface{}{"name": user.Name}
	if err := s.feed.record(ctx, circle.ID, userID, nil, models.ActivityMemberJoined, EventMemberJoined, meta); err != nil {
		s.log.Warn("record join activity", zap.String("user_id", userID.String()), zap.Error(err))
	}
	for _, m := range members {
		body := fmt.Sprintf("%s joined %s", displayName(user), circle.Name)
		if err := s.notifications.Notify(ctx, m.ID, models.NotificationMemberJoined, "New circle member", body, meta); err != nil {
			s.log.Warn("notify member joined", zap.String("user_id", m.ID.String()), zap.Error(err))
		}
	}
	return circle, nil
}

// Members lists the caller's circle, longest current streak first.
func (s *CircleService) Members(ctx context.Context, userID uuid.UUID) ([]models.MemberInfo, error) {
	user, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.CircleID == nil {
		return nil, ErrNotInCircle
	}

	users, err := s.store.CircleMembers(ctx, *user.CircleID)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	checked, err := s.store.CheckedInOn(ctx, ids, s.clock.Today())
	if err != nil {
		return nil, err
	}

	out := make([]models.MemberInfo, len(users))
	for i, u := range users {
		out[i] = models.MemberInfo{
			ID:              u.ID,
			Name:            u.Name,
			CurrentStreak:   u.CurrentStreak,
			LongestStreak:   u.LongestStreak,
			Score:           u.Score,
			LastCheckInDate: u.LastCheckInDate,
			CheckedInToday:  checked[u.ID],
		}
	}
	return out, nil
}

// ActivityItem is a feed entry with its display time.
type ActivityItem struct {
	models.Activity
	RelativeTime string `json:"relativeTime"`
}

type ActivityPage struct {
	Activities []ActivityItem `json:"activities"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
}

func (s *CircleService) Activity(ctx context.Context, userID uuid.UUID, page, limit int) (*ActivityPage, error) {
	user, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.CircleID == nil {
		return nil, ErrNotInCircle
	}

	page, limit = normalizePage(page, limit)
	rows, total, err := s.store.ListActivities(ctx, *user.CircleID, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	items := make([]ActivityItem, len(rows))
	for i, a := range rows {
		items[i] = ActivityItem{Activity: a, RelativeTime: scoring.FormatRelativeTime(now, a.CreatedAt)}
	}
	return &ActivityPage{Activities: items, Total: total, Page: page, Limit: limit}, nil
}

// IsMember reports whether userID belongs to circleID.
func (s *CircleService) IsMember(ctx context.Context, userID, circleID uuid.UUID) (bool, error) {
	user, err := s.user(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.CircleID != nil && *user.CircleID == circleID, nil
}

func (s *CircleService) user(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return loadUser(ctx, s.store, userID)
}

func displayName(u *models.User) string {
	if u.Name != "" {
		return u.Name
	}
	return "Someone"
}
