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

const defaultMilestoneLimit = 20

type MilestoneService struct {
	store         *store.Store
	clock         scoring.Clock
	targets       *TargetService
	notifications *NotificationService
	feed          feed
	historyLimit  int
	log           *zap.Logger
}

func NewMilestoneService(st *store.Store, clock scoring.Clock, targets *TargetService, notifications *NotificationService, publisher Publisher, historyLimit int, log *zap.Logger) *MilestoneService {
	return &MilestoneService{
		store:         st,
		clock:         clock,
		targets:       targets,
		notifications: notifications,
		feed:          feed{store: st, publisher: publisher},
		historyLimit:  historyLimit,
		log:           log,
	}
}

// List returns the user's most recent milestones.
func (s *MilestoneService) List(ctx context.Context, userID uuid.UUID, limit int) ([]models.Milestone, error) {
	if limit <= 0 {
		limit = defaultMilestoneLimit
	}
	return s.store.ListMilestones(ctx, userID, limit)
}

// Evaluate recomputes the user's streak as of today and awards anything
// newly earned. Running it again awards nothing.
func (s *MilestoneService) Evaluate(ctx context.Context, userID uuid.UUID) ([]models.Milestone, *scoring.TargetProgress, error) {
	user, err := loadUser(ctx, s.store, userID)
	if err != nil {
		return nil, nil, err
	}
	dates, err := streakHistory(ctx, s.store, userID, s.historyLimit)
	if err != nil {
		return nil, nil, err
	}
	streak, err := scoring.CurrentStreak(dates, s.clock.Today())
	if err != nil {
		return nil, nil, err
	}
	return s.evaluate(ctx, user, streak)
}

// evaluate awards milestones for a known streak. Each award and its bonus
// are written in one transaction; feed and inbox entries are best effort.
func (s *MilestoneService) evaluate(ctx context.Context, user *models.User, streak int) ([]models.Milestone, *scoring.TargetProgress, error) {
	progress, err := s.targets.progressIfAvailable(ctx, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("target progress: %w", err)
	}

	rows, err := s.store.ListMilestones(ctx, user.ID, 0)
	if err != nil {
		return nil, progress, err
	}
	existing := make([]scoring.Milestone, 0, len(rows))
	for _, r := range rows {
		m, err := r.Scoring()
		if err != nil {
			s.log.Warn("skip undecodable milestone", zap.String("milestone_id", r.ID.String()), zap.Error(err))
			continue
		}
		existing = append(existing, m)
	}

	earned := scoring.EvaluateMilestones(scoring.MilestoneInput{
		UserID:        user.ID.String(),
		CurrentStreak: streak,
		Progress:      progress,
		Existing:      existing,
		Now:           s.clock.Now(),
	})

	awarded := make([]models.Milestone, 0, len(earned))
	for _, e := range earned {
		row, err := models.NewMilestone(user.ID, e)
		if err != nil {
			return awarded, progress, err
		}
		err = s.store.Transaction(ctx, func(tx *store.Store) error {
			if err := tx.InsertMilestone(ctx, &row); err != nil {
				return err
			}
			return tx.IncrementScore(ctx, user.ID, row.BonusPoints)
		})
		if errors.Is(err, store.ErrDuplicate) {
			// a concurrent evaluation got there first
			continue
		}
		if err != nil {
			return awarded, progress, fmt.Errorf("award %s: %w", row.Type, err)
		}
		awarded = append(awarded, row)
		s.announce(ctx, user, row)
	}
	return awarded, progress, nil
}

func (s *MilestoneService) announce(ctx context.Context, user *models.User, m models.Milestone) {
	meta := map[string]interface{}{
		"milestone_id": m.ID.String(),
		"type":         m.Type,
		"title":        m.Title,
		"bonus_points": m.BonusPoints,
	}
	body := fmt.Sprintf("%s %s (+%d points)", m.Icon, m.Description, m.BonusPoints)
	if err := s.notifications.Notify(ctx, user.ID, models.NotificationMilestoneEarned, m.Title, body, meta); err != nil {
		s.log.Warn("notify milestone", zap.String("user_id", user.ID.String()), zap.Error(err))
	}
	if user.CircleID == nil {
		return
	}
	if err := s.feed.record(ctx, *user.CircleID, user.ID, nil, models.ActivityMilestoneEarned, EventMilestoneEarned, meta); err != nil {
		s.log.Warn("record milestone activity", zap.String("user_id", user.ID.String()), zap.Error(err))
	}
}
