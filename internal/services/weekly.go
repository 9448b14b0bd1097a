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

const defaultWeeklyHistory = 12

type WeeklyService struct {
	store      *store.Store
	clock      scoring.Clock
	milestones *MilestoneService
	log        *zap.Logger
}

func NewWeeklyService(st *store.Store, clock scoring.Clock, milestones *MilestoneService, log *zap.Logger) *WeeklyService {
	return &WeeklyService{store: st, clock: clock, milestones: milestones, log: log}
}

type WeeklySubmission struct {
	Checkin    *models.WeeklyCheckin `json:"checkin"`
	Milestones []models.Milestone    `json:"milestones"`
}

// Submit records this week's weigh-in, replacing an earlier one from the same
// week, and moves the body profile to the new weight.
func (s *WeeklyService) Submit(ctx context.Context, userID uuid.UUID, req models.SubmitWeeklyCheckinRequest) (*WeeklySubmission, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	weekStart, err := scoring.WeekStart(s.clock.Today())
	if err != nil {
		return nil, err
	}

	var checkin *models.WeeklyCheckin
	err = s.store.Transaction(ctx, func(tx *store.Store) error {
		var change *float64
		prev, err := tx.PreviousWeeklyCheckin(ctx, userID, weekStart)
		switch {
		case err == nil:
			d := req.WeightKg - prev.WeightKg
			change = &d
		case !errors.Is(err, store.ErrNotFound):
			return err
		}

		checkin, err = tx.GetWeeklyCheckin(ctx, userID, weekStart)
		if errors.Is(err, store.ErrNotFound) {
			checkin = &models.WeeklyCheckin{UserID: userID, WeekStartDate: weekStart}
		} else if err != nil {
			return err
		}
		checkin.WeightKg = req.WeightKg
		checkin.Measurements = req.Measurements
		checkin.WeightChangeKg = change
		if err := tx.SaveWeeklyCheckin(ctx, checkin); err != nil {
			return err
		}

		profile, err := tx.GetBodyProfile(ctx, userID)
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		profile.CurrentWeightKg = req.WeightKg
		profile.Measurements.Merge(req.Measurements)
		return tx.SaveBodyProfile(ctx, profile)
	})
	if err != nil {
		return nil, fmt.Errorf("submit weekly checkin: %w", err)
	}

	// A new weight can cross a threshold or reach the goal.
	awarded, _, err := s.milestones.Evaluate(ctx, userID)
	if err != nil {
		s.log.Warn("evaluate milestones after weigh-in", zap.String("user_id", userID.String()), zap.Error(err))
	}
	return &WeeklySubmission{Checkin: checkin, Milestones: awarded}, nil
}

func (s *WeeklyService) History(ctx context.Context, userID uuid.UUID, limit int) ([]models.WeeklyCheckin, error) {
	if limit <= 0 {
		limit = defaultWeeklyHistory
	}
	return s.store.LatestWeeklyCheckins(ctx, userID, limit)
}

type WeeklyPrompt struct {
	WeekStartDate string                `json:"weekStartDate"`
	WeekEndDate   string                `json:"weekEndDate"`
	Due           bool                  `json:"due"`
	Latest        *models.WeeklyCheckin `json:"latest"`
}

// Prompt reports whether the current week still lacks a weigh-in.
func (s *WeeklyService) Prompt(ctx context.Context, userID uuid.UUID) (*WeeklyPrompt, error) {
	start, end, err := scoring.WeekBounds(s.clock, 0)
	if err != nil {
		return nil, err
	}
	out := &WeeklyPrompt{WeekStartDate: start, WeekEndDate: end}

	_, err = s.store.GetWeeklyCheckin(ctx, userID, start)
	switch {
	case errors.Is(err, store.ErrNotFound):
		out.Due = true
	case err != nil:
		return nil, err
	}

	latest, err := s.store.LatestWeeklyCheckins(ctx, userID, 1)
	if err != nil {
		return nil, err
	}
	if len(latest) > 0 {
		out.Latest = &latest[0]
	}
	return out, nil
}
