package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/imaaryan1108/consist/internal/models"
	"github.com/imaaryan1108/consist/internal/scoring"
	"github.com/imaaryan1108/consist/internal/store"
)

type TargetService struct {
	store *store.Store
	clock scoring.Clock
}

func NewTargetService(st *store.Store, clock scoring.Clock) *TargetService {
	return &TargetService{store: st, clock: clock}
}

func (s *TargetService) Get(ctx context.Context, userID uuid.UUID) (*models.TargetGoal, error) {
	t, err := s.store.GetTarget(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNoGoalConfigured
	}
	return t, err
}

// Set replaces the user's goal. The starting point is the body profile's
// current weight as of today, and the target must be below it.
func (s *TargetService) Set(ctx context.Context, userID uuid.UUID, req models.SetTargetRequest) (*models.TargetGoal, error) {
	if err := req.Macros.Validate(); err != nil {
		return nil, err
	}
	profile, err := s.store.GetBodyProfile(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNoProfileConfigured
	}
	if err != nil {
		return nil, err
	}

	goal := models.TargetGoal{
		UserID:           userID,
		StartingWeightKg: profile.CurrentWeightKg,
		StartingDate:     s.clock.Today(),
		TargetWeightKg:   req.TargetWeightKg,
		TargetDate:       req.TargetDate,
		CustomMessage:    req.CustomMessage,
		Macros:           req.Macros,
	}
	if err := goal.Scoring().Validate(); err != nil {
		return nil, err
	}
	if goal.TargetWeightKg >= goal.StartingWeightKg {
		return nil, fmt.Errorf("%w: target weight must be below the current %gkg", scoring.ErrInvalidArgument, goal.StartingWeightKg)
	}
	if err := s.store.ReplaceTarget(ctx, &goal); err != nil {
		return nil, fmt.Errorf("replace target: %w", err)
	}
	return &goal, nil
}

func (s *TargetService) Delete(ctx context.Context, userID uuid.UUID) error {
	ok, err := s.store.DeleteTarget(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoGoalConfigured
	}
	return nil
}

// Progress reports where the user stands against their goal, or which input
// is missing.
func (s *TargetService) Progress(ctx context.Context, userID uuid.UUID) (*scoring.TargetProgress, error) {
	goal, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.store.GetBodyProfile(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNoProfileConfigured
	}
	if err != nil {
		return nil, err
	}
	weight := profile.CurrentWeightKg
	return scoring.CalculateTargetProgress(goal.Scoring(), &weight, s.clock.Today())
}

// progressIfAvailable is Progress with missing inputs reported as nil.
func (s *TargetService) progressIfAvailable(ctx context.Context, userID uuid.UUID) (*scoring.TargetProgress, error) {
	p, err := s.Progress(ctx, userID)
	if errors.Is(err, ErrNoGoalConfigured) || errors.Is(err, ErrNoProfileConfigured) {
		return nil, nil
	}
	return p, err
}
