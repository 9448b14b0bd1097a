package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/imaaryan1108/consist/internal/models"
	"github.com/imaaryan1108/consist/internal/store"
)

type BodyService struct {
	store *store.Store
}

func NewBodyService(st *store.Store) *BodyService {
	return &BodyService{store: st}
}

func (s *BodyService) Get(ctx context.Context, userID uuid.UUID) (*models.BodyProfile, error) {
	p, err := s.store.GetBodyProfile(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNoProfileConfigured
	}
	return p, err
}

// Upsert creates the profile or overwrites every field of the existing one.
// An omitted unit preference keeps the stored value.
func (s *BodyService) Upsert(ctx context.Context, userID uuid.UUID, req models.UpsertBodyProfileRequest) (*models.BodyProfile, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.store.GetBodyProfile(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		p = &models.BodyProfile{UserID: userID, UnitPreference: models.UnitsMetric}
	} else if err != nil {
		return nil, err
	}

	p.HeightCm = req.HeightCm
	p.CurrentWeightKg = req.CurrentWeightKg
	p.Measurements = req.Measurements
	if req.UnitPreference != nil {
		p.UnitPreference = *req.UnitPreference
	}

	if err := s.store.SaveBodyProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("save body profile: %w", err)
	}
	return p, nil
}
