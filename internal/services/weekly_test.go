package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imaaryan1108/consist/internal/models"
	"github.com/imaaryan1108/consist/internal/scoring"
)

func ptr(v float64) *float64 { return &v }

func TestWeeklySubmitTracksChange(t *testing.T) {
	env := newTestEnv(t)
	u := env.user(t, "ana")
	_, err := env.svc.Body.Upsert(env.ctx, u.ID, models.UpsertBodyProfileRequest{
		HeightCm:        170,
		CurrentWeightKg: 80,
		Measurements:    models.Measurements{WaistCm: ptr(90), ChestCm: ptr(100)},
	})
	require.NoError(t, err)

	// Wednesday of the first week.
	env.clock.advance(2)
	sub, err := env.svc.Weekly.Submit(env.ctx, u.ID, models.SubmitWeeklyCheckinRequest{WeightKg: 79.5})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-08", sub.Checkin.WeekStartDate)
	assert.Nil(t, sub.Checkin.WeightChangeKg)

	env.clock.advance(7)
	sub, err = env.svc.Weekly.Submit(env.ctx, u.ID, models.SubmitWeeklyCheckinRequest{
		WeightKg:     78.5,
		Measurements: models.Measurements{WaistCm: ptr(88)},
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", sub.Checkin.WeekStartDate)
	require.NotNil(t, sub.Checkin.WeightChangeKg)
	assert.InDelta(t, -1.0, *sub.Checkin.WeightChangeKg, 1e-9)

	// Resubmitting in the same week replaces the row, still compared to last week.
	sub, err = env.svc.Weekly.Submit(env.ctx, u.ID, models.SubmitWeeklyCheckinRequest{WeightKg: 78})
	require.NoError(t, err)
	require.NotNil(t, sub.Checkin.WeightChangeKg)
	assert.InDelta(t, -1.5, *sub.Checkin.WeightChangeKg, 1e-9)

	history, err := env.svc.Weekly.History(env.ctx, u.ID, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 78.0, history[0].WeightKg)

	profile, err := env.svc.Body.Get(env.ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 78.0, profile.CurrentWeightKg)
	require.NotNil(t, profile.Measurements.WaistCm)
	assert.Equal(t, 88.0, *profile.Measurements.WaistCm)
	require.NotNil(t, profile.Measurements.ChestCm, "unsent measurements are kept")
	assert.Equal(t, 100.0, *profile.Measurements.ChestCm)
}

func TestWeeklySubmitAwardsWeightMilestone(t *testing.T) {
	env := newTestEnv(t)
	u := env.user(t, "ben")
	_, err := env.svc.Body.Upsert(env.ctx, u.ID, models.UpsertBodyProfileRequest{HeightCm: 180, CurrentWeightKg: 90})
	require.NoError(t, err)
	_, err = env.svc.Targets.Set(env.ctx, u.ID, models.SetTargetRequest{TargetWeightKg: 80, TargetDate: "2024-06-01"})
	require.NoError(t, err)

	env.clock.advance(7)
	sub, err := env.svc.Weekly.Submit(env.ctx, u.ID, models.SubmitWeeklyCheckinRequest{WeightKg: 87.5})
	require.NoError(t, err)
	require.Len(t, sub.Milestones, 1)
	assert.Equal(t, string(scoring.KindWeightThreshold), sub.Milestones[0].Type)
	assert.Equal(t, 10, sub.Milestones[0].BonusPoints)

	assert.Equal(t, 10, env.reload(t, u.ID).Score)
}

func TestWeeklySubmitValidates(t *testing.T) {
	env := newTestEnv(t)
	u := env.user(t, "cy")

	_, err := env.svc.Weekly.Submit(env.ctx, u.ID, models.SubmitWeeklyCheckinRequest{WeightKg: 0})
	assert.ErrorIs(t, err, scoring.ErrInvalidArgument)

	_, err = env.svc.Weekly.Submit(env.ctx, u.ID, models.SubmitWeeklyCheckinRequest{WeightKg: 70, Measurements: models.Measurements{ArmsCm: ptr(-1)}})
	assert.ErrorIs(t, err, scoring.ErrInvalidArgument)
}

func TestWeeklyPrompt(t *testing.T) {
	env := newTestEnv(t)
	u := env.user(t, "dee")

	p, err := env.svc.Weekly.Prompt(env.ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, p.Due)
	assert.Equal(t, "2024-01-08", p.WeekStartDate)
	assert.Equal(t, "2024-01-14", p.WeekEndDate)
	assert.Nil(t, p.Latest)

	_, err = env.svc.Weekly.Submit(env.ctx, u.ID, models.SubmitWeeklyCheckinRequest{WeightKg: 70})
	require.NoError(t, err)

	p, err = env.svc.Weekly.Prompt(env.ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, p.Due)
	require.NotNil(t, p.Latest)

	env.clock.advance(7)
	p, err = env.svc.Weekly.Prompt(env.ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, p.Due)
}
