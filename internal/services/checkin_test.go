package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/imaaryan1108/consist/internal/cache"
	"github.com/imaaryan1108/consist/internal/models"
	"github.com/imaaryan1108/consist/internal/scoring"
)

func TestCheckInFirstDay(t *testing.T) {
	env := newTestEnv(t)
	u := env.user(t, "ana")
	env.circle(t, u)

	res, err := env.svc.CheckIns.CheckIn(env.ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-08", res.Date)
	assert.Equal(t, 1, res.Streak)
	assert.Equal(t, 600, res.Points.Total)
	assert.True(t, res.IsNewRecord)
	assert.Nil(t, res.Progress)

	got := env.reload(t, u.ID)
	assert.Equal(t, 1, got.CurrentStreak)
	assert.Equal(t, 1, got.LongestStreak)
	assert.Equal(t, 1, got.TotalDays)
	assert.Equal(t, 600, got.Score)

	page, err := env.svc.Circles.Activity(env.ctx, u.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, page.Activities, 1)
	assert.Equal(t, models.ActivityStreakRecord, page.Activities[0].Type)
	assert.Contains(t, env.pub.types(), EventCheckedIn)
}

func TestCheckInTwiceSameDayIsNoop(t *testing.T) {
	env := newTestEnv(t)
	u := env.user(t, "ben")

	_, err := env.svc.CheckIns.CheckIn(env.ctx, u.ID)
	require.NoError(t, err)
	_, err = env.svc.CheckIns.CheckIn(env.ctx, u.ID)
	assert.ErrorIs(t, err, ErrAlreadyCheckedInToday)

	got := env.reload(t, u.ID)
	assert.Equal(t, 1, got.TotalDays)
	assert.Equal(t, 600, got.Score)
}

func TestCheckInGuardRejects(t *testing.T) {
	env := newTestEnv(t, func(o *Options) { o.Guard = denyGuard{} })
	u := env.user(t, "cy")

	_, err := env.svc.CheckIns.CheckIn(env.ctx, u.ID)
	assert.ErrorIs(t, err, ErrAlreadyCheckedInToday)

	done, err := env.store.HasCheckIn(env.ctx, u.ID, env.clock.Today())
	require.NoError(t, err)
	assert.False(t, done)
}

func TestCheckInUniqueIndexClosesRace(t *testing.T) {
	env := newTestEnv(t)
	u := env.user(t, "cal")

	env.beforeInsert(t, "check_ins", func(db *gorm.DB) {
		require.NoError(t, db.Create(&models.CheckIn{UserID: u.ID, Date: env.clock.Today()}).Error)
	})
	_, err := env.svc.CheckIns.CheckIn(env.ctx, u.ID)
	assert.ErrorIs(t, err, ErrAlreadyCheckedInToday)

	got := env.reload(t, u.ID)
	assert.Equal(t, 0, got.TotalDays)
	assert.Equal(t, 0, got.CurrentStreak)
	assert.Equal(t, 0, got.Score)
	assert.Nil(t, got.LastCheckInDate)
}

func TestCheckInReleasesGuardOnFailure(t *testing.T) {
	guard := &recordingGuard{}
	env := newTestEnv(t, func(o *Options) { o.Guard = guard })
	u := env.user(t, "dot")

	ghost := uuid.New()
	_, err := env.svc.CheckIns.CheckIn(env.ctx, ghost)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Equal(t, []string{cache.CheckInKey(ghost, env.clock.Today())}, guard.released)

	_, err = env.svc.CheckIns.CheckIn(env.ctx, u.ID)
	require.NoError(t, err)
	_, err = env.svc.CheckIns.CheckIn(env.ctx, u.ID)
	assert.ErrorIs(t, err, ErrAlreadyCheckedInToday)
	assert.Len(t, guard.released, 1, "success and duplicates keep the key")
}

func TestStreakLongerThanHistoryPage(t *testing.T) {
	env := newTestEnv(t, func(o *Options) { o.HistoryLimit = 3 })
	u := env.user(t, "eli")

	var last *CheckInResult
	for day := 1; day <= 8; day++ {
		if day > 1 {
			env.clock.advance(1)
		}
		res, err := env.svc.CheckIns.CheckIn(env.ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, day, res.Streak)
		if day == 7 {
			require.Len(t, res.Milestones, 1)
			assert.Equal(t, string(scoring.KindWeeklyStreak), res.Milestones[0].Type)
		}
		last = res
	}
	assert.True(t, last.IsNewRecord)
	assert.Equal(t, 8, env.reload(t, u.ID).LongestStreak)

	st, err := env.svc.CheckIns.Status(env.ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, st.CurrentStreak)
}

func TestSevenConsecutiveDays(t *testing.T) {
	env := newTestEnv(t)
	u := env.user(t, "dee")

	var last *CheckInResult
	for day := 1; day <= 7; day++ {
		res, err := env.svc.CheckIns.CheckIn(env.ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, day, res.Streak)
		last = res
		if day < 7 {
			env.clock.advance(1)
		}
	}

	assert.Equal(t, 900, last.Points.Total)
	require.Len(t, last.Milestones, 1)
	assert.Equal(t, string(scoring.KindWeeklyStreak), last.Milestones[0].Type)

	got := env.reload(t, u.ID)
	assert.Equal(t, 7, got.CurrentStreak)
	assert.Equal(t, 7, got.LongestStreak)
	assert.Equal(t, 6*600+900+20, got.Score)
}

func TestCheckInAfterGapResetsStreak(t *testing.T) {
	env := newTestEnv(t)
	u := env.user(t, "eve")

	_, err := env.svc.CheckIns.CheckIn(env.ctx, u.ID)
	require.NoError(t, err)
	env.clock.advance(1)
	_, err = env.svc.CheckIns.CheckIn(env.ctx, u.ID)
	require.NoError(t, err)

	env.clock.advance(2)
	res, err := env.svc.CheckIns.CheckIn(env.ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Streak)
	assert.False(t, res.IsNewRecord)
	assert.Equal(t, 100, res.Points.Total)

	got := env.reload(t, u.ID)
	assert.Equal(t, 1, got.CurrentStreak)
	assert.Equal(t, 2, got.LongestStreak)
	assert.LessOrEqual(t, got.CurrentStreak, got.LongestStreak)
}

func TestCheckInAfterPush(t *testing.T) {
	env := newTestEnv(t)
	pusher := env.user(t, "fay")
	u := env.user(t, "gus")
	env.circle(t, pusher, u)

	// Build a longer best run so today's check-in is not a record.
	_, err := env.svc.CheckIns.CheckIn(env.ctx, u.ID)
	require.NoError(t, err)
	env.clock.advance(1)
	_, err = env.svc.CheckIns.CheckIn(env.ctx, u.ID)
	require.NoError(t, err)
	env.clock.advance(3)

	_, err = env.svc.Pushes.Push(env.ctx, pusher.ID, u.ID)
	require.NoError(t, err)

	res, err := env.svc.CheckIns.CheckIn(env.ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, res.WasAssisted)
	assert.Equal(t, 105, res.Points.Total)

	page, err := env.svc.Circles.Activity(env.ctx, u.ID, 1, 1)
	require.NoError(t, err)
	require.Len(t, page.Activities, 1)
	assert.Equal(t, models.ActivityConsistedAfterPush, page.Activities[0].Type)
}

func TestCheckInReportsTargetProgress(t *testing.T) {
	env := newTestEnv(t)
	u := env.user(t, "hal")

	_, err := env.svc.Body.Upsert(env.ctx, u.ID, models.UpsertBodyProfileRequest{HeightCm: 180, CurrentWeightKg: 90})
	require.NoError(t, err)
	_, err = env.svc.Targets.Set(env.ctx, u.ID, models.SetTargetRequest{TargetWeightKg: 80, TargetDate: "2024-06-08"})
	require.NoError(t, err)

	res, err := env.svc.CheckIns.CheckIn(env.ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, res.Progress)
	assert.Equal(t, 10.0, res.Progress.KgRemaining)
	assert.True(t, res.Progress.IsOnTrack)
}

func TestStatus(t *testing.T) {
	env := newTestEnv(t)
	u := env.user(t, "ivy")

	st, err := env.svc.CheckIns.Status(env.ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, st.CheckedIn)
	assert.Equal(t, 0, st.CurrentStreak)
	assert.Equal(t, 3, st.PushesLeft)
	assert.Equal(t, "bronze", st.Level)

	_, err = env.svc.CheckIns.CheckIn(env.ctx, u.ID)
	require.NoError(t, err)
	st, err = env.svc.CheckIns.Status(env.ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, st.CheckedIn)
	assert.Equal(t, 1, st.CurrentStreak)

	env.clock.advance(1)
	st, err = env.svc.CheckIns.Status(env.ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, st.CheckedIn)
	assert.Equal(t, 1, st.CurrentStreak, "run ending yesterday is still alive")

	env.clock.advance(1)
	st, err = env.svc.CheckIns.Status(env.ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, st.CurrentStreak)
}
