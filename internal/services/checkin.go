package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/imaaryan1108/consist/internal/cache"
	"github.com/imaaryan1108/consist/internal/models"
	"github.com/imaaryan1108/consist/internal/scoring"
	"github.com/imaaryan1108/consist/internal/store"
)

type CheckInService struct {
	store        *store.Store
	clock        scoring.Clock
	guard        cache.Guard
	milestones   *MilestoneService
	feed         feed
	historyLimit int
	maxPushes    int
	log          *zap.Logger
}

func NewCheckInService(st *store.Store, clock scoring.Clock, guard cache.Guard, milestones *MilestoneService, publisher Publisher, historyLimit, maxPushes int, log *zap.Logger) *CheckInService {
	return &CheckInService{
		store:        st,
		clock:        clock,
		guard:        guard,
		milestones:   milestones,
		feed:         feed{store: st, publisher: publisher},
		historyLimit: historyLimit,
		maxPushes:    maxPushes,
		log:          log,
	}
}

type CheckInResult struct {
	Date          string                  `json:"date"`
	Streak        int                     `json:"streak"`
	Points        scoring.Points          `json:"points"`
	IsNewRecord   bool                    `json:"isNewRecord"`
	WasAssisted   bool                    `json:"wasAssisted"`
	StreakMessage string                  `json:"streakMessage"`
	Milestones    []models.Milestone      `json:"milestones"`
	Progress      *scoring.TargetProgress `json:"progress,omitempty"`
}

// CheckIn records today's check-in for userID. A repeat on the same day
// returns ErrAlreadyCheckedInToday and changes nothing. Once the check-in
// and stats are committed, later failures are logged and do not fail the call.
func (s *CheckInService) CheckIn(ctx context.Context, userID uuid.UUID) (_ *CheckInResult, err error) {
	today := s.clock.Today()
	key := cache.CheckInKey(userID, today)
	if !s.guard.Acquire(ctx, key, cache.CheckInGuardTTL) {
		return nil, ErrAlreadyCheckedInToday
	}
	defer func() {
		if err != nil && !errors.Is(err, ErrAlreadyCheckedInToday) {
			s.guard.Release(context.WithoutCancel(ctx), key)
		}
	}()

	user, err := loadUser(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}
	done, err := s.store.HasCheckIn(ctx, userID, today)
	if err != nil {
		return nil, err
	}
	if done {
		return nil, ErrAlreadyCheckedInToday
	}

	dates, err := streakHistory(ctx, s.store, userID, s.historyLimit)
	if err != nil {
		return nil, err
	}
	streak, err := scoring.CurrentStreak(append(dates, today), today)
	if err != nil {
		return nil, fmt.Errorf("compute streak: %w", err)
	}
	assisted, err := s.store.WasPushedOn(ctx, userID, today)
	if err != nil {
		return nil, err
	}
	points, err := scoring.CalculatePoints(assisted, streak, user.LongestStreak)
	if err != nil {
		return nil, fmt.Errorf("compute points: %w", err)
	}

	err = s.store.Transaction(ctx, func(tx *store.Store) error {
		if err := tx.InsertCheckIn(ctx, userID, today); err != nil {
			return err
		}
		return tx.ApplyCheckInStats(ctx, userID, today, streak, points.Total)
	})
	if errors.Is(err, store.ErrDuplicate) {
		return nil, ErrAlreadyCheckedInToday
	}
	if err != nil {
		return nil, fmt.Errorf("record check-in: %w", err)
	}

	s.log.Info("check-in recorded",
		zap.String("user_id", userID.String()),
		zap.String("date", today),
		zap.Int("streak", streak),
		zap.Int("points", points.Total),
	)

	result := &CheckInResult{
		Date:          today,
		Streak:        streak,
		Points:        points,
		IsNewRecord:   points.IsNewRecord,
		WasAssisted:   assisted,
		StreakMessage: scoring.StreakMessage(streak),
	}

	awarded, progress, err := s.milestones.evaluate(ctx, user, streak)
	if err != nil {
		s.log.Warn("evaluate milestones after check-in", zap.String("user_id", userID.String()), zap.Error(err))
	}
	result.Milestones = awarded
	result.Progress = progress

	if user.CircleID != nil {
		kind := models.ActivityConsisted
		switch {
		case points.IsNewRecord:
			kind = models.ActivityStreakRecord
		case assisted:
			kind = models.ActivityConsistedAfterPush
		}
		meta := map[string]interface{}{
			"streak":         streak,
			"points":         points.Total,
			"message":        result.StreakMessage,
			"was_new_record": points.IsNewRecord,
		}
		if err := s.feed.record(ctx, *user.CircleID, userID, nil, kind, EventCheckedIn, meta); err != nil {
			s.log.Warn("record check-in activity", zap.String("user_id", userID.String()), zap.Error(err))
		}
	}
	return result, nil
}

type CheckInStatus struct {
	Date            string  `json:"date"`
	CheckedIn       bool    `json:"checkedIn"`
	WasPushed       bool    `json:"wasPushed"`
	CurrentStreak   int     `json:"currentStreak"`
	LongestStreak   int     `json:"longestStreak"`
	TotalDays       int     `json:"totalDays"`
	Score           int     `json:"score"`
	Level           string  `json:"level"`
	PushesLeft      int     `json:"pushesLeft"`
	StreakMessage   string  `json:"streakMessage"`
	LastCheckInDate *string `json:"lastCheckInDate"`
}

// Status reports today's state. The streak is recomputed from history, so a
// run broken before yesterday shows as zero even though the stored value is
// only reset by the next check-in.
func (s *CheckInService) Status(ctx context.Context, userID uuid.UUID) (*CheckInStatus, error) {
	today := s.clock.Today()
	user, err := loadUser(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}
	dates, err := streakHistory(ctx, s.store, userID, s.historyLimit)
	if err != nil {
		return nil, err
	}

	streak, err := s.liveStreak(dates, today)
	if err != nil {
		return nil, err
	}
	checkedIn := len(dates) > 0 && dates[0] == today

	pushed, err := s.store.WasPushedOn(ctx, userID, today)
	if err != nil {
		return nil, err
	}
	sent, err := s.store.CountPushesFrom(ctx, userID, today)
	if err != nil {
		return nil, err
	}
	left := s.maxPushes - int(sent)
	if left < 0 {
		left = 0
	}

	return &CheckInStatus{
		Date:            today,
		CheckedIn:       checkedIn,
		WasPushed:       pushed,
		CurrentStreak:   streak,
		LongestStreak:   user.LongestStreak,
		TotalDays:       user.TotalDays,
		Score:           user.Score,
		Level:           user.Level(),
		PushesLeft:      left,
		StreakMessage:   scoring.StreakMessage(streak),
		LastCheckInDate: user.LastCheckInDate,
	}, nil
}

// liveStreak counts a run that ended yesterday as still alive, since the
// user can extend it today.
func (s *CheckInService) liveStreak(dates []string, today string) (int, error) {
	streak, err := scoring.CurrentStreak(dates, today)
	if err != nil || streak > 0 {
		return streak, err
	}
	yesterday, err := scoring.AddDays(today, -1)
	if err != nil {
		return 0, err
	}
	return scoring.CurrentStreak(dates, yesterday)
}

// streakHistory returns the user's check-in dates newest first. It reads
// pages of pageSize and only reads further back while everything so far is
// one unbroken run, so a streak longer than a page is still counted in full.
func streakHistory(ctx context.Context, st *store.Store, userID uuid.UUID, pageSize int) ([]string, error) {
	if pageSize < 1 {
		pageSize = 1
	}
	dates, err := st.RecentCheckInDates(ctx, userID, pageSize)
	if err != nil {
		return nil, err
	}
	for page := dates; len(page) == pageSize; {
		span, err := scoring.DaysBetween(dates[len(dates)-1], dates[0])
		if err != nil {
			return nil, fmt.Errorf("check-in history: %w", err)
		}
		if span != len(dates)-1 {
			break
		}
		page, err = st.CheckInDatesPage(ctx, userID, len(dates), pageSize)
		if err != nil {
			return nil, err
		}
		dates = append(dates, page...)
	}
	return dates, nil
}
