// Package services orchestrates the scoring core with persistence, realtime
// fan-out and notifications.
package services

import (
	"go.uber.org/zap"

	"github.com/imaaryan1108/consist/internal/cache"
	"github.com/imaaryan1108/consist/internal/scoring"
	"github.com/imaaryan1108/consist/internal/store"
)

// Options carries the collaborators shared by every service. Nil Guard and
// Publisher fall back to no-ops; a nil Messenger disables device delivery.
type Options struct {
	Clock           scoring.Clock
	Guard           cache.Guard
	Publisher       Publisher
	Messenger       Messenger
	Tokens          TokenIssuer
	HistoryLimit    int
	MaxPushesPerDay int
	Log             *zap.Logger
}

type Services struct {
	Auth          *AuthService
	Circles       *CircleService
	CheckIns      *CheckInService
	Pushes        *PushService
	Body          *BodyService
	Targets       *TargetService
	Weekly        *WeeklyService
	Milestones    *MilestoneService
	Notifications *NotificationService
	Meals         *MealService
	Workouts      *WorkoutService
	History       *HistoryService
}

func New(st *store.Store, opts Options) *Services {
	if opts.Clock == nil {
		opts.Clock = scoring.NewClock(nil)
	}
	if opts.Guard == nil {
		opts.Guard = cache.NopGuard{}
	}
	if opts.Publisher == nil {
		opts.Publisher = NopPublisher{}
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = 365
	}
	if opts.MaxPushesPerDay <= 0 {
		opts.MaxPushesPerDay = 3
	}

	notifications := NewNotificationService(st, opts.Messenger, opts.Log.Named("notifications"))
	targets := NewTargetService(st, opts.Clock)
	milestones := NewMilestoneService(st, opts.Clock, targets, notifications, opts.Publisher, opts.HistoryLimit, opts.Log.Named("milestones"))

	return &Services{
		Auth:          NewAuthService(st, opts.Tokens),
		Circles:       NewCircleService(st, opts.Clock, opts.Publisher, notifications, opts.Log.Named("circles")),
		CheckIns:      NewCheckInService(st, opts.Clock, opts.Guard, milestones, opts.Publisher, opts.HistoryLimit, opts.MaxPushesPerDay, opts.Log.Named("checkins")),
		Pushes:        NewPushService(st, opts.Clock, notifications, opts.Publisher, opts.MaxPushesPerDay, opts.Log.Named("pushes")),
		Body:          NewBodyService(st),
		Targets:       targets,
		Weekly:        NewWeeklyService(st, opts.Clock, milestones, opts.Log.Named("weekly")),
		Milestones:    milestones,
		Notifications: notifications,
		Meals:         NewMealService(st, opts.Clock),
		Workouts:      NewWorkoutService(st, opts.Clock),
		History:       NewHistoryService(st, opts.Clock),
	}
}
