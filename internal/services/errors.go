package services

import "errors"

var (
	ErrAlreadyCheckedInToday  = errors.New("already checked in today")
	ErrNoProfileConfigured    = errors.New("no body profile configured")
	ErrNoGoalConfigured       = errors.New("no target goal configured")
	ErrPushLimitExceeded      = errors.New("daily push limit reached")
	ErrAlreadyPushedToday     = errors.New("already pushed this member today")
	ErrTargetAlreadyCheckedIn = errors.New("member already checked in today")
	ErrNotCircleMate          = errors.New("user is not in your circle")
	ErrCannotPushSelf         = errors.New("cannot push yourself")
	ErrNotInCircle            = errors.New("join a circle first")
	ErrAlreadyInCircle        = errors.New("already in a circle")
	ErrCircleNotFound         = errors.New("circle not found")
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailTaken             = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrNotificationNotFound   = errors.New("notification not found")
	ErrDeviceTokenRequired    = errors.New("device token is required")
	ErrMealNotFound           = errors.New("meal not found")
	ErrWorkoutNotFound        = errors.New("workout not found")
	ErrExerciseNotFound       = errors.New("exercise not found")
)
