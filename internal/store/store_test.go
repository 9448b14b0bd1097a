package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/imaaryan1108/consist/internal/database"
	"github.com/imaaryan1108/consist/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()), logger.Silent)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return New(db)
}

func createUser(t *testing.T, s *Store, name string) *models.User {
	t.Helper()
	u := &models.User{Email: name + "@example.com", Name: name}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	createUser(t, s, "ana")

	err := s.CreateUser(ctx, &models.User{Email: "ana@example.com"})
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = s.GetUser(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInsertCheckInIsUniquePerDay(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := createUser(t, s, "ben")

	require.NoError(t, s.InsertCheckIn(ctx, u.ID, "2024-01-10"))
	assert.ErrorIs(t, s.InsertCheckIn(ctx, u.ID, "2024-01-10"), ErrDuplicate)
	require.NoError(t, s.InsertCheckIn(ctx, u.ID, "2024-01-11"))

	ok, err := s.HasCheckIn(ctx, u.ID, "2024-01-10")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.HasCheckIn(ctx, u.ID, "2024-01-12")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRecentCheckInDates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := createUser(t, s, "cy")
	for _, d := range []string{"2024-01-08", "2024-01-10", "2024-01-09"} {
		require.NoError(t, s.InsertCheckIn(ctx, u.ID, d))
	}

	dates, err := s.RecentCheckInDates(ctx, u.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-10", "2024-01-09"}, dates)

	dates, err = s.CheckInDatesPage(ctx, u.ID, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-08"}, dates)
}

func TestCheckedInOn(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := createUser(t, s, "a")
	b := createUser(t, s, "b")
	require.NoError(t, s.InsertCheckIn(ctx, a.ID, "2024-01-10"))

	got, err := s.CheckedInOn(ctx, []uuid.UUID{a.ID, b.ID}, "2024-01-10")
	require.NoError(t, err)
	assert.True(t, got[a.ID])
	assert.False(t, got[b.ID])
}

func TestApplyCheckInStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := createUser(t, s, "dee")

	require.NoError(t, s.ApplyCheckInStats(ctx, u.ID, "2024-01-10", 3, 100))
	require.NoError(t, s.ApplyCheckInStats(ctx, u.ID, "2024-01-11", 1, 105))

	got, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.CurrentStreak)
	assert.Equal(t, 3, got.LongestStreak, "longest streak never shrinks")
	assert.Equal(t, 2, got.TotalDays)
	assert.Equal(t, 205, got.Score)
	require.NotNil(t, got.LastCheckInDate)
	assert.Equal(t, "2024-01-11", *got.LastCheckInDate)

	assert.ErrorIs(t, s.ApplyCheckInStats(ctx, uuid.New(), "2024-01-11", 1, 100), ErrNotFound)
}

func TestIncrementScore(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := createUser(t, s, "eve")

	require.NoError(t, s.IncrementScore(ctx, u.ID, 20))
	require.NoError(t, s.IncrementScore(ctx, u.ID, 500))

	got, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 520, got.Score)
	assert.ErrorIs(t, s.IncrementScore(ctx, uuid.New(), 1), ErrNotFound)
}

func TestCircleMembersOrderedByStreak(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c := &models.Circle{Name: "crew"}
	require.NoError(t, s.CreateCircle(ctx, c))
	assert.Len(t, c.Code, 6)

	low := createUser(t, s, "low")
	high := createUser(t, s, "high")
	createUser(t, s, "outsider")
	require.NoError(t, s.SetUserCircle(ctx, low.ID, c.ID))
	require.NoError(t, s.SetUserCircle(ctx, high.ID, c.ID))
	require.NoError(t, s.ApplyCheckInStats(ctx, high.ID, "2024-01-10", 5, 100))

	members, err := s.CircleMembers(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, high.ID, members[0].ID)
	assert.Equal(t, low.ID, members[1].ID)

	found, err := s.GetCircleByCode(ctx, c.Code)
	require.NoError(t, err)
	assert.Equal(t, c.ID, found.ID)
}

func TestPushes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := createUser(t, s, "a")
	b := createUser(t, s, "b")
	c := createUser(t, s, "c")

	require.NoError(t, s.InsertPush(ctx, &models.Push{FromUserID: a.ID, ToUserID: b.ID, Date: "2024-01-10", Slot: 1}))
	require.NoError(t, s.InsertPush(ctx, &models.Push{FromUserID: a.ID, ToUserID: c.ID, Date: "2024-01-10", Slot: 2}))
	err := s.InsertPush(ctx, &models.Push{FromUserID: a.ID, ToUserID: b.ID, Date: "2024-01-10", Slot: 3})
	assert.ErrorIs(t, err, ErrDuplicate, "one push per pair per day")
	err = s.InsertPush(ctx, &models.Push{FromUserID: a.ID, ToUserID: c.ID, Date: "2024-01-11", Slot: 1})
	require.NoError(t, err)
	err = s.InsertPush(ctx, &models.Push{FromUserID: a.ID, ToUserID: b.ID, Date: "2024-01-11", Slot: 1})
	assert.ErrorIs(t, err, ErrDuplicate, "one push per sender slot per day")

	ok, err := s.PushedTo(ctx, a.ID, c.ID, "2024-01-10")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.PushedTo(ctx, a.ID, b.ID, "2024-01-11")
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := s.CountPushesFrom(ctx, a.ID, "2024-01-10")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	pushed, err := s.WasPushedOn(ctx, b.ID, "2024-01-10")
	require.NoError(t, err)
	assert.True(t, pushed)

	pushed, err = s.WasPushedOn(ctx, a.ID, "2024-01-10")
	require.NoError(t, err)
	assert.False(t, pushed)
}

func TestReplaceTargetIssuesNewID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := createUser(t, s, "fay")

	first := &models.TargetGoal{UserID: u.ID, StartingWeightKg: 90, StartingDate: "2024-01-01", TargetWeightKg: 80, TargetDate: "2024-06-01"}
	require.NoError(t, s.ReplaceTarget(ctx, first))
	firstID := first.ID

	second := &models.TargetGoal{UserID: u.ID, StartingWeightKg: 88, StartingDate: "2024-02-01", TargetWeightKg: 78, TargetDate: "2024-07-01"}
	require.NoError(t, s.ReplaceTarget(ctx, second))
	assert.NotEqual(t, firstID, second.ID)

	got, err := s.GetTarget(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)
	assert.Equal(t, 78.0, got.TargetWeightKg)

	deleted, err := s.DeleteTarget(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = s.GetTarget(ctx, u.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWeeklyCheckins(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := createUser(t, s, "gus")

	for _, w := range []string{"2024-01-01", "2024-01-15", "2024-01-08"} {
		require.NoError(t, s.SaveWeeklyCheckin(ctx, &models.WeeklyCheckin{UserID: u.ID, WeekStartDate: w, WeightKg: 80}))
	}
	err := s.SaveWeeklyCheckin(ctx, &models.WeeklyCheckin{UserID: u.ID, WeekStartDate: "2024-01-08", WeightKg: 79})
	assert.ErrorIs(t, err, ErrDuplicate)

	prev, err := s.PreviousWeeklyCheckin(ctx, u.ID, "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-08", prev.WeekStartDate)

	rows, err := s.LatestWeeklyCheckins(ctx, u.ID, 0)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "2024-01-15", rows[0].WeekStartDate)

	_, err = s.PreviousWeeklyCheckin(ctx, u.ID, "2024-01-01")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNotifications(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := createUser(t, s, "hal")
	other := createUser(t, s, "ivy")

	n1 := &models.Notification{UserID: u.ID, Type: models.NotificationPushReceived, Title: "one"}
	n2 := &models.Notification{UserID: u.ID, Type: models.NotificationPushReceived, Title: "two"}
	require.NoError(t, s.CreateNotification(ctx, n1))
	require.NoError(t, s.CreateNotification(ctx, n2))

	ok, err := s.MarkNotificationRead(ctx, other.ID, n1.ID)
	require.NoError(t, err)
	assert.False(t, ok, "cannot mark another user's notification")

	ok, err = s.MarkNotificationRead(ctx, u.ID, n1.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	rows, total, unread, err := s.ListNotifications(ctx, u.ID, 0, 10)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.EqualValues(t, 2, total)
	assert.EqualValues(t, 1, unread)

	require.NoError(t, s.MarkAllNotificationsRead(ctx, u.ID))
	_, _, unread, err = s.ListNotifications(ctx, u.ID, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 0, unread)
}

func TestActivitiesPreloadActor(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c := &models.Circle{Name: "crew"}
	require.NoError(t, s.CreateCircle(ctx, c))
	u := createUser(t, s, "jo")

	require.NoError(t, s.CreateActivity(ctx, &models.Activity{CircleID: c.ID, ActorID: u.ID, Type: models.ActivityConsisted}))

	rows, total, err := s.ListActivities(ctx, c.ID, 0, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, "jo", rows[0].Actor.Name)
}

func TestTransactionRollsBack(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := createUser(t, s, "kim")

	err := s.Transaction(ctx, func(tx *Store) error {
		require.NoError(t, tx.InsertCheckIn(ctx, u.ID, "2024-01-10"))
		return tx.InsertCheckIn(ctx, u.ID, "2024-01-10")
	})
	assert.ErrorIs(t, err, ErrDuplicate)

	ok, err := s.HasCheckIn(ctx, u.ID, "2024-01-10")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMealsBetween(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := createUser(t, s, "lee")
	other := createUser(t, s, "max")

	for _, m := range []models.MealLog{
		{UserID: u.ID, Date: "2024-01-07", MealType: models.MealLunch, FoodName: "soup", Calories: 300},
		{UserID: u.ID, Date: "2024-01-09", MealType: models.MealLunch, FoodName: "rice", Calories: 600},
		{UserID: u.ID, Date: "2024-01-15", MealType: models.MealLunch, FoodName: "toast", Calories: 200},
		{UserID: other.ID, Date: "2024-01-09", MealType: models.MealLunch, FoodName: "salad", Calories: 250},
	} {
		m := m
		require.NoError(t, s.CreateMeal(ctx, &m))
	}

	rows, err := s.MealsBetween(ctx, u.ID, "2024-01-07", "2024-01-14")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "rice", rows[0].FoodName)
	assert.Equal(t, "soup", rows[1].FoodName)

	ok, err := s.DeleteMeal(ctx, other.ID, rows[0].ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpsertWorkout(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := createUser(t, s, "nia")

	w := &models.WorkoutLog{UserID: u.ID, Date: "2024-01-10", WorkoutType: models.WorkoutGym}
	require.NoError(t, s.UpsertWorkout(ctx, w))
	require.NoError(t, s.CreateExercise(ctx, &models.ExerciseLog{UserID: u.ID, WorkoutLogID: w.ID, ExerciseName: "Bench Press", Sets: 3, Reps: 8}))

	again := &models.WorkoutLog{UserID: u.ID, Date: "2024-01-10", WorkoutType: models.WorkoutRest}
	require.NoError(t, s.UpsertWorkout(ctx, again))
	assert.Equal(t, w.ID, again.ID)

	got, err := s.GetWorkout(ctx, u.ID, "2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, models.WorkoutRest, got.WorkoutType)
	assert.Len(t, got.Exercises, 1)

	err = s.conn(ctx).Create(&models.WorkoutLog{UserID: u.ID, Date: "2024-01-10", WorkoutType: models.WorkoutWalk}).Error
	assert.ErrorIs(t, translate(err), ErrDuplicate)

	history, err := s.ExerciseHistory(ctx, u.ID, "bench press", 10)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	dates, err := s.WorkoutDatesBetween(ctx, u.ID, "2024-01-08", "2024-01-14")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-10"}, dates)

	ok, err := s.DeleteWorkout(ctx, u.ID, "2024-01-10")
	require.NoError(t, err)
	assert.True(t, ok)
	history, err = s.ExerciseHistory(ctx, u.ID, "Bench Press", 10)
	require.NoError(t, err)
	assert.Empty(t, history)
	ok, err = s.DeleteWorkout(ctx, u.ID, "2024-01-10")
	require.NoError(t, err)
	assert.False(t, ok)
}
