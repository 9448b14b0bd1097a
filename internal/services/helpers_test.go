package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/imaaryan1108/consist/internal/cache"
	"github.com/imaaryan1108/consist/internal/database"
	"github.com/imaaryan1108/consist/internal/models"
	"github.com/imaaryan1108/consist/internal/scoring"
	"github.com/imaaryan1108/consist/internal/store"
)

type testClock struct {
	at time.Time
}

func (c *testClock) Now() time.Time  { return c.at }
func (c *testClock) Today() string   { return scoring.FormatDate(c.at) }
func (c *testClock) advance(days int) { c.at = c.at.AddDate(0, 0, days) }

type recordingPublisher struct {
	mu     sync.Mutex
	events []Event
}

func (p *recordingPublisher) Publish(_, _ uuid.UUID, e Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type stubTokens struct{}

func (stubTokens) GenerateToken(userID uuid.UUID, _ string) (string, error) {
	return "token-" + userID.String(), nil
}

type denyGuard struct{}

func (denyGuard) Acquire(context.Context, string, time.Duration) bool { return false }
func (denyGuard) Release(context.Context, string)                      {}

// recordingGuard admits everything and remembers released keys.
type recordingGuard struct {
	mu       sync.Mutex
	released []string
}

func (g *recordingGuard) Acquire(context.Context, string, time.Duration) bool { return true }

func (g *recordingGuard) Release(_ context.Context, key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.released = append(g.released, key)
}

type testEnv struct {
	ctx   context.Context
	db    *gorm.DB
	store *store.Store
	svc   *Services
	clock *testClock
	pub   *recordingPublisher
}

// newTestEnv starts on Monday 2024-01-08.
func newTestEnv(t *testing.T, opts ...func(*Options)) *testEnv {
	t.Helper()
	db, err := database.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()), logger.Silent)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	env := &testEnv{
		ctx:   context.Background(),
		db:    db,
		store: store.New(db),
		clock: &testClock{at: time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)},
		pub:   &recordingPublisher{},
	}
	o := Options{
		Clock:     env.clock,
		Guard:     cache.NopGuard{},
		Publisher: env.pub,
		Tokens:    stubTokens{},
		Log:       zap.NewNop(),
	}
	for _, fn := range opts {
		fn(&o)
	}
	env.svc = New(env.store, o)
	return env
}

func (e *testEnv) user(t *testing.T, name string) *models.User {
	t.Helper()
	u := &models.User{Email: name + "@example.com", Name: name}
	require.NoError(t, e.store.CreateUser(e.ctx, u))
	return u
}

// circle creates a circle owned by the first user and joins the rest.
func (e *testEnv) circle(t *testing.T, users ...*models.User) *models.Circle {
	t.Helper()
	c, err := e.svc.Circles.Create(e.ctx, users[0].ID, "crew")
	require.NoError(t, err)
	for _, u := range users[1:] {
		_, err := e.svc.Circles.Join(e.ctx, u.ID, c.Code)
		require.NoError(t, err)
	}
	return c
}

func (e *testEnv) reload(t *testing.T, id uuid.UUID) *models.User {
	t.Helper()
	u, err := e.store.GetUser(e.ctx, id)
	require.NoError(t, err)
	return u
}

// beforeInsert runs fn once, just before the next INSERT into table. fn gets
// the root connection, so what it writes is committed ahead of the insert it
// interrupts, the way a concurrent request would be.
func (e *testEnv) beforeInsert(t *testing.T, table string, fn func(db *gorm.DB)) {
	t.Helper()
	fired := false
	err := e.db.Callback().Create().Before("gorm:create").Register("test:before_insert_"+table, func(tx *gorm.DB) {
		if fired || tx.Statement.Table != table {
			return
		}
		fired = true
		fn(e.db)
	})
	require.NoError(t, err)
}
