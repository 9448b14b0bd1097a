package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imaaryan1108/consist/internal/models"
	"github.com/imaaryan1108/consist/internal/scoring"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	res, err := env.svc.Auth.Register(env.ctx, models.RegisterRequest{Email: " Ana@Example.com", Password: "secret1", Name: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", res.User.Email)
	assert.Equal(t, "token-"+res.User.ID.String(), res.Token)
	assert.NotEqual(t, "secret1", res.User.Password)

	_, err = env.svc.Auth.Register(env.ctx, models.RegisterRequest{Email: "ana@example.com", Password: "another"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	login, err := env.svc.Auth.Login(env.ctx, models.LoginRequest{Email: "ANA@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, login.User.ID)

	_, err = env.svc.Auth.Login(env.ctx, models.LoginRequest{Email: "ana@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.svc.Auth.Login(env.ctx, models.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Auth.Register(env.ctx, models.RegisterRequest{Email: "", Password: "secret1"})
	assert.ErrorIs(t, err, scoring.ErrInvalidArgument)

	_, err = env.svc.Auth.Register(env.ctx, models.RegisterRequest{Email: "a@example.com", Password: "123"})
	assert.ErrorIs(t, err, scoring.ErrInvalidArgument)
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	u := env.user(t, "ben")

	name := "  Benjamin "
	got, err := env.svc.Auth.UpdateProfile(env.ctx, u.ID, models.UpdateProfileRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Benjamin", got.Name)

	_, err = env.svc.Auth.Me(env.ctx, uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
