package services

import (
	"context"
	"testing"
	"time"

	"bazaar-api/models"
	"bazaar-api/repositories/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthService(t *testing.T) (*AuthService, *memstore.Users) {
	t.Helper()
	users := memstore.NewUsers()
	sessions := NewSessionService(memstore.NewSessions(), "test-secret", time.Hour)
	return NewAuthService(users, sessions, zap.NewNop()), users
}

func TestSignupAndLogin(t *testing.T) {
	ctx := context.Background()
	auth, _ := newAuthService(t)

	user, err := auth.Signup(ctx, models.SignupRequest{Username: "alice", Email: "Alice@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.NotEqual(t, "secret1", user.Password)

	_, err = auth.Signup(ctx, models.SignupRequest{Username: "alice2", Email: "alice@example.com", Password: "secret1"})
	assert.Equal(t, KindAlreadyExists, KindOf(err))

	token, identity, err := auth.Login(ctx, models.LoginRequest{Email: "ALICE@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, identity.UserID)

	profile, err := auth.Profile(ctx, identity)
	require.NoError(t, err)
	assert.Equal(t, &models.Profile{Username: "alice", Email: "alice@example.com"}, profile)

	require.NoError(t, auth.Logout(ctx, identity))
	_, err = auth.sessions.Resolve(ctx, token)
	assert.Equal(t, KindUnauthenticated, KindOf(err))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	auth, _ := newAuthService(t)

	_, err := auth.Signup(ctx, models.SignupRequest{Username: "bob", Email: "bob@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, _, err = auth.Login(ctx, models.LoginRequest{Email: "bob@example.com", Password: "wrong"})
	assert.Equal(t, KindInvalidCredentials, KindOf(err))

	_, _, err = auth.Login(ctx, models.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.Equal(t, KindInvalidCredentials, KindOf(err))
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the account", func(t *testing.T) {
		auth, users := newAuthService(t)

		require.NoError(t, auth.EnsureAdmin(ctx, "root@example.com", "rootpass"))
		user, err := users.FindByEmail(ctx, "root@example.com")
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, user.Role)

		require.NoError(t, auth.EnsureAdmin(ctx, "root@example.com", "rootpass"))
	})

	t.Run("promotes an existing customer", func(t *testing.T) {
		auth, users := newAuthService(t)
		_, err := auth.Signup(ctx, models.SignupRequest{Username: "carol", Email: "carol@example.com", Password: "secret1"})
		require.NoError(t, err)

		require.NoError(t, auth.EnsureAdmin(ctx, "carol@example.com", ""))
		user, err := users.FindByEmail(ctx, "carol@example.com")
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, user.Role)
	})

	t.Run("no email configured", func(t *testing.T) {
		auth, _ := newAuthService(t)
		assert.NoError(t, auth.EnsureAdmin(ctx, "", ""))
	})

	t.Run("new account needs a password", func(t *testing.T) {
		auth, _ := newAuthService(t)
		assert.Equal(t, KindInvalidInput, KindOf(auth.EnsureAdmin(ctx, "root@example.com", "")))
	})
}

func TestUserService(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(memstore.NewUsers())

	user, err := svc.Create(ctx, models.CreateUserRequest{Username: "dave", Email: "dave@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, user.Role)

	_, err = svc.Create(ctx, models.CreateUserRequest{Username: "erin", Email: "erin@example.com", Password: "secret1", Role: models.RoleAdmin})
	require.NoError(t, err)

	_, err = svc.Create(ctx, models.CreateUserRequest{Username: "dave", Email: "dave@example.com", Password: "secret1"})
	assert.Equal(t, KindAlreadyExists, KindOf(err))

	users, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
