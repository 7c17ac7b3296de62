package services

import (
	"context"
	"testing"
	"time"

	"bazaar-api/models"
	"bazaar-api/repositories/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewSessionService(memstore.NewSessions(), "test-secret", time.Hour)
	user := &models.User{ID: "user-1", Email: "a@example.com", Role: models.RoleAdmin}

	token, issued, err := svc.Issue(ctx, user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, issued.SessionID)

	identity, err := svc.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.UserID)
	assert.Equal(t, models.RoleAdmin, identity.Role)
	assert.Equal(t, issued.SessionID, identity.SessionID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), identity.ExpiresAt, time.Minute)

	require.NoError(t, svc.Revoke(ctx, identity))
	_, err = svc.Resolve(ctx, token)
	assert.Equal(t, KindUnauthenticated, KindOf(err))
}

func TestResolveRejectsBadTokens(t *testing.T) {
	ctx := context.Background()
	sessions := memstore.NewSessions()
	svc := NewSessionService(sessions, "test-secret", time.Hour)
	user := &models.User{ID: "user-1", Email: "a@example.com", Role: models.RoleCustomer}

	_, err := svc.Resolve(ctx, "")
	assert.Equal(t, KindUnauthenticated, KindOf(err))

	_, err = svc.Resolve(ctx, "not-a-token")
	assert.Equal(t, KindUnauthenticated, KindOf(err))

	other := NewSessionService(sessions, "other-secret", time.Hour)
	token, _, err := other.Issue(ctx, user)
	require.NoError(t, err)
	_, err = svc.Resolve(ctx, token)
	assert.Equal(t, KindUnauthenticated, KindOf(err))

	expired := NewSessionService(sessions, "test-secret", -time.Minute)
	token, _, err = expired.Issue(ctx, user)
	require.NoError(t, err)
	_, err = svc.Resolve(ctx, token)
	assert.Equal(t, KindUnauthenticated, KindOf(err))
}
