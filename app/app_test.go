package app

import (
	"context"
	"testing"

	"bazaar-api/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWithMemoryStore(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		StoreDriver:    "memory",
		JWTSecret:      "test",
		AdminEmail:     "admin@example.com",
		AdminPassword:  "adminpass",
		CheckoutFanout: 2,
	}

	a, err := New(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close(ctx) })

	admin, err := a.Store.Users.FindByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Role)
	assert.NotNil(t, a.Router)
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := New(context.Background(), &config.Config{StoreDriver: "sqlite"}, zap.NewNop())
	assert.Error(t, err)
}
