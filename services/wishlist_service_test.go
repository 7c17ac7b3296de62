package services

import (
	"context"
	"testing"

	"bazaar-api/models"
	"bazaar-api/repositories/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlist(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	seedProduct(t, store.Products, 1, "Mug", 10, 5)
	seedProduct(t, store.Products, 2, "Tea", 5, 3)

	user, err := NewUserService(store.Users).Create(ctx, models.CreateUserRequest{Username: "alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)
	identity := models.Identity{UserID: user.ID}
	svc := NewWishlistService(store.Users, store.Products)

	require.NoError(t, svc.Add(ctx, identity, 2))
	require.NoError(t, svc.Add(ctx, identity, 1))
	require.NoError(t, svc.Add(ctx, identity, 2))

	products, err := svc.List(ctx, identity)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, int64(2), products[0].ID)
	assert.Equal(t, int64(1), products[1].ID)

	assert.Equal(t, KindNotFound, KindOf(svc.Add(ctx, identity, 99)))

	require.NoError(t, store.Products.Delete(ctx, 1))
	products, err = svc.List(ctx, identity)
	require.NoError(t, err)
	require.Len(t, products, 1)

	require.NoError(t, svc.Remove(ctx, identity, 2))
	require.NoError(t, svc.Remove(ctx, identity, 2))
	products, err = svc.List(ctx, identity)
	require.NoError(t, err)
	assert.Empty(t, products)

	_, err = svc.List(ctx, models.Identity{UserID: "ghost"})
	assert.Equal(t, KindNotFound, KindOf(err))
}
