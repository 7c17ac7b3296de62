package services

import (
	"context"
	"errors"
	"testing"

	"bazaar-api/models"
	"bazaar-api/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAddToCart(t *testing.T) {
	ctx := context.Background()

	t.Run("reserves stock and creates the cart lazily", func(t *testing.T) {
		f := newFixture(t)

		cart, err := f.carts.AddToCart(ctx, f.identity, 1, 2)
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, models.CartLine{ProductID: 1, Quantity: 2}, cart.Items[0])
		assert.Equal(t, 3, f.stock(t, 1))
	})

	t.Run("merges repeated adds into one line", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.carts.AddToCart(ctx, f.identity, 1, 2)
		require.NoError(t, err)
		_, err = f.carts.AddToCart(ctx, f.identity, 2, 1)
		require.NoError(t, err)
		cart, err := f.carts.AddToCart(ctx, f.identity, 1, 3)
		require.NoError(t, err)

		require.Len(t, cart.Items, 2)
		assert.Equal(t, 5, cart.Items[cart.Line(1)].Quantity)
		assert.Equal(t, 0, f.stock(t, 1))
		assert.Equal(t, 2, f.stock(t, 2))
	})

	t.Run("out of stock leaves everything untouched", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.carts.AddToCart(ctx, f.identity, 1, 6)
		assert.Equal(t, KindOutOfStock, KindOf(err))
		assert.Equal(t, 5, f.stock(t, 1))

		_, err = f.store.Carts.FindByUser(ctx, f.identity.UserID)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("out of stock on an existing line", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.carts.AddToCart(ctx, f.identity, 1, 4)
		require.NoError(t, err)
		_, err = f.carts.AddToCart(ctx, f.identity, 1, 2)
		assert.Equal(t, KindOutOfStock, KindOf(err))
		assert.Equal(t, 1, f.stock(t, 1))
		assert.Equal(t, 4, f.cart(t).Items[0].Quantity)
	})

	t.Run("unknown product", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.carts.AddToCart(ctx, f.identity, 99, 1)
		assert.Equal(t, KindNotFound, KindOf(err))
	})

	t.Run("quantity must be positive", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.carts.AddToCart(ctx, f.identity, 1, 0)
		assert.Equal(t, KindInvalidInput, KindOf(err))
		assert.Equal(t, 5, f.stock(t, 1))
	})

	t.Run("requires an identity", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.carts.AddToCart(ctx, models.Identity{}, 1, 1)
		assert.Equal(t, KindUnauthenticated, KindOf(err))
	})

	t.Run("carts are isolated per user", func(t *testing.T) {
		f := newFixture(t)
		other := models.Identity{UserID: "user-2"}

		_, err := f.carts.AddToCart(ctx, f.identity, 1, 1)
		require.NoError(t, err)
		_, err = f.carts.AddToCart(ctx, other, 1, 2)
		require.NoError(t, err)

		assert.Equal(t, 1, f.cart(t).Items[0].Quantity)
		assert.Equal(t, 2, f.stock(t, 1))
	})
}

func TestAddToCartConflicts(t *testing.T) {
	ctx := context.Background()

	t.Run("stale product read is reported as conflict", func(t *testing.T) {
		f := newFixture(t)
		svc := NewCartService(&racingProducts{ProductStore: f.store.Products}, f.store.Carts, zap.NewNop())

		_, err := svc.AddToCart(ctx, f.identity, 1, 2)
		assert.Equal(t, KindConflict, KindOf(err))
		assert.Equal(t, 4, f.stock(t, 1))

		_, err = f.store.Carts.FindByUser(ctx, f.identity.UserID)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("cart conflict after the product save keeps the reservation", func(t *testing.T) {
		f := newFixture(t)
		svc := NewCartService(f.store.Products, conflictingCarts{f.store.Carts}, zap.NewNop())

		_, err := svc.AddToCart(ctx, f.identity, 1, 2)
		assert.Equal(t, KindConflict, KindOf(err))
		assert.True(t, errors.Is(err, repositories.ErrConflict))
		assert.Equal(t, 3, f.stock(t, 1))
	})
}

func TestRemoveFromCart(t *testing.T) {
	ctx := context.Background()

	t.Run("restores the full line quantity", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.carts.AddToCart(ctx, f.identity, 1, 3)
		require.NoError(t, err)
		_, err = f.carts.AddToCart(ctx, f.identity, 2, 1)
		require.NoError(t, err)

		cart, err := f.carts.RemoveFromCart(ctx, f.identity, 1)
		require.NoError(t, err)
		assert.Equal(t, -1, cart.Line(1))
		assert.Equal(t, 0, cart.Line(2))
		assert.Equal(t, 5, f.stock(t, 1))
		assert.Equal(t, 2, f.stock(t, 2))
	})

	t.Run("second remove is not found and changes nothing", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.carts.AddToCart(ctx, f.identity, 1, 3)
		require.NoError(t, err)

		_, err = f.carts.RemoveFromCart(ctx, f.identity, 1)
		require.NoError(t, err)
		_, err = f.carts.RemoveFromCart(ctx, f.identity, 1)
		assert.Equal(t, KindNotFound, KindOf(err))
		assert.Equal(t, 5, f.stock(t, 1))
	})

	t.Run("no cart", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.carts.RemoveFromCart(ctx, f.identity, 1)
		assert.Equal(t, KindNotFound, KindOf(err))
	})

	t.Run("line for a deleted product still leaves the cart", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.carts.AddToCart(ctx, f.identity, 1, 2)
		require.NoError(t, err)
		require.NoError(t, f.store.Products.Delete(ctx, 1))

		cart, err := f.carts.RemoveFromCart(ctx, f.identity, 1)
		require.NoError(t, err)
		assert.Empty(t, cart.Items)
	})
}

func TestDecrementCartLine(t *testing.T) {
	ctx := context.Background()

	t.Run("q decrements empty the line and restore q units", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.carts.AddToCart(ctx, f.identity, 1, 3)
		require.NoError(t, err)

		cart, err := f.carts.DecrementCartLine(ctx, f.identity, 1)
		require.NoError(t, err)
		assert.Equal(t, 2, cart.Items[0].Quantity)
		assert.Equal(t, 3, f.stock(t, 1))

		for i := 0; i < 2; i++ {
			cart, err = f.carts.DecrementCartLine(ctx, f.identity, 1)
			require.NoError(t, err)
		}
		assert.Empty(t, cart.Items)
		assert.Equal(t, 5, f.stock(t, 1))

		_, err = f.carts.DecrementCartLine(ctx, f.identity, 1)
		assert.Equal(t, KindNotFound, KindOf(err))
		assert.Equal(t, 5, f.stock(t, 1))
	})

	t.Run("stale cart is reported as conflict", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.carts.AddToCart(ctx, f.identity, 1, 2)
		require.NoError(t, err)

		svc := NewCartService(f.store.Products, conflictingCarts{f.store.Carts}, zap.NewNop())
		_, err = svc.DecrementCartLine(ctx, f.identity, 1)
		assert.Equal(t, KindConflict, KindOf(err))
		assert.Equal(t, 2, f.cart(t).Items[0].Quantity)
	})
}

func TestGetCart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.carts.GetCart(ctx, f.identity)
	assert.Equal(t, KindNotFound, KindOf(err))

	_, err = f.carts.AddToCart(ctx, f.identity, 1, 2)
	require.NoError(t, err)
	_, err = f.carts.AddToCart(ctx, f.identity, 2, 1)
	require.NoError(t, err)
	require.NoError(t, f.store.Products.Delete(ctx, 2))

	views, err := f.carts.GetCart(ctx, f.identity)
	require.NoError(t, err)
	require.Len(t, views, 2)
	require.NotNil(t, views[0].Product)
	assert.Equal(t, "Mug", views[0].Product.Name)
	assert.Equal(t, 2, views[0].Quantity)
	assert.Nil(t, views[1].Product)
	assert.Equal(t, 1, views[1].Quantity)
}
