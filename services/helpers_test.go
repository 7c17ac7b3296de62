package services

import (
	"context"
	"sync"
	"testing"

	"bazaar-api/models"
	"bazaar-api/repositories"
	"bazaar-api/repositories/memstore"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	store    repositories.Store
	carts    *CartService
	orders   *OrderService
	identity models.Identity
}

func newFixture(t *testing.T, notifiers ...OrderNotifier) *fixture {
	t.Helper()

	store := memstore.New()
	seedProduct(t, store.Products, 1, "Mug", 10, 5)
	seedProduct(t, store.Products, 2, "Tea", 5, 3)

	log := zap.NewNop()
	return &fixture{
		store:    store,
		carts:    NewCartService(store.Products, store.Carts, log),
		orders:   NewOrderService(store.Products, store.Carts, store.Orders, log, 4, notifiers...),
		identity: models.Identity{UserID: "user-1", Email: "u1@example.com", Role: models.RoleCustomer},
	}
}

func seedProduct(t *testing.T, products repositories.ProductStore, id int64, name string, price int64, stock int) {
	t.Helper()
	require.NoError(t, products.Create(context.Background(), &models.Product{
		ID:          id,
		Name:        name,
		Description: name + " description",
		Type:        "goods",
		Price:       price,
		Stock:       stock,
	}))
}

func (f *fixture) stock(t *testing.T, id int64) int {
	t.Helper()
	p, err := f.store.Products.FindByID(context.Background(), id)
	require.NoError(t, err)
	return p.Stock
}

func (f *fixture) cart(t *testing.T) *models.Cart {
	t.Helper()
	c, err := f.store.Carts.FindByUser(context.Background(), f.identity.UserID)
	require.NoError(t, err)
	return c
}

func (f *fixture) setPrice(t *testing.T, id int64, price int64) {
	t.Helper()
	ctx := context.Background()
	p, err := f.store.Products.FindByID(ctx, id)
	require.NoError(t, err)
	p.Price = price
	require.NoError(t, f.store.Products.Save(ctx, p))
}

// racingProducts simulates another writer saving the product between this
// caller's read and write.
type racingProducts struct {
	repositories.ProductStore
	once sync.Once
}

func (r *racingProducts) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	p, err := r.ProductStore.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.once.Do(func() {
		other := *p
		other.Stock--
		_ = r.ProductStore.Save(ctx, &other)
	})
	return p, nil
}

type conflictingCarts struct {
	repositories.CartStore
}

func (conflictingCarts) Save(context.Context, *models.Cart) error {
	return repositories.ErrConflict
}

type recordingNotifier struct {
	mu     sync.Mutex
	orders []*models.Order
	err    error
}

func (n *recordingNotifier) OrderCreated(_ context.Context, order *models.Order) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.orders = append(n.orders, order)
	return n.err
}
