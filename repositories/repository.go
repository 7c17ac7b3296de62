package repositories

import (
	"context"
	"errors"
	"time"

	"bazaar-api/models"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrConflict  = errors.New("document was modified concurrently")
	ErrDuplicate = errors.New("document already exists")
)

// ProductStore persists catalog documents. Save is a compare-and-swap on
// Version: it fails with ErrConflict when the stored version differs from the
// one the caller read, and bumps Version on success.
type ProductStore interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	FindAll(ctx context.Context, page, limit int) ([]models.Product, int, error)
	Save(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id int64) error
}

// CartStore persists one cart document per user. Saving a cart with
// Version 0 creates it; a concurrent creation for the same user is reported as
// ErrConflict.
type CartStore interface {
	FindByUser(ctx context.Context, userID string) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
}

type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	FindByUser(ctx context.Context, userID string) ([]models.Order, error)
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	Save(ctx context.Context, user *models.User) error
}

// SessionStore is the server-side registry of issued sessions.
type SessionStore interface {
	Save(ctx context.Context, sessionID, userID string, ttl time.Duration) error
	Exists(ctx context.Context, sessionID string) (bool, error)
	Delete(ctx context.Context, sessionID string) error
}

type Store struct {
	Products ProductStore
	Carts    CartStore
	Orders   OrderStore
	Users    UserStore
	Sessions SessionStore
}
