package repositories

import (
	"context"
	"errors"
	"time"

	"bazaar-api/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CartRepository struct {
	db *pgxpool.Pool
}

func NewCartRepository(db *pgxpool.Pool) *CartRepository {
	return &CartRepository{db: db}
}

func (r *CartRepository) FindByUser(ctx context.Context, userID string) (*models.Cart, error) {
	query := `SELECT user_id, items, version, created_at, updated_at FROM carts WHERE user_id = $1`

	var cart models.Cart
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&cart.UserID, &cart.Items, &cart.Version, &cart.CreatedAt, &cart.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *CartRepository) Save(ctx context.Context, cart *models.Cart) error {
	items := cart.Items
	if items == nil {
		items = []models.CartLine{}
	}
	now := time.Now().UTC()

	if cart.Version == 0 {
		_, err := r.db.Exec(ctx,
			`INSERT INTO carts (user_id, items, version, created_at, updated_at) VALUES ($1, $2, 1, $3, $3)`,
			cart.UserID, items, now,
		)
		if isUniqueViolation(err) {
			return ErrConflict
		}
		if err != nil {
			return err
		}
		cart.Version = 1
		cart.CreatedAt = now
		cart.UpdatedAt = now
		return nil
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE carts SET items = $1, version = version + 1, updated_at = $2 WHERE user_id = $3 AND version = $4`,
		items, now, cart.UserID, cart.Version,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrConflict
	}

	cart.Version++
	cart.UpdatedAt = now
	return nil
}
