package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPostgresStore keeps every aggregate as a row whose nested parts live in
// JSONB columns, so each save touches exactly one row.
func NewPostgresStore(db *pgxpool.Pool) Store {
	return Store{
		Products: NewProductRepository(db),
		Carts:    NewCartRepository(db),
		Orders:   NewOrderRepository(db),
		Users:    NewUserRepository(db),
		Sessions: NewSessionRepository(db),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
