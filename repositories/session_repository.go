package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type SessionRepository struct {
	db *pgxpool.Pool
}

func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Save(ctx context.Context, sessionID, userID string, ttl time.Duration) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO sessions (id, user_id, expires_at) VALUES ($1, $2, $3)`,
		sessionID, userID, time.Now().UTC().Add(ttl),
	)
	return err
}

func (r *SessionRepository) Exists(ctx context.Context, sessionID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM sessions WHERE id = $1 AND expires_at > now())`,
		sessionID,
	).Scan(&exists)
	return exists, err
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1 OR expires_at <= now()`, sessionID)
	return err
}
