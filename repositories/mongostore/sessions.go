package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type sessionDoc struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	ExpiresAt time.Time `bson:"expires_at"`
}

// Sessions relies on the TTL index from EnsureIndexes for cleanup; Exists
// still checks expiry because the TTL monitor runs only once a minute.
type Sessions struct {
	coll *mongo.Collection
}

func (s *Sessions) Save(ctx context.Context, sessionID, userID string, ttl time.Duration) error {
	_, err := s.coll.InsertOne(ctx, sessionDoc{ID: sessionID, UserID: userID, ExpiresAt: now().Add(ttl)})
	return err
}

func (s *Sessions) Exists(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.coll.CountDocuments(ctx, bson.M{"_id": sessionID, "expires_at": bson.M{"$gt": now()}})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Sessions) Delete(ctx context.Context, sessionID string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": sessionID})
	return err
}
