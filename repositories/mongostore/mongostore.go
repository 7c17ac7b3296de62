// Package mongostore keeps products, carts, orders, users and sessions as
// MongoDB documents. Carts are keyed by user id and embed their lines.
package mongostore

import (
	"context"
	"errors"
	"time"

	"bazaar-api/repositories"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	productsCollection = "products"
	cartsCollection    = "carts"
	ordersCollection   = "orders"
	usersCollection    = "users"
	sessionsCollection = "sessions"
)

func New(db *mongo.Database) repositories.Store {
	return repositories.Store{
		Products: &Products{coll: db.Collection(productsCollection)},
		Carts:    &Carts{coll: db.Collection(cartsCollection)},
		Orders:   &Orders{coll: db.Collection(ordersCollection)},
		Users:    &Users{coll: db.Collection(usersCollection)},
		Sessions: &Sessions{coll: db.Collection(sessionsCollection)},
	}
}

// EnsureIndexes creates the unique and TTL indexes the stores rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(ordersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(sessionsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	return err
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repositories.ErrNotFound
	}
	return err
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
