package mongostore

import (
	"context"

	"bazaar-api/models"
	"bazaar-api/repositories"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type Carts struct {
	coll *mongo.Collection
}

func (s *Carts) FindByUser(ctx context.Context, userID string) (*models.Cart, error) {
	var c models.Cart
	if err := s.coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&c); err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (s *Carts) Save(ctx context.Context, cart *models.Cart) error {
	if cart.Items == nil {
		cart.Items = []models.CartLine{}
	}
	ts := now()

	if cart.Version == 0 {
		doc := *cart
		doc.Version = 1
		doc.CreatedAt = ts
		doc.UpdatedAt = ts
		if _, err := s.coll.InsertOne(ctx, doc); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return repositories.ErrConflict
			}
			return err
		}
		*cart = doc
		return nil
	}

	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": cart.UserID, "version": cart.Version},
		bson.M{
			"$set": bson.M{"items": cart.Items, "updated_at": ts},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repositories.ErrConflict
	}

	cart.Version++
	cart.UpdatedAt = ts
	return nil
}
