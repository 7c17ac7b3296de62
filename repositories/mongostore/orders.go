package mongostore

import (
	"context"

	"bazaar-api/models"
	"bazaar-api/repositories"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Orders struct {
	coll *mongo.Collection
}

func (s *Orders) Create(ctx context.Context, order *models.Order) error {
	if _, err := s.coll.InsertOne(ctx, order); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repositories.ErrDuplicate
		}
		return err
	}
	return nil
}

func (s *Orders) FindByUser(ctx context.Context, userID string) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}

	orders := []models.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
