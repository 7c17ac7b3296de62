package mongostore

import (
	"context"

	"bazaar-api/models"
	"bazaar-api/repositories"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Products struct {
	coll *mongo.Collection
}

func (s *Products) Create(ctx context.Context, product *models.Product) error {
	ts := now()
	doc := *product
	doc.Version = 1
	doc.CreatedAt = ts
	doc.UpdatedAt = ts

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repositories.ErrDuplicate
		}
		return err
	}
	*product = doc
	return nil
}

func (s *Products) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var p models.Product
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (s *Products) FindAll(ctx context.Context, page, limit int) ([]models.Product, int, error) {
	total, err := s.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}

	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, 0, err
	}
	return products, int(total), nil
}

func (s *Products) Save(ctx context.Context, product *models.Product) error {
	ts := now()
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": product.ID, "version": product.Version},
		bson.M{
			"$set": bson.M{
				"name":        product.Name,
				"description": product.Description,
				"price":       product.Price,
				"stock":       product.Stock,
				"type":        product.Type,
				"image":       product.Image,
				"updated_at":  ts,
			},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		n, err := s.coll.CountDocuments(ctx, bson.M{"_id": product.ID})
		if err != nil {
			return err
		}
		if n == 0 {
			return repositories.ErrNotFound
		}
		return repositories.ErrConflict
	}

	product.Version++
	product.UpdatedAt = ts
	return nil
}

func (s *Products) Delete(ctx context.Context, id int64) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
