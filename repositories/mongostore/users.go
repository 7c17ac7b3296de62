package mongostore

import (
	"context"

	"bazaar-api/models"
	"bazaar-api/repositories"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Users struct {
	coll *mongo.Collection
}

func (s *Users) Create(ctx context.Context, user *models.User) error {
	if user.Wishlist == nil {
		user.Wishlist = []int64{}
	}
	ts := now()
	user.CreatedAt = ts
	user.UpdatedAt = ts

	if _, err := s.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repositories.ErrDuplicate
		}
		return err
	}
	return nil
}

func (s *Users) FindByID(ctx context.Context, id string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *Users) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	if err := s.coll.FindOne(ctx, filter).Decode(&u); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *Users) FindAll(ctx context.Context) ([]models.User, error) {
	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}

	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Users) Save(ctx context.Context, user *models.User) error {
	if user.Wishlist == nil {
		user.Wishlist = []int64{}
	}
	user.UpdatedAt = now()

	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repositories.ErrDuplicate
		}
		return err
	}
	if res.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
