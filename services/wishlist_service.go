package services

import (
	"context"
	"errors"
	"slices"
	"time"

	"bazaar-api/models"
	"bazaar-api/repositories"
)

type WishlistService struct {
	users    repositories.UserStore
	products repositories.ProductStore
}

func NewWishlistService(users repositories.UserStore, products repositories.ProductStore) *WishlistService {
	return &WishlistService{users: users, products: products}
}

// Add puts the product on the caller's wishlist. Adding a product that is
// already there is a no-op.
func (s *WishlistService) Add(ctx context.Context, identity models.Identity, productID int64) error {
	user, err := s.loadUser(ctx, identity)
	if err != nil {
		return err
	}
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return storeError(err, "Product not found")
	}

	if slices.Contains(user.Wishlist, productID) {
		return nil
	}
	user.Wishlist = append(user.Wishlist, productID)
	return s.save(ctx, user)
}

// List returns the wishlisted products in the order they were added,
// skipping any that have since been deleted.
func (s *WishlistService) List(ctx context.Context, identity models.Identity) ([]models.Product, error) {
	user, err := s.loadUser(ctx, identity)
	if err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(user.Wishlist))
	for _, id := range user.Wishlist {
		product, err := s.products.FindByID(ctx, id)
		if errors.Is(err, repositories.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, storeError(err, "Product not found")
		}
		products = append(products, *product)
	}
	return products, nil
}

func (s *WishlistService) Remove(ctx context.Context, identity models.Identity, productID int64) error {
	user, err := s.loadUser(ctx, identity)
	if err != nil {
		return err
	}

	user.Wishlist = slices.DeleteFunc(user.Wishlist, func(id int64) bool { return id == productID })
	return s.save(ctx, user)
}

func (s *WishlistService) loadUser(ctx context.Context, identity models.Identity) (*models.User, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, identity.UserID)
	if err != nil {
		return nil, storeError(err, "User not found")
	}
	return user, nil
}

func (s *WishlistService) save(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Save(ctx, user); err != nil {
		return storeError(err, "User not found")
	}
	return nil
}
