package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"bazaar-api/models"
	"bazaar-api/repositories"
	"bazaar-api/utils"

	"github.com/google/uuid"
)

type UserService struct {
	users repositories.UserStore
}

func NewUserService(users repositories.UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Create(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	role := req.Role
	if role == "" {
		role = models.RoleCustomer
	}
	return createUser(ctx, s.users, req.Username, req.Email, req.Password, role)
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, storeError(err, "User not found")
	}
	return users, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func createUser(ctx context.Context, users repositories.UserStore, username, email, password, role string) (*models.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, newError(KindInvalidInput, "email and password are required")
	}

	_, err := users.FindByEmail(ctx, email)
	if err == nil {
		return nil, newError(KindAlreadyExists, "User already exists")
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, storeError(err, "User not found")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, &Error{Kind: KindInternal, Message: "Failed to hash password", Err: err}
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:        uuid.NewString(),
		Username:  strings.TrimSpace(username),
		Email:     email,
		Password:  hash,
		Role:      role,
		Wishlist:  []int64{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, newError(KindAlreadyExists, "User already exists")
		}
		return nil, storeError(err, "User not found")
	}
	return user, nil
}
