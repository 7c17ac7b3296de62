package services

import (
	"context"
	"errors"
	"time"

	"bazaar-api/models"
	"bazaar-api/repositories"
	"bazaar-api/utils"

	"go.uber.org/zap"
)

type AuthService struct {
	users    repositories.UserStore
	sessions *SessionService
	log      *zap.Logger
}

func NewAuthService(users repositories.UserStore, sessions *SessionService, log *zap.Logger) *AuthService {
	return &AuthService{users: users, sessions: sessions, log: log}
}

func (s *AuthService) Signup(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	return createUser(ctx, s.users, req.Username, req.Email, req.Password, models.RoleCustomer)
}

// Login checks the credentials and opens a new session. An unknown email and
// a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (string, models.Identity, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(req.Email))
	if errors.Is(err, repositories.ErrNotFound) {
		return "", models.Identity{}, newError(KindInvalidCredentials, "Invalid credentials")
	}
	if err != nil {
		return "", models.Identity{}, storeError(err, "User not found")
	}

	ok, err := utils.VerifyPassword(user.Password, req.Password)
	if err != nil || !ok {
		return "", models.Identity{}, newError(KindInvalidCredentials, "Invalid credentials")
	}

	return s.sessions.Issue(ctx, user)
}

func (s *AuthService) Logout(ctx context.Context, identity models.Identity) error {
	return s.sessions.Revoke(ctx, identity)
}

func (s *AuthService) Profile(ctx context.Context, identity models.Identity) (*models.Profile, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, identity.UserID)
	if err != nil {
		return nil, storeError(err, "User not found")
	}
	return &models.Profile{Username: user.Username, Email: user.Email}, nil
}

// EnsureAdmin makes sure an admin account exists for email. An existing
// account is promoted; its password is left untouched.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" {
		return nil
	}

	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	switch {
	case err == nil:
		if user.Role == models.RoleAdmin {
			return nil
		}
		user.Role = models.RoleAdmin
		user.UpdatedAt = time.Now().UTC()
		if err := s.users.Save(ctx, user); err != nil {
			return storeError(err, "User not found")
		}
		s.log.Info("promoted user to admin", zap.String("email", user.Email))
		return nil
	case errors.Is(err, repositories.ErrNotFound):
		if password == "" {
			return newError(KindInvalidInput, "ADMIN_PASSWORD is required to create the admin account")
		}
		if _, err := createUser(ctx, s.users, "admin", email, password, models.RoleAdmin); err != nil {
			return err
		}
		s.log.Info("created admin account", zap.String("email", normalizeEmail(email)))
		return nil
	default:
		return storeError(err, "User not found")
	}
}
