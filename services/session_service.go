package services

import (
	"context"
	"time"

	"bazaar-api/models"
	"bazaar-api/repositories"
	"bazaar-api/utils"
)

// IdentityResolver turns a session token into the caller's identity. It
// fails with KindUnauthenticated for a missing, malformed, expired or revoked
// session.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (models.Identity, error)
}

// SessionService issues signed session tokens and keeps a server-side
// registry of them, so a logout revokes the token before it expires.
type SessionService struct {
	sessions repositories.SessionStore
	secret   string
	ttl      time.Duration
}

func NewSessionService(sessions repositories.SessionStore, secret string, ttl time.Duration) *SessionService {
	return &SessionService{sessions: sessions, secret: secret, ttl: ttl}
}

func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

func (s *SessionService) Issue(ctx context.Context, user *models.User) (string, models.Identity, error) {
	token, claims, err := utils.GenerateToken(s.secret, s.ttl, user.ID, user.Email, user.Role)
	if err != nil {
		return "", models.Identity{}, &Error{Kind: KindInternal, Message: "Failed to create session", Err: err}
	}

	if err := s.sessions.Save(ctx, claims.ID, user.ID, s.ttl); err != nil {
		return "", models.Identity{}, storeError(err, "Session not found")
	}
	return token, identityFromClaims(claims), nil
}

func (s *SessionService) Resolve(ctx context.Context, token string) (models.Identity, error) {
	if token == "" {
		return models.Identity{}, newError(KindUnauthenticated, "Unauthorized")
	}

	claims, err := utils.ValidateToken(s.secret, token)
	if err != nil {
		return models.Identity{}, &Error{Kind: KindUnauthenticated, Message: "Invalid or expired session", Err: err}
	}

	ok, err := s.sessions.Exists(ctx, claims.ID)
	if err != nil {
		return models.Identity{}, storeError(err, "Session not found")
	}
	if !ok {
		return models.Identity{}, newError(KindUnauthenticated, "Session has been revoked")
	}
	return identityFromClaims(claims), nil
}

func (s *SessionService) Revoke(ctx context.Context, identity models.Identity) error {
	if identity.SessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, identity.SessionID); err != nil {
		return storeError(err, "Session not found")
	}
	return nil
}

func identityFromClaims(claims *utils.Claims) models.Identity {
	identity := models.Identity{
		UserID:    claims.UserID,
		Email:     claims.Email,
		Role:      claims.Role,
		SessionID: claims.ID,
	}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}
	return identity
}
