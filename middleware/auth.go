package middleware

import (
	"errors"
	"net/http"
	"strings"

	"bazaar-api/models"
	"bazaar-api/services"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookie = "session"
	identityKey   = "identity"
)

// AuthMiddleware resolves the caller from the session cookie or a Bearer
// token and aborts with 401 when there is no valid session.
func AuthMiddleware(resolver services.IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := resolver.Resolve(c.Request.Context(), sessionToken(c))
		if err != nil {
			status := http.StatusUnauthorized
			if services.KindOf(err) == services.KindStoreUnavailable {
				status = http.StatusServiceUnavailable
			}
			c.AbortWithStatusJSON(status, models.ErrorResponse{
				Success: false,
				Message: publicMessage(err),
				Error:   string(services.KindOf(err)),
			})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// OptionalAuthMiddleware sets the identity when a valid session is present
// and lets the request through either way.
func OptionalAuthMiddleware(resolver services.IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := sessionToken(c); token != "" {
			if identity, err := resolver.Resolve(c.Request.Context(), token); err == nil {
				c.Set(identityKey, identity)
			}
		}
		c.Next()
	}
}

func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{
				Success: false,
				Message: "User role not found",
				Error:   string(services.KindForbidden),
			})
			return
		}

		if identity.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{
				Success: false,
				Message: "Access denied. Admin role required",
				Error:   string(services.KindForbidden),
			})
			return
		}

		c.Next()
	}
}

func GetIdentity(c *gin.Context) (models.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return models.Identity{}, false
	}
	identity, ok := v.(models.Identity)
	return identity, ok
}

func sessionToken(c *gin.Context) string {
	if token, err := c.Cookie(SessionCookie); err == nil && token != "" {
		return token
	}

	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func publicMessage(err error) string {
	var e *services.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Unauthorized"
}
