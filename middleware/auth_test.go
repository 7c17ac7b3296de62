package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bazaar-api/models"
	"bazaar-api/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubResolver map[string]models.Identity

func (s stubResolver) Resolve(_ context.Context, token string) (models.Identity, error) {
	if token == "down" {
		return models.Identity{}, &services.Error{Kind: services.KindStoreUnavailable, Message: "store unavailable", Err: errors.New("dial tcp")}
	}
	identity, ok := s[token]
	if !ok {
		return models.Identity{}, &services.Error{Kind: services.KindUnauthenticated, Message: "Unauthorized"}
	}
	return identity, nil
}

var resolver = stubResolver{
	"customer-token": {UserID: "u1", Role: models.RoleCustomer},
	"admin-token":    {UserID: "u2", Role: models.RoleAdmin},
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		identity, _ := GetIdentity(c)
		c.String(http.StatusOK, identity.UserID)
	})
	r.GET("/", handlers...)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter(AuthMiddleware(resolver))

	tests := []struct {
		name   string
		setup  func(*http.Request)
		status int
		body   string
	}{
		{"no session", func(*http.Request) {}, http.StatusUnauthorized, ""},
		{"cookie", func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "customer-token"})
		}, http.StatusOK, "u1"},
		{"bearer", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer admin-token")
		}, http.StatusOK, "u2"},
		{"unknown token", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer nope")
		}, http.StatusUnauthorized, ""},
		{"store down", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer down")
		}, http.StatusServiceUnavailable, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestOptionalAuthMiddleware(t *testing.T) {
	r := newRouter(OptionalAuthMiddleware(resolver))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "customer-token"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "u1", w.Body.String())
}

func TestAdminMiddleware(t *testing.T) {
	r := newRouter(AuthMiddleware(resolver), AdminMiddleware())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer customer-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u2", w.Body.String())
}
