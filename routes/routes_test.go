package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bazaar-api/controllers"
	"bazaar-api/middleware"
	"bazaar-api/models"
	"bazaar-api/repositories/memstore"
	"bazaar-api/routes"
	"bazaar-api/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx := context.Background()
	log := zap.NewNop()
	store := memstore.New()

	sessions := services.NewSessionService(store.Sessions, "test-secret", time.Hour)
	auth := services.NewAuthService(store.Users, sessions, log)
	require.NoError(t, auth.EnsureAdmin(ctx, "admin@example.com", "adminpass"))

	router := gin.New()
	routes.SetupRoutes(router, routes.Handlers{
		Resolver: sessions,
		Auth:     controllers.NewAuthController(auth, time.Hour, false),
		Users:    controllers.NewUserController(services.NewUserService(store.Users)),
		Products: controllers.NewProductController(services.NewProductService(store.Products, nil, log), 1<<20),
		Cart:     controllers.NewCartController(services.NewCartService(store.Products, store.Carts, log)),
		Orders:   controllers.NewOrderController(services.NewOrderService(store.Products, store.Carts, store.Orders, log, 4)),
		Wishlist: controllers.NewWishlistController(services.NewWishlistService(store.Users, store.Products)),
		Health:   controllers.NewHealthController(nil),
	})
	return &testServer{t: t, router: router}
}

func (s *testServer) do(method, path, token string, body any) (*httptest.ResponseRecorder, apiResponse) {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp apiResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func (s *testServer) login(email, password string) string {
	s.t.Helper()
	w, resp := s.do(http.MethodPost, "/login", "", models.LoginRequest{Email: email, Password: password})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(s.t, json.Unmarshal(resp.Data, &data))
	return data.Token
}

func TestCartAndCheckoutFlow(t *testing.T) {
	s := newTestServer(t)
	admin := s.login("admin@example.com", "adminpass")

	for _, p := range []map[string]any{
		{"product_id": 1, "product_name": "Mug", "product_description": "Stoneware", "product_price": 10, "product_stock": 5, "product_type": "kitchen"},
		{"product_id": 2, "product_name": "Tea", "product_description": "Green", "product_price": 5, "product_stock": 3, "product_type": "pantry"},
	} {
		w, _ := s.do(http.MethodPost, "/products", admin, p)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w, _ := s.do(http.MethodPost, "/signup", "", models.SignupRequest{Username: "alice", Email: "alice@example.com", Password: "secret1"})
	require.Equal(t, http.StatusCreated, w.Code)
	alice := s.login("alice@example.com", "secret1")

	w, resp := s.do(http.MethodPost, "/cart/1", alice, models.AddToCartRequest{Quantity: 6})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "out_of_stock", resp.Error)
	assert.Equal(t, "Product out of stock", resp.Message)

	w, _ = s.do(http.MethodPost, "/cart/1", alice, models.AddToCartRequest{Quantity: 3})
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(http.MethodPost, "/cart/2", alice, models.AddToCartRequest{Quantity: 1})
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(http.MethodPut, "/cart/1", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = s.do(http.MethodGet, "/products/1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var product models.Product
	require.NoError(t, json.Unmarshal(resp.Data, &product))
	assert.Equal(t, 3, product.Stock)

	w, resp = s.do(http.MethodGet, "/cart", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []models.CartItemView
	require.NoError(t, json.Unmarshal(resp.Data, &items))
	require.Len(t, items, 2)
	assert.Equal(t, 2, items[0].Quantity)

	w, resp = s.do(http.MethodPost, "/order", alice, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var order models.Order
	require.NoError(t, json.Unmarshal(resp.Data, &order))
	assert.Equal(t, int64(25), order.TotalAmount)

	w, resp = s.do(http.MethodPost, "/order", alice, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "empty_cart", resp.Error)

	w, resp = s.do(http.MethodGet, "/orders", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var orders []models.Order
	require.NoError(t, json.Unmarshal(resp.Data, &orders))
	assert.Len(t, orders, 1)

	w, resp = s.do(http.MethodDelete, "/cart/1", alice, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", resp.Error)
}

func TestAccessControl(t *testing.T) {
	s := newTestServer(t)

	w, resp := s.do(http.MethodPost, "/cart/1", "", models.AddToCartRequest{Quantity: 1})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "unauthenticated", resp.Error)

	w, _ = s.do(http.MethodPost, "/order", "bogus", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(http.MethodPost, "/signup", "", models.SignupRequest{Username: "bob", Email: "bob@example.com", Password: "secret1"})
	require.Equal(t, http.StatusCreated, w.Code)
	bob := s.login("bob@example.com", "secret1")

	w, _ = s.do(http.MethodPost, "/products", bob, map[string]any{"product_id": 9})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(http.MethodPost, "/cart/abc", bob, models.AddToCartRequest{Quantity: 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(http.MethodPost, "/cart/1", bob, map[string]int{"quantity": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp = s.do(http.MethodPost, "/cart/42", bob, models.AddToCartRequest{Quantity: 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", resp.Error)

	w, resp = s.do(http.MethodPost, "/login", "", models.LoginRequest{Email: "bob@example.com", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_credentials", resp.Error)

	w, _ = s.do(http.MethodPost, "/logout", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(http.MethodGet, "/profile", bob, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionCookie(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{"email":"admin@example.com","password":"adminpass"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var session *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			session = c
		}
	}
	require.NotNil(t, session)
	assert.True(t, session.HttpOnly)

	req = httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(session)
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin@example.com")

	req = httptest.NewRequest(http.MethodGet, "/session-data", nil)
	req.AddCookie(session)
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)
}

func TestWishlistRoutes(t *testing.T) {
	s := newTestServer(t)
	admin := s.login("admin@example.com", "adminpass")

	w, _ := s.do(http.MethodPost, "/products", admin, map[string]any{
		"product_id": 1, "product_name": "Mug", "product_description": "Stoneware",
		"product_price": 10, "product_stock": 5, "product_type": "kitchen",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	for i := 0; i < 2; i++ {
		w, _ = s.do(http.MethodPost, "/wishlist/1", admin, nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w, resp := s.do(http.MethodGet, "/wishlist", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var products []models.Product
	require.NoError(t, json.Unmarshal(resp.Data, &products))
	assert.Len(t, products, 1)

	w, _ = s.do(http.MethodDelete, "/wishlist/1", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
}
