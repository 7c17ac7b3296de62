package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bazaar-api/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := map[services.Kind]int{
		services.KindNotFound:           http.StatusNotFound,
		services.KindOutOfStock:         http.StatusBadRequest,
		services.KindEmptyCart:          http.StatusBadRequest,
		services.KindInvalidInput:       http.StatusBadRequest,
		services.KindAlreadyExists:      http.StatusBadRequest,
		services.KindUnauthenticated:    http.StatusUnauthorized,
		services.KindInvalidCredentials: http.StatusUnauthorized,
		services.KindForbidden:          http.StatusForbidden,
		services.KindConflict:           http.StatusConflict,
		services.KindStoreUnavailable:   http.StatusServiceUnavailable,
		services.KindInternal:           http.StatusInternalServerError,
	}

	for kind, status := range tests {
		assert.Equal(t, status, StatusFor(kind), string(kind))
	}
}

func TestRespondErrorHidesInternalDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondError(c, errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "password authentication")
	assert.Contains(t, w.Body.String(), `"error":"internal"`)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	respondError(c, &services.Error{Kind: services.KindConflict, Message: "retry", Err: errors.New("version 3")})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"message":"retry"`)
}
