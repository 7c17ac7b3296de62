package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"bazaar-api/middleware"
	"bazaar-api/models"
	"bazaar-api/services"

	"github.com/gin-gonic/gin"
)

// StatusFor maps a service error kind to its HTTP status.
func StatusFor(kind services.Kind) int {
	switch kind {
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindOutOfStock, services.KindEmptyCart, services.KindInvalidInput, services.KindAlreadyExists:
		return http.StatusBadRequest
	case services.KindUnauthenticated, services.KindInvalidCredentials:
		return http.StatusUnauthorized
	case services.KindForbidden:
		return http.StatusForbidden
	case services.KindConflict:
		return http.StatusConflict
	case services.KindStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	kind := services.KindOf(err)
	message := "Server error"

	var svcErr *services.Error
	if errors.As(err, &svcErr) && kind != services.KindInternal {
		message = svcErr.Message
	}

	_ = c.Error(err)
	c.JSON(StatusFor(kind), models.ErrorResponse{
		Success: false,
		Message: message,
		Error:   string(kind),
	})
}

func respondBadRequest(c *gin.Context, message string, err error) {
	resp := models.ErrorResponse{
		Success: false,
		Message: message,
		Error:   string(services.KindInvalidInput),
	}
	if err != nil {
		_ = c.Error(err)
	}
	c.JSON(http.StatusBadRequest, resp)
}

func productIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondBadRequest(c, "Invalid product ID", err)
		return 0, false
	}
	return id, true
}

func requireIdentity(c *gin.Context) (models.Identity, bool) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Success: false,
			Message: "Unauthorized",
			Error:   string(services.KindUnauthenticated),
		})
		return models.Identity{}, false
	}
	return identity, true
}
