package controllers

import (
	"net/http"

	"bazaar-api/models"
	"bazaar-api/services"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	orderService *services.OrderService
}

func NewOrderController(orderService *services.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// Checkout godoc
// @Summary Place order
// @Description Turn the caller's cart into an order at current prices and empty the cart
// @Tags Orders
// @Security SessionCookie
// @Produce json
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /order [post]
func (ctrl *OrderController) Checkout(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	order, err := ctrl.orderService.Checkout(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Order placed successfully",
		Data:    order,
	})
}

// ListOrders godoc
// @Summary Get order history
// @Description Get the caller's orders, newest first
// @Tags Orders
// @Security SessionCookie
// @Produce json
// @Success 200 {object} models.Response
// @Router /orders [get]
func (ctrl *OrderController) ListOrders(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	orders, err := ctrl.orderService.ListOrders(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Orders retrieved",
		Data:    orders,
	})
}
