package controllers

import (
	"net/http"

	"bazaar-api/models"
	"bazaar-api/services"

	"github.com/gin-gonic/gin"
)

type CartController struct {
	cartService *services.CartService
}

func NewCartController(cartService *services.CartService) *CartController {
	return &CartController{cartService: cartService}
}

// AddToCart godoc
// @Summary Add product to cart
// @Description Reserve quantity units of a product and add them to the caller's cart
// @Tags Cart
// @Security SessionCookie
// @Accept json
// @Produce json
// @Param productId path int true "Product ID"
// @Param request body models.AddToCartRequest true "Quantity"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /cart/{productId} [post]
func (ctrl *CartController) AddToCart(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	productID, ok := productIDParam(c, "productId")
	if !ok {
		return
	}

	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "quantity must be at least 1", err)
		return
	}

	cart, err := ctrl.cartService.AddToCart(c.Request.Context(), identity, productID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Product added to cart",
		Data:    cart,
	})
}

// RemoveFromCart godoc
// @Summary Remove product from cart
// @Description Remove the whole line and return its units to stock
// @Tags Cart
// @Security SessionCookie
// @Produce json
// @Param productId path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /cart/{productId} [delete]
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	productID, ok := productIDParam(c, "productId")
	if !ok {
		return
	}

	cart, err := ctrl.cartService.RemoveFromCart(c.Request.Context(), identity, productID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Product removed from cart",
		Data:    cart,
	})
}

// DecrementCartLine godoc
// @Summary Decrease cart quantity
// @Description Decrease the line quantity by one and return one unit to stock
// @Tags Cart
// @Security SessionCookie
// @Produce json
// @Param productId path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /cart/{productId} [put]
func (ctrl *CartController) DecrementCartLine(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	productID, ok := productIDParam(c, "productId")
	if !ok {
		return
	}

	cart, err := ctrl.cartService.DecrementCartLine(c.Request.Context(), identity, productID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Product quantity decreased",
		Data:    cart,
	})
}

// GetCart godoc
// @Summary Get cart
// @Description Get the caller's cart lines with product details
// @Tags Cart
// @Security SessionCookie
// @Produce json
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	items, err := ctrl.cartService.GetCart(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Cart retrieved",
		Data:    items,
	})
}
