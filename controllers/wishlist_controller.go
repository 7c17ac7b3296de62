package controllers

import (
	"net/http"

	"bazaar-api/models"
	"bazaar-api/services"

	"github.com/gin-gonic/gin"
)

type WishlistController struct {
	wishlistService *services.WishlistService
}

func NewWishlistController(wishlistService *services.WishlistService) *WishlistController {
	return &WishlistController{wishlistService: wishlistService}
}

// @Summary Add to wishlist
// @Tags Wishlist
// @Security SessionCookie
// @Produce json
// @Param productId path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /wishlist/{productId} [post]
func (ctrl *WishlistController) AddToWishlist(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	productID, ok := productIDParam(c, "productId")
	if !ok {
		return
	}

	if err := ctrl.wishlistService.Add(c.Request.Context(), identity, productID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Product added to wishlist"})
}

// @Summary Get wishlist
// @Tags Wishlist
// @Security SessionCookie
// @Produce json
// @Success 200 {object} models.Response
// @Router /wishlist [get]
func (ctrl *WishlistController) GetWishlist(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	products, err := ctrl.wishlistService.List(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Wishlist retrieved", Data: products})
}

// @Summary Remove from wishlist
// @Tags Wishlist
// @Security SessionCookie
// @Produce json
// @Param productId path int true "Product ID"
// @Success 200 {object} models.Response
// @Router /wishlist/{productId} [delete]
func (ctrl *WishlistController) RemoveFromWishlist(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	productID, ok := productIDParam(c, "productId")
	if !ok {
		return
	}

	if err := ctrl.wishlistService.Remove(c.Request.Context(), identity, productID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Product removed from wishlist"})
}
