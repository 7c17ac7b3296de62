package controllers

import (
	"net/http"
	"strconv"

	"bazaar-api/models"
	"bazaar-api/services"
	"bazaar-api/utils"

	"github.com/gin-gonic/gin"
)

type ProductController struct {
	productService *services.ProductService
	maxUploadSize  int64
}

func NewProductController(productService *services.ProductService, maxUploadSize int64) *ProductController {
	return &ProductController{productService: productService, maxUploadSize: maxUploadSize}
}

// @Summary Get all products
// @Description Get paginated list of products
// @Tags Products
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} models.PaginationResponse
// @Router /products [get]
func (ctrl *ProductController) GetAllProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	products, meta, err := ctrl.productService.List(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.PaginationResponse{
		Success: true,
		Message: "Products retrieved",
		Data:    products,
		Meta:    meta,
	})
}

// @Summary Get product by ID
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	id, ok := productIDParam(c, "id")
	if !ok {
		return
	}

	product, err := ctrl.productService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Product retrieved", Data: product})
}

// @Summary Create product
// @Tags Admin Products
// @Security SessionCookie
// @Accept json
// @Produce json
// @Param request body models.CreateProductRequest true "Product"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid product data", err)
		return
	}

	product, err := ctrl.productService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.Response{Success: true, Message: "Product created successfully", Data: product})
}

// @Summary Update product
// @Tags Admin Products
// @Security SessionCookie
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body models.UpdateProductRequest true "Fields to change"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /products/{id} [patch]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := productIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid product data", err)
		return
	}

	product, err := ctrl.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Product updated successfully", Data: product})
}

// @Summary Delete product
// @Tags Admin Products
// @Security SessionCookie
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := productIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.productService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Product deleted successfully"})
}

// @Summary Upload product image
// @Tags Admin Products
// @Security SessionCookie
// @Accept multipart/form-data
// @Produce json
// @Param productId path int true "Product ID"
// @Param image formData file true "Image file"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /upload/{productId} [post]
func (ctrl *ProductController) UploadImage(c *gin.Context) {
	id, ok := productIDParam(c, "productId")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		respondBadRequest(c, "image file is required", err)
		return
	}
	if err := utils.ValidateImageFile(fileHeader, ctrl.maxUploadSize); err != nil {
		respondBadRequest(c, err.Error(), err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondBadRequest(c, "Failed to read image", err)
		return
	}
	defer file.Close()

	product, err := ctrl.productService.UploadImage(c.Request.Context(), id, file, fileHeader.Filename)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Image uploaded successfully", Data: product})
}
