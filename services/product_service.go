package services

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"strings"

	"bazaar-api/models"
	"bazaar-api/repositories"

	"go.uber.org/zap"
)

// ImageStore uploads a product image and returns the URL it is served from.
type ImageStore interface {
	UploadImage(ctx context.Context, file io.Reader, filename, folder string) (string, error)
}

type ProductService struct {
	products repositories.ProductStore
	images   ImageStore
	log      *zap.Logger
}

// NewProductService builds the catalog service. images may be nil, in which
// case uploaded images are stored inline as base64.
func NewProductService(products repositories.ProductStore, images ImageStore, log *zap.Logger) *ProductService {
	return &ProductService{products: products, images: images, log: log}
}

func (s *ProductService) Create(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	product := &models.Product{
		ID:          req.ID,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Type:        strings.TrimSpace(req.Type),
		Image:       req.Image,
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if err := s.products.Create(ctx, product); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, newError(KindAlreadyExists, "Product with id %d already exists", product.ID)
		}
		return nil, storeError(err, "Product not found")
	}
	return product, nil
}

func (s *ProductService) Get(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Product not found")
	}
	return product, nil
}

func (s *ProductService) List(ctx context.Context, page, limit int) ([]models.Product, models.MetaData, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	products, total, err := s.products.FindAll(ctx, page, limit)
	if err != nil {
		return nil, models.MetaData{}, storeError(err, "Product not found")
	}

	meta := models.MetaData{
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: (total + limit - 1) / limit,
	}
	return products, meta, nil
}

// Update applies the non-nil fields of req. It is a versioned save, so a
// concurrent stock change made by a cart operation surfaces as a conflict.
func (s *ProductService) Update(ctx context.Context, id int64, req models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Product not found")
	}

	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		product.Description = strings.TrimSpace(*req.Description)
	}
	if req.Type != nil {
		product.Type = strings.TrimSpace(*req.Type)
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, storeError(err, "Product not found")
	}
	return product, nil
}

// Delete removes the product from the catalog. Cart lines that still point at
// it are left alone and dropped when their owner removes them.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return storeError(err, "Product not found")
	}
	return nil
}

func (s *ProductService) UploadImage(ctx context.Context, id int64, file io.Reader, filename string) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Product not found")
	}

	if s.images != nil {
		url, err := s.images.UploadImage(ctx, file, filename, "products")
		if err != nil {
			s.log.Error("image upload failed", zap.Int64("product_id", id), zap.Error(err))
			return nil, &Error{Kind: KindStoreUnavailable, Message: "Failed to upload image", Err: err}
		}
		product.Image = url
	} else {
		raw, err := io.ReadAll(file)
		if err != nil {
			return nil, &Error{Kind: KindInvalidInput, Message: "Failed to read image", Err: err}
		}
		product.Image = base64.StdEncoding.EncodeToString(raw)
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, storeError(err, "Product not found")
	}
	return product, nil
}

func validateProduct(p *models.Product) error {
	switch {
	case p.ID <= 0:
		return newError(KindInvalidInput, "product_id must be a positive number")
	case p.Name == "":
		return newError(KindInvalidInput, "product_name is required")
	case p.Description == "":
		return newError(KindInvalidInput, "product_description is required")
	case p.Type == "":
		return newError(KindInvalidInput, "product_type is required")
	case p.Price < 0:
		return newError(KindInvalidInput, "product_price must not be negative")
	case p.Stock < 0:
		return newError(KindInvalidInput, "product_stock must not be negative")
	}
	return nil
}
