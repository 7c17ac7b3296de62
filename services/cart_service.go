package services

import (
	"context"
	"errors"

	"bazaar-api/models"
	"bazaar-api/repositories"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CartService keeps product stock in lockstep with cart lines. Stock is
// reserved when a line is added and released when it is removed or
// decremented. Every operation saves the product first and the cart second,
// with no transaction spanning the two. If the cart save fails the product
// change stands and is logged at warn level with both ids.
type CartService struct {
	products repositories.ProductStore
	carts    repositories.CartStore
	log      *zap.Logger

	maxConcurrent int
}

func NewCartService(products repositories.ProductStore, carts repositories.CartStore, log *zap.Logger) *CartService {
	return &CartService{
		products:      products,
		carts:         carts,
		log:           log,
		maxConcurrent: 10,
	}
}

func (s *CartService) AddToCart(ctx context.Context, identity models.Identity, productID int64, quantity int) (cart *models.Cart, err error) {
	ctx, span := tracer.Start(ctx, "cart.add")
	span.SetAttributes(
		attribute.String("user.id", identity.UserID),
		attribute.Int64("product.id", productID),
		attribute.Int("cart.quantity", quantity),
	)
	defer func() { endSpan(span, err) }()

	if err := requireIdentity(identity); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, newError(KindInvalidInput, "quantity must be at least 1")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, storeError(err, "Product not found")
	}
	if product.Stock < quantity {
		return nil, newError(KindOutOfStock, "Product out of stock")
	}

	cart, err = s.carts.FindByUser(ctx, identity.UserID)
	if errors.Is(err, repositories.ErrNotFound) {
		cart = &models.Cart{UserID: identity.UserID, Items: []models.CartLine{}}
	} else if err != nil {
		return nil, storeError(err, "Cart not found")
	}

	if i := cart.Line(productID); i >= 0 {
		cart.Items[i].Quantity += quantity
	} else {
		cart.Items = append(cart.Items, models.CartLine{ProductID: productID, Quantity: quantity})
	}
	product.Stock -= quantity

	if err := s.persist(ctx, product, cart, "add"); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) RemoveFromCart(ctx context.Context, identity models.Identity, productID int64) (cart *models.Cart, err error) {
	ctx, span := tracer.Start(ctx, "cart.remove")
	span.SetAttributes(attribute.String("user.id", identity.UserID), attribute.Int64("product.id", productID))
	defer func() { endSpan(span, err) }()

	cart, i, err := s.findLine(ctx, identity, productID)
	if err != nil {
		return nil, err
	}
	released := cart.Items[i].Quantity
	cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)

	product, err := s.releaseStock(ctx, productID, released)
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx, product, cart, "remove"); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) DecrementCartLine(ctx context.Context, identity models.Identity, productID int64) (cart *models.Cart, err error) {
	ctx, span := tracer.Start(ctx, "cart.decrement")
	span.SetAttributes(attribute.String("user.id", identity.UserID), attribute.Int64("product.id", productID))
	defer func() { endSpan(span, err) }()

	cart, i, err := s.findLine(ctx, identity, productID)
	if err != nil {
		return nil, err
	}
	cart.Items[i].Quantity--
	if cart.Items[i].Quantity <= 0 {
		cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
	}

	product, err := s.releaseStock(ctx, productID, 1)
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx, product, cart, "decrement"); err != nil {
		return nil, err
	}
	return cart, nil
}

// GetCart returns the caller's lines with their products looked up
// explicitly. A line whose product was deleted is returned with a nil product.
func (s *CartService) GetCart(ctx context.Context, identity models.Identity) ([]models.CartItemView, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}

	cart, err := s.carts.FindByUser(ctx, identity.UserID)
	if err != nil {
		return nil, storeError(err, "Cart not found")
	}

	views := make([]models.CartItemView, len(cart.Items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx, line := range cart.Items {
		g.Go(func() error {
			views[idx].Quantity = line.Quantity
			product, err := s.products.FindByID(gctx, line.ProductID)
			if errors.Is(err, repositories.ErrNotFound) {
				return nil
			}
			if err != nil {
				return storeError(err, "Product not found")
			}
			views[idx].Product = product
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return views, nil
}

func (s *CartService) findLine(ctx context.Context, identity models.Identity, productID int64) (*models.Cart, int, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, -1, err
	}

	cart, err := s.carts.FindByUser(ctx, identity.UserID)
	if err != nil {
		return nil, -1, storeError(err, "Cart not found")
	}

	i := cart.Line(productID)
	if i < 0 {
		return nil, -1, newError(KindNotFound, "Product not found in cart")
	}
	return cart, i, nil
}

// releaseStock loads the product and returns it with units added back. A
// product deleted from the catalog yields nil so the line can still leave the
// cart.
func (s *CartService) releaseStock(ctx context.Context, productID int64, units int) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, productID)
	if errors.Is(err, repositories.ErrNotFound) {
		s.log.Warn("releasing line for deleted product", zap.Int64("product_id", productID), zap.Int("units", units))
		return nil, nil
	}
	if err != nil {
		return nil, storeError(err, "Product not found")
	}
	product.Stock += units
	return product, nil
}

func (s *CartService) persist(ctx context.Context, product *models.Product, cart *models.Cart, op string) error {
	if product != nil {
		if err := s.products.Save(ctx, product); err != nil {
			return storeError(err, "Product not found")
		}
	}

	if err := s.carts.Save(ctx, cart); err != nil {
		if product != nil {
			s.log.Warn("product stock saved but cart save failed",
				zap.String("op", op),
				zap.String("user_id", cart.UserID),
				zap.Int64("product_id", product.ID),
				zap.Error(err),
			)
		}
		return storeError(err, "Cart not found")
	}
	return nil
}
