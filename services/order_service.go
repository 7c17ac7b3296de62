package services

import (
	"context"
	"errors"
	"time"

	"bazaar-api/models"
	"bazaar-api/repositories"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// OrderNotifier is told about every order after it has been persisted.
// Notification failures never fail the checkout.
type OrderNotifier interface {
	OrderCreated(ctx context.Context, order *models.Order) error
}

type OrderService struct {
	products  repositories.ProductStore
	carts     repositories.CartStore
	orders    repositories.OrderStore
	notifiers []OrderNotifier
	log       *zap.Logger

	fanout int
}

func NewOrderService(
	products repositories.ProductStore,
	carts repositories.CartStore,
	orders repositories.OrderStore,
	log *zap.Logger,
	fanout int,
	notifiers ...OrderNotifier,
) *OrderService {
	if fanout <= 0 {
		fanout = 1
	}
	return &OrderService{
		products:  products,
		carts:     carts,
		orders:    orders,
		notifiers: notifiers,
		log:       log,
		fanout:    fanout,
	}
}

// Checkout turns the caller's cart into an order priced at the products'
// current prices, then empties the cart. Stock was reserved when the lines
// were added and is not checked again.
func (s *OrderService) Checkout(ctx context.Context, identity models.Identity) (order *models.Order, err error) {
	ctx, span := tracer.Start(ctx, "order.checkout")
	span.SetAttributes(attribute.String("user.id", identity.UserID))
	defer func() { endSpan(span, err) }()

	if err := requireIdentity(identity); err != nil {
		return nil, err
	}

	cart, err := s.carts.FindByUser(ctx, identity.UserID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, newError(KindEmptyCart, "Cart is empty")
	}
	if err != nil {
		return nil, storeError(err, "Cart not found")
	}
	if len(cart.Items) == 0 {
		return nil, newError(KindEmptyCart, "Cart is empty")
	}

	items, err := s.snapshot(ctx, cart.Items)
	if err != nil {
		return nil, err
	}

	order = &models.Order{
		ID:        uuid.NewString(),
		UserID:    identity.UserID,
		Items:     items,
		CreatedAt: time.Now().UTC(),
	}
	for _, item := range items {
		order.TotalAmount += item.UnitPrice * int64(item.Quantity)
	}
	span.SetAttributes(attribute.String("order.id", order.ID), attribute.Int64("order.total", order.TotalAmount))

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, storeError(err, "Order not found")
	}

	cart.Items = []models.CartLine{}
	if err := s.carts.Save(ctx, cart); err != nil {
		s.log.Warn("order created but cart was not cleared",
			zap.String("order_id", order.ID),
			zap.String("user_id", identity.UserID),
			zap.Error(err),
		)
		return nil, storeError(err, "Cart not found")
	}

	s.notify(ctx, order)
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, identity models.Identity) ([]models.Order, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}

	orders, err := s.orders.FindByUser(ctx, identity.UserID)
	if err != nil {
		return nil, storeError(err, "Order not found")
	}
	return orders, nil
}

// snapshot looks every line's product up concurrently and copies its name
// and price into an order item. A product deleted since it was added fails
// the checkout.
func (s *OrderService) snapshot(ctx context.Context, lines []models.CartLine) ([]models.OrderItem, error) {
	items := make([]models.OrderItem, len(lines))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fanout)

	for i, line := range lines {
		g.Go(func() error {
			product, err := s.products.FindByID(gctx, line.ProductID)
			if err != nil {
				return storeError(err, "Product not found")
			}
			items[i] = models.OrderItem{
				ProductID: product.ID,
				Name:      product.Name,
				UnitPrice: product.Price,
				Quantity:  line.Quantity,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *OrderService) notify(ctx context.Context, order *models.Order) {
	for _, n := range s.notifiers {
		if err := n.OrderCreated(ctx, order); err != nil {
			s.log.Warn("order notification failed",
				zap.String("order_id", order.ID),
				zap.Error(err),
			)
		}
	}
}
