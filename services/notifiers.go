package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bazaar-api/models"
	"bazaar-api/repositories"
)

// EventPublisher writes a keyed message to a topic.
type EventPublisher interface {
	Publish(ctx context.Context, key, value []byte) error
}

type OrderCreatedEvent struct {
	OrderID     string             `json:"order_id"`
	UserID      string             `json:"user_id"`
	TotalAmount int64              `json:"total_amount"`
	Items       []models.OrderItem `json:"items"`
	CreatedAt   string             `json:"created_at"`
}

// EventNotifier publishes an order-created event keyed by user id so every
// order of a user lands on the same partition.
type EventNotifier struct {
	publisher EventPublisher
}

func NewEventNotifier(publisher EventPublisher) *EventNotifier {
	return &EventNotifier{publisher: publisher}
}

func (n *EventNotifier) OrderCreated(ctx context.Context, order *models.Order) error {
	payload, err := json.Marshal(OrderCreatedEvent{
		OrderID:     order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		Items:       order.Items,
		CreatedAt:   order.CreatedAt.Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to encode order event: %w", err)
	}
	return n.publisher.Publish(ctx, []byte(order.UserID), payload)
}

type MailSender interface {
	SendOrderConfirmation(to string, order *models.Order) error
}

// EmailNotifier mails an order confirmation to the buyer.
type EmailNotifier struct {
	mailer MailSender
	users  repositories.UserStore
}

func NewEmailNotifier(mailer MailSender, users repositories.UserStore) *EmailNotifier {
	return &EmailNotifier{mailer: mailer, users: users}
}

func (n *EmailNotifier) OrderCreated(ctx context.Context, order *models.Order) error {
	user, err := n.users.FindByID(ctx, order.UserID)
	if err != nil {
		return fmt.Errorf("failed to load buyer %s: %w", order.UserID, err)
	}
	return n.mailer.SendOrderConfirmation(user.Email, order)
}
