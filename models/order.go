package models

import "time"

// OrderItem is captured at checkout and never follows later product changes.
type OrderItem struct {
	ProductID int64  `json:"product_id" bson:"product_id"`
	Name      string `json:"product_name" bson:"name"`
	UnitPrice int64  `json:"unit_price" bson:"unit_price"`
	Quantity  int    `json:"quantity" bson:"quantity"`
}

type Order struct {
	ID          string      `json:"id" bson:"_id"`
	UserID      string      `json:"user_id" bson:"user_id"`
	Items       []OrderItem `json:"items" bson:"items"`
	TotalAmount int64       `json:"total_amount" bson:"total_amount"`
	CreatedAt   time.Time   `json:"created_at" bson:"created_at"`
}

func (o *Order) Clone() *Order {
	cp := *o
	cp.Items = append([]OrderItem(nil), o.Items...)
	return &cp
}
