package models

import "time"

// CartLine references a product by id. Product data is looked up explicitly
// when the cart is rendered.
type CartLine struct {
	ProductID int64 `json:"product_id" bson:"product_id"`
	Quantity  int   `json:"quantity" bson:"quantity"`
}

type Cart struct {
	UserID    string     `json:"user_id" bson:"_id"`
	Items     []CartLine `json:"items" bson:"items"`
	Version   int64      `json:"-" bson:"version"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
}

// Line returns the index of the line for productID, or -1.
func (c *Cart) Line(productID int64) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) Clone() *Cart {
	cp := *c
	cp.Items = append([]CartLine(nil), c.Items...)
	return &cp
}

type CartItemView struct {
	Product  *Product `json:"product"`
	Quantity int      `json:"quantity"`
}
