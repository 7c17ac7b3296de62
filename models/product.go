package models

import "time"

type Product struct {
	ID          int64     `json:"product_id" bson:"_id"`
	Name        string    `json:"product_name" bson:"name"`
	Description string    `json:"product_description" bson:"description"`
	Price       int64     `json:"product_price" bson:"price"`
	Stock       int       `json:"product_stock" bson:"stock"`
	Type        string    `json:"product_type" bson:"type"`
	Image       string    `json:"product_image,omitempty" bson:"image,omitempty"`
	Version     int64     `json:"-" bson:"version"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
