package models

type SignupRequest struct {
	Username string `json:"username" form:"username" binding:"required,min=3"`
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type CreateUserRequest struct {
	Username string `json:"username" form:"username" binding:"required,min=3"`
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=6"`
	Role     string `json:"role" form:"role" binding:"omitempty,oneof=customer admin"`
}

type CreateProductRequest struct {
	ID          int64  `json:"product_id" form:"product_id" binding:"required,gt=0"`
	Name        string `json:"product_name" form:"product_name" binding:"required"`
	Description string `json:"product_description" form:"product_description" binding:"required"`
	Price       *int64 `json:"product_price" form:"product_price" binding:"required,gte=0"`
	Stock       *int   `json:"product_stock" form:"product_stock" binding:"required,gte=0"`
	Type        string `json:"product_type" form:"product_type" binding:"required"`
	Image       string `json:"product_image" form:"product_image"`
}

type UpdateProductRequest struct {
	Name        *string `json:"product_name" form:"product_name"`
	Description *string `json:"product_description" form:"product_description"`
	Price       *int64  `json:"product_price" form:"product_price" binding:"omitempty,gte=0"`
	Stock       *int    `json:"product_stock" form:"product_stock" binding:"omitempty,gte=0"`
	Type        *string `json:"product_type" form:"product_type"`
}

type AddToCartRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}
