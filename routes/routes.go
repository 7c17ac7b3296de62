package routes

import (
	"bazaar-api/controllers"
	"bazaar-api/middleware"
	"bazaar-api/services"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Handlers struct {
	Resolver services.IdentityResolver
	Auth     *controllers.AuthController
	Users    *controllers.UserController
	Products *controllers.ProductController
	Cart     *controllers.CartController
	Orders   *controllers.OrderController
	Wishlist *controllers.WishlistController
	Health   *controllers.HealthController
}

func SetupRoutes(router *gin.Engine, h Handlers) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.Health.Health)

	router.POST("/signup", h.Auth.Signup)
	router.POST("/login", h.Auth.Login)
	router.GET("/session-data", middleware.OptionalAuthMiddleware(h.Resolver), h.Auth.SessionData)
	router.GET("/products", h.Products.GetAllProducts)
	router.GET("/products/:id", h.Products.GetProductByID)

	auth := router.Group("/")
	auth.Use(middleware.AuthMiddleware(h.Resolver))
	{
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/profile", h.Auth.Profile)

		auth.GET("/cart", h.Cart.GetCart)
		auth.POST("/cart/:productId", h.Cart.AddToCart)
		auth.DELETE("/cart/:productId", h.Cart.RemoveFromCart)
		auth.PUT("/cart/:productId", h.Cart.DecrementCartLine)

		auth.POST("/order", h.Orders.Checkout)
		auth.GET("/orders", h.Orders.ListOrders)

		auth.GET("/wishlist", h.Wishlist.GetWishlist)
		auth.POST("/wishlist/:productId", h.Wishlist.AddToWishlist)
		auth.DELETE("/wishlist/:productId", h.Wishlist.RemoveFromWishlist)
	}

	admin := router.Group("/")
	admin.Use(middleware.AuthMiddleware(h.Resolver), middleware.AdminMiddleware())
	{
		admin.GET("/users", h.Users.GetAllUsers)
		admin.POST("/users", h.Users.CreateUser)

		admin.POST("/products", h.Products.CreateProduct)
		admin.PATCH("/products/:id", h.Products.UpdateProduct)
		admin.DELETE("/products/:id", h.Products.DeleteProduct)

		admin.POST("/upload/:productId", h.Products.UploadImage)
	}
}
