package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func CORSMiddleware(origins []string) gin.HandlerFunc {
	allowedOrigins := []string{
		"http://localhost:5173",
	}
	allowedOrigins = append(allowedOrigins, origins...)

	return cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "traceparent"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	})
}
