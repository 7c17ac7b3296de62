package controllers

import (
	"context"
	"net/http"
	"time"

	"bazaar-api/models"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type HealthController struct {
	checks map[string]Pinger
}

func NewHealthController(checks map[string]Pinger) *HealthController {
	return &HealthController{checks: checks}
}

// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} models.Response
// @Failure 503 {object} models.Response
// @Router /health [get]
func (ctrl *HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	results := gin.H{}
	for name, check := range ctrl.checks {
		if err := check.Ping(ctx); err != nil {
			status = http.StatusServiceUnavailable
			results[name] = err.Error()
			continue
		}
		results[name] = "ok"
	}

	c.JSON(status, models.Response{
		Success: status == http.StatusOK,
		Message: "Backend is running",
		Data:    results,
	})
}
