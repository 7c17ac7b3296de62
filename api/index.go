package api

import (
	"context"
	"net/http"
	"sync"

	"bazaar-api/app"
	"bazaar-api/config"
	"bazaar-api/libs"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	router  http.Handler
	initErr error
	once    sync.Once
)

func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)

		cfg := config.LoadConfig()
		logger, err := libs.NewLogger("production")
		if err != nil {
			initErr = err
			return
		}

		application, err := app.New(context.Background(), cfg, logger)
		if err != nil {
			logger.Error("Failed to initialize application", zap.Error(err))
			initErr = err
			return
		}
		router = application.Router
	})
}

// Handler is the serverless entry point. Connections are opened on the first
// request and reused while the instance stays warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	if initErr != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"message":"Server error"}`))
		return
	}
	router.ServeHTTP(w, r)
}
