// Package app assembles the store, services and HTTP router from a Config.
// Both the long-running server and the serverless handler build on it.
package app

import (
	"context"
	"errors"
	"fmt"

	"bazaar-api/config"
	"bazaar-api/controllers"
	"bazaar-api/libs"
	"bazaar-api/middleware"
	"bazaar-api/repositories"
	"bazaar-api/repositories/memstore"
	"bazaar-api/repositories/mongostore"
	"bazaar-api/routes"
	"bazaar-api/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type App struct {
	Router *gin.Engine
	Store  repositories.Store

	log     *zap.Logger
	closers []func(context.Context) error
}

func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	a := &App{log: log}

	shutdownTracing, err := libs.SetupTracing(ctx, cfg.OTLPEndpoint)
	if err != nil {
		log.Error("Failed to setup OpenTelemetry tracing", zap.Error(err))
	}
	a.closers = append(a.closers, shutdownTracing)

	checks := map[string]controllers.Pinger{}
	store, err := a.openStore(ctx, cfg, checks)
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}

	rdb, err := config.ConnectRedis(ctx, cfg)
	if err != nil {
		log.Warn("redis unavailable, sessions stay in the primary store", zap.Error(err))
	}
	if rdb != nil {
		store.Sessions = repositories.NewRedisSessionStore(rdb)
		store.Products = repositories.NewCachedProductStore(store.Products, rdb, cfg.CacheTTL, log)
		checks["redis"] = controllers.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
		a.closers = append(a.closers, func(context.Context) error { return rdb.Close() })
	}
	a.Store = store

	var images services.ImageStore
	if cfg.CloudinaryURL != "" {
		cld, err := libs.NewCloudinaryStore(cfg.CloudinaryURL)
		if err != nil {
			log.Warn("cloudinary disabled, images are stored inline", zap.Error(err))
		} else {
			images = cld
		}
	}

	var notifiers []services.OrderNotifier
	if len(cfg.KafkaBrokers) > 0 {
		publisher := libs.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		notifiers = append(notifiers, services.NewEventNotifier(publisher))
		a.closers = append(a.closers, func(context.Context) error { return publisher.Close() })
	}
	if cfg.SMTPHost != "" {
		mailer, err := libs.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
		if err != nil {
			log.Warn("order e-mails disabled", zap.Error(err))
		} else {
			notifiers = append(notifiers, services.NewEmailNotifier(mailer, store.Users))
		}
	}

	sessionService := services.NewSessionService(store.Sessions, cfg.JWTSecret, cfg.SessionTTL)
	authService := services.NewAuthService(store.Users, sessionService, log)

	if err := authService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Error("failed to bootstrap admin account", zap.String("email", cfg.AdminEmail), zap.Error(err))
	}

	handlers := routes.Handlers{
		Resolver: sessionService,
		Auth:     controllers.NewAuthController(authService, cfg.SessionTTL, cfg.CookieSecure),
		Users:    controllers.NewUserController(services.NewUserService(store.Users)),
		Products: controllers.NewProductController(services.NewProductService(store.Products, images, log), cfg.MaxUploadSize),
		Cart:     controllers.NewCartController(services.NewCartService(store.Products, store.Carts, log)),
		Orders: controllers.NewOrderController(services.NewOrderService(
			store.Products, store.Carts, store.Orders, log, cfg.CheckoutFanout, notifiers...,
		)),
		Wishlist: controllers.NewWishlistController(services.NewWishlistService(store.Users, store.Products)),
		Health:   controllers.NewHealthController(checks),
	}

	a.Router = NewRouter(cfg, log, handlers)
	return a, nil
}

func NewRouter(cfg *config.Config, log *zap.Logger, handlers routes.Handlers) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = cfg.MaxUploadSize
	router.Use(gin.Recovery())
	router.Use(middleware.Tracing(libs.ServiceName))
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORSMiddleware(cfg.AllowOrigins))

	routes.SetupRoutes(router, handlers)
	return router
}

func (a *App) openStore(ctx context.Context, cfg *config.Config, checks map[string]controllers.Pinger) (repositories.Store, error) {
	switch cfg.StoreDriver {
	case "memory":
		a.log.Warn("using the in-memory store, data is lost on restart")
		return memstore.New(), nil

	case "mongo":
		client, err := config.ConnectMongo(ctx, cfg)
		if err != nil {
			return repositories.Store{}, err
		}
		a.closers = append(a.closers, client.Disconnect)

		db := client.Database(cfg.MongoDatabase)
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			return repositories.Store{}, fmt.Errorf("ensure mongo indexes: %w", err)
		}
		checks["mongo"] = controllers.PingFunc(func(ctx context.Context) error { return client.Ping(ctx, nil) })
		return mongostore.New(db), nil

	case "postgres", "":
		if err := config.RunMigrations(cfg); err != nil {
			return repositories.Store{}, err
		}
		pool, err := config.ConnectDB(ctx, cfg)
		if err != nil {
			return repositories.Store{}, err
		}
		a.closers = append(a.closers, func(context.Context) error { pool.Close(); return nil })
		checks["postgres"] = pool
		return repositories.NewPostgresStore(pool), nil

	default:
		return repositories.Store{}, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

// Close releases connections in reverse order of acquisition.
func (a *App) Close(ctx context.Context) error {
	var err error
	for i := len(a.closers) - 1; i >= 0; i-- {
		err = errors.Join(err, a.closers[i](ctx))
	}
	a.closers = nil
	return err
}
