package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/cafeteria-service/internal/api/http"
	"github.com/spec-kit/cafeteria-service/internal/api/http/handlers"
	"github.com/spec-kit/cafeteria-service/internal/api/http/web"
	"github.com/spec-kit/cafeteria-service/internal/auth"
	"github.com/spec-kit/cafeteria-service/internal/config"
	"github.com/spec-kit/cafeteria-service/internal/events"
	"github.com/spec-kit/cafeteria-service/internal/observability"
	"github.com/spec-kit/cafeteria-service/internal/persistence"
	"github.com/spec-kit/cafeteria-service/internal/repository"
	"github.com/spec-kit/cafeteria-service/internal/service"
	"github.com/spec-kit/cafeteria-service/internal/session"
	"github.com/spec-kit/cafeteria-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)

	sessionStore := session.NewRedisStore(redis.Client, cfg.Auth.SessionTTL())
	sessions := session.NewManager(sessionStore, cfg.Auth)

	dispatcher := events.NewInMemoryDispatcher()
	notifications := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notifications)

	authService, err := service.NewAuthService(*cfg, service.AuthDependencies{UserRepo: userRepo})
	if err != nil {
		logger.Fatal("failed to init auth service", zap.Error(err))
	}
	productService := service.NewProductService(productRepo)
	orderService := service.NewOrderService(service.OrderDependencies{
		OrderRepo:   orderRepo,
		ProductRepo: productRepo,
		Dispatcher:  dispatcher,
	})
	cartService := service.NewCartService(service.CartDependencies{
		Redis:       redis.Client,
		ProductRepo: productRepo,
		OrderRepo:   orderRepo,
		Dispatcher:  dispatcher,
	})

	resolver := auth.NewResolver(authService.TokenManager(), userRepo, sessions, "/api/auth")

	views, err := web.NewView()
	if err != nil {
		logger.Fatal("failed to parse templates", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:     handlers.NewAuthHandler(authService, sessions),
		Profile:  handlers.NewProfileHandler(userRepo),
		Products: handlers.NewProductsHandler(productService),
		Orders:   handlers.NewOrdersHandler(orderService),
		Web: handlers.NewWebHandler(handlers.WebDependencies{
			Auth:     authService,
			Sessions: sessions,
			Products: productService,
			Orders:   orderService,
			UserRepo: userRepo,
			Views:    views,
		}),
		Cart:     handlers.NewCartHandler(cartService, views),
		Admin:    handlers.NewAdminHandler(productService, orderService, views),
		Resolver: resolver,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
