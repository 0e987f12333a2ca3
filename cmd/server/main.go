package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/matbakhapp/orderapi/internal/api"
	"github.com/matbakhapp/orderapi/internal/cart"
	"github.com/matbakhapp/orderapi/internal/config"
	"github.com/matbakhapp/orderapi/internal/notification"
	"github.com/matbakhapp/orderapi/internal/repository/postgres"
	"github.com/matbakhapp/orderapi/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	// Connect to database and apply migrations
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.RunMigrations(db, cfg.MigrationsPath); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	repos := postgres.NewRepositories(db, logger)

	// Session cart store
	var cartStore cart.Store
	if cfg.Cart.Backend == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		cartStore = cart.NewRedisStore(client)
	} else {
		cartStore = cart.NewMemoryStore()
	}

	// Notification dispatcher
	var dispatcher notification.Dispatcher
	if cfg.WebhookURL != "" {
		dispatcher = notification.NewWebhookDispatcher(cfg.WebhookURL)
	} else {
		dispatcher = notification.NewLogDispatcher(logger)
	}

	// Services
	promos := service.NewPromoService(repos, logger)
	carts := service.NewCartService(cartStore, promos, logger)
	orders := service.NewOrderService(repos, promos, dispatcher, logger)

	router := api.NewRouter(cfg, repos, carts, orders, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}
}
