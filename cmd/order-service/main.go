package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/yemyy27/perfume-store-platform/internal/auth"
	"github.com/yemyy27/perfume-store-platform/internal/order/cart"
	"github.com/yemyy27/perfume-store-platform/internal/order/catalog"
	"github.com/yemyy27/perfume-store-platform/internal/order/checkout"
	"github.com/yemyy27/perfume-store-platform/internal/order/events"
	orderhttp "github.com/yemyy27/perfume-store-platform/internal/order/http"
	"github.com/yemyy27/perfume-store-platform/internal/order/orders"
	"github.com/yemyy27/perfume-store-platform/internal/platform/httpx"
	"github.com/yemyy27/perfume-store-platform/pkg/config"
	"github.com/yemyy27/perfume-store-platform/pkg/logging"
)

const checkoutLockTTL = 30 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadOrder()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTAlgorithm, 0)
	if err != nil {
		logger.Fatal("failed to init token manager", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	mongoDB, err := cart.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		cancel()
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	if err := cart.EnsureIndexes(ctx, mongoDB); err != nil {
		cancel()
		logger.Fatal("failed to create cart indexes", zap.Error(err))
	}
	cancel()
	cartRepo := cart.NewMongoRepository(mongoDB)

	orderRepo, err := orders.NewPostgresRepository(&orders.Credentials{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
	})
	if err != nil {
		logger.Fatal("failed to connect to Postgres", zap.Error(err))
	}
	defer orderRepo.Close()

	if err := orderRepo.RunMigrations(cfg.MigrationsPath); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer redisClient.Close()
	locker := checkout.NewRedisLocker(redisClient, checkoutLockTTL)

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.KafkaBrokers != "" {
		publisher = events.NewKafkaPublisher(strings.Split(cfg.KafkaBrokers, ",")...)
		logger.Info("kafka event publication enabled", zap.String("brokers", cfg.KafkaBrokers))
	}
	defer publisher.Close()

	reader := catalog.NewHTTPClient(cfg.ProductServiceURL)
	cartSvc := cart.NewService(cartRepo, reader, logger)
	checkoutSvc := checkout.NewService(cartRepo, orderRepo, reader, locker, publisher, logger)
	handler := orderhttp.NewOrderHandler(cartSvc, checkoutSvc, orderRepo, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(httpx.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))
	r.Use(httpx.CORS(config.SplitOrigins(cfg.CORSOrigins)))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		httpx.RespondJSON(w, http.StatusOK, map[string]string{"message": "Order Service API"})
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.RespondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	// Status updates stay open for fulfillment tooling.
	r.Patch("/api/orders/{id}/status", handler.UpdateStatus)

	r.Group(func(r chi.Router) {
		r.Use(httpx.Auth(tokens))
		r.Post("/api/cart/add", handler.AddToCart)
		r.Get("/api/cart", handler.GetCart)
		r.Delete("/api/cart", handler.ClearCart)
		r.Post("/api/orders", handler.CreateOrder)
		r.Get("/api/orders", handler.ListOrders)
		r.Get("/api/orders/{id}", handler.GetOrder)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("order service listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
