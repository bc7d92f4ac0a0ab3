package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/yemyy27/perfume-store-platform/internal/auth"
	"github.com/yemyy27/perfume-store-platform/internal/platform/httpx"
	userhttp "github.com/yemyy27/perfume-store-platform/internal/user/http"
	"github.com/yemyy27/perfume-store-platform/internal/user/service"
	"github.com/yemyy27/perfume-store-platform/internal/user/store"
	"github.com/yemyy27/perfume-store-platform/pkg/config"
	"github.com/yemyy27/perfume-store-platform/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadUser()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTAlgorithm,
		time.Duration(cfg.TokenExpireMinutes)*time.Minute)
	if err != nil {
		logger.Fatal("failed to init token manager", zap.Error(err))
	}

	users := service.NewUserService(store.NewMemoryStore(), tokens, logger)
	handler := userhttp.NewUserHandler(users, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(httpx.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.Compress(5))
	r.Use(httpx.CORS(config.SplitOrigins(cfg.CORSOrigins)))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		httpx.RespondJSON(w, http.StatusOK, map[string]string{"message": "User Service API"})
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.RespondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	r.Post("/api/auth/register", handler.Register)
	r.Post("/api/auth/login", handler.Login)
	r.Get("/api/users", handler.List)
	r.Group(func(r chi.Router) {
		r.Use(httpx.Auth(tokens))
		r.Get("/api/users/me", handler.Me)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("user service listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
