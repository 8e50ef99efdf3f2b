package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/burnhorn/LinkTale-frontend/internal/config"
	"github.com/burnhorn/LinkTale-frontend/internal/gateway"
	"github.com/burnhorn/LinkTale-frontend/internal/logger"
)

func main() {
	// Load .env for local development; ignored when absent.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Log.Level,
		Encoding: cfg.Log.Encoding,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()
	zapLogger.Info("Logger initialized", zap.String("logLevel", cfg.Log.Level))

	httpClient := &http.Client{Timeout: cfg.Backend.RequestTimeout}
	handlers, err := gateway.NewHandlers(cfg.Backend.ChatAPIBaseURL, cfg.Backend.UseMockData, httpClient, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to build gateway handlers", zap.Error(err))
	}

	router := gateway.NewRouter(handlers, gateway.RouterConfig{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		JWTSecret:      cfg.Auth.JWTSecret,
	}, zapLogger)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		zapLogger.Info("Gateway listening", zap.String("port", cfg.Server.Port),
			zap.Bool("mockData", cfg.Backend.UseMockData))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLogger.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Graceful shutdown failed", zap.Error(err))
	}
	zapLogger.Info("Gateway stopped")
}
