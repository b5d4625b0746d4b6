package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/light-bringer/bijoux-service/internal/pkg/logging"
	"github.com/light-bringer/bijoux-service/internal/services"
	transport "github.com/light-bringer/bijoux-service/internal/transport/http"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Load configuration from environment variables
	config := loadConfig()

	logger, err := logging.New(config.Env)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("starting jewelry storefront service",
		zap.String("spanner_database", config.Service.SpannerDB),
		zap.String("image_bucket", config.Service.ImageBucket),
		zap.String("redis_addr", config.Service.RedisAddr),
		zap.String("http_port", config.HTTPPort),
	)

	// 2. Initialize service dependencies (DI container)
	serviceOpts, err := services.NewServiceOptions(ctx, config.Service, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer serviceOpts.Close()

	// 3. Create HTTP server
	router := transport.NewRouter(serviceOpts.Handlers, logger)
	httpServer := &http.Server{
		Addr:         ":" + config.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 4. Start HTTP server in background
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	// 5. Graceful shutdown handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	return nil
}

// Config holds application configuration.
type Config struct {
	Service  services.Config
	HTTPPort string
	Env      string
}

// loadConfig loads configuration from environment variables with defaults.
func loadConfig() Config {
	return Config{
		Service: services.Config{
			// Default for local development with emulator
			SpannerDB:      getEnv("SPANNER_DATABASE", "projects/test-project/instances/dev-instance/databases/bijoux-db"),
			ImageBucket:    getEnv("IMAGE_BUCKET", "bijoux-product-images"),
			RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
			SiteOrigin:     getEnv("SITE_ORIGIN", "http://localhost:8080"),
			WhatsAppNumber: getEnv("WHATSAPP_NUMBER", "15816884483"),
		},
		HTTPPort: getEnv("HTTP_PORT", "8080"),
		Env:      getEnv("ENV", "development"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
