package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Sowmiya2022/clinical-bert-api/internal/adapter/client"
	"github.com/Sowmiya2022/clinical-bert-api/internal/adapter/http/router"
	"github.com/Sowmiya2022/clinical-bert-api/internal/infrastructure/cache"
	"github.com/Sowmiya2022/clinical-bert-api/internal/infrastructure/config"
	"github.com/Sowmiya2022/clinical-bert-api/internal/infrastructure/logger"
	"github.com/Sowmiya2022/clinical-bert-api/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	// Initialize Redis (optional, continue without it)
	var results *cache.ResultCache
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Warn("Failed to connect to Redis, continuing without prediction cache", zap.Error(err))
	} else {
		log.Info("Connected to Redis")
		results = cache.NewResultCache(redisClient, cfg.Redis.TTL)
	}

	// Build the inference provider and usecase
	runnerClient := client.NewRunnerClient(cfg.Model.RunnerURL, cfg.Model.Timeout)
	provider := client.NewRunnerProvider(runnerClient)
	assertionUC := usecase.NewAssertionUsecase(provider, results, log, cfg.Model.Name, cfg.Model.BatchSize)

	// Load the model before accepting traffic. A failed load keeps the
	// process serving 503s; restarting is the only recovery.
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), cfg.Model.Timeout)
	if err := assertionUC.Initialize(loadCtx); err != nil {
		log.Error("Model load failed, serving in not-ready state", zap.Error(err))
	}
	cancelLoad()

	// Setup router
	r := router.Setup(assertionUC, cfg.Model.Name, log)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("Starting server", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	// Close Redis connection
	if redisClient != nil {
		_ = redisClient.Close()
	}

	log.Info("Server exited")
	return nil
}
