package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"courseplayer/internal/api/v1/router"
	"courseplayer/internal/config"
	"courseplayer/internal/logger"
	"courseplayer/internal/service"

	"github.com/joho/godotenv"
)

// @title Course Player API
// @version 1.0
// @description Course catalog, learning sessions, quizzes and completion certificates
// @host localhost:8080
// @BasePath /v1
// @Schemes http https

func main() {
	logger := logger.New()

	// 1. Load configuration
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("Warning: no .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Msgf("Error loading config: %v", err)
	}

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	if err := service.LoadJWTSecret(startCtx, cfg); err != nil {
		logger.Fatal().Msgf("Error loading JWT secret: %v", err)
	}
	if cfg.JWTSecret == "" {
		logger.Fatal().Msg("JWT_SECRET or JWT_SECRET_NAME must be set")
	}

	// 2. Build router
	r, shutdown, err := router.New(startCtx, cfg, logger)
	cancelStart()
	if err != nil {
		logger.Fatal().Msgf("Failed to build router: %v", err)
	}

	// 3. Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 4. Start server in a goroutine
	go func() {
		logger.Info().Msgf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Msgf("Listen: %s\n", err)
		}
	}()

	// 5. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("Shutdown signal received, exiting...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Msgf("Server forced to shutdown: %v", err)
	}
	if err := shutdown(ctx); err != nil {
		logger.Warn().Err(err).Msg("Pending completion notifications were dropped")
	}
	logger.Info().Msg("Server shut down gracefully")
}
