package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campuskit/admin-backend/internal/config"
	"github.com/campuskit/admin-backend/internal/database"
	"github.com/campuskit/admin-backend/internal/handler"
	"github.com/campuskit/admin-backend/internal/logger"
	"github.com/campuskit/admin-backend/internal/repository"
	"github.com/campuskit/admin-backend/internal/router"
	"github.com/campuskit/admin-backend/internal/service"
	"github.com/campuskit/admin-backend/internal/session"
	"github.com/campuskit/admin-backend/internal/validator"
	"github.com/campuskit/admin-backend/internal/worker"
	"github.com/rs/zerolog"
)

func main() {
	cfg := config.Load()

	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Campus Admin Backend")

	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	accountRepo := repository.NewUserAccountRepository(pool)
	infoRepo := repository.NewUserInfoRepository(pool)
	opLogRepo := repository.NewOpLogRepository(pool)

	sessionStore := session.NewStore(rdb, cfg.SessionTTL)

	authService := service.NewAuthService(accountRepo, sessionStore, cfg.PasswordSalt, log)
	userService := service.NewUserService(accountRepo, infoRepo, authService, log)
	opLogService := service.NewOpLogService(opLogRepo)

	handlers := &router.Handlers{
		Auth:  handler.NewAuthHandler(authService),
		User:  handler.NewUserHandler(userService),
		OpLog: handler.NewOpLogHandler(opLogService),
	}

	workerCtx, workerCancel := context.WithCancel(context.Background())
	opLogWorker := worker.NewOpLogWorker(opLogRepo, rdb, log)
	go opLogWorker.Start(workerCtx)

	r := router.SetupRouter(authService, handlers, rdb, cfg, log)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the op-log worker and let it drain its queue.
	workerCancel()
	time.Sleep(2 * time.Second)

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
