package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"actionmate/config"
	"actionmate/database"
	"actionmate/handlers"
	"actionmate/lifecycle"
	"actionmate/logger"
	"actionmate/membership"
	"actionmate/middleware"
	"actionmate/repository"
	"actionmate/routes"
	"actionmate/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	log.Info("starting actionmate backend", zap.String("store", cfg.Store))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var repo repository.MeetingRepository
	switch cfg.Store {
	case "mongo":
		mongo, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase, 3, log)
		if err != nil {
			return fmt.Errorf("connect mongo: %w", err)
		}
		defer mongo.Disconnect() //nolint:errcheck

		mongoRepo := repository.NewMongoRepository(mongo.DB)
		if err := mongoRepo.EnsureIndexes(ctx); err != nil {
			return err
		}
		repo = mongoRepo
	default:
		log.Warn("using in-memory meeting store; data is lost on restart")
		repo = repository.NewMemoryRepository()
	}

	engine := membership.NewEngine(repo, log)
	meetings := services.NewMeetingService(repo, engine, log, services.WithHotWindow(cfg.HotWindowMinutes))

	sweeper := lifecycle.NewSweeper(repo, cfg.LifecycleInterval, log)
	go sweeper.Run(ctx)

	if cfg.Release() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := routes.SetupRouter(handlers.New(meetings, log), routes.Options{
		JWTSecret:   []byte(cfg.JWTSecret),
		CORSOrigins: cfg.CORSOrigins,
		RateLimiter: middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute),
		Logger:      log,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	log.Info("server stopped gracefully")
	return nil
}
