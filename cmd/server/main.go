// Command server runs the video platform HTTP API.
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

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/streamhub/video-platform-go/internal/config"
	"github.com/streamhub/video-platform-go/internal/db"
	"github.com/streamhub/video-platform-go/internal/db/repository"
	"github.com/streamhub/video-platform-go/internal/handler"
	"github.com/streamhub/video-platform-go/internal/media"
	"github.com/streamhub/video-platform-go/internal/service"
	"github.com/streamhub/video-platform-go/internal/validation"
	"github.com/streamhub/video-platform-go/pkg/logger"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg); err != nil {
		logger.Log.Fatal("Server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	pool, err := db.NewPool(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	logger.Log.Info("Database connection established",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.Name),
	)

	store, err := media.NewStore(&cfg.Media)
	if err != nil {
		return fmt.Errorf("initialize media store: %w", err)
	}
	if err := store.EnsureBucket(ctx); err != nil {
		return fmt.Errorf("ensure media bucket: %w", err)
	}

	// The event publisher is optional: without a broker host the platform
	// runs without domain events.
	var events service.DomainEventPublisher
	var publisher *service.EventPublisher
	if cfg.RabbitMQ.Host != "" {
		publisher, err = service.NewEventPublisher(&cfg.RabbitMQ)
		if err != nil {
			logger.Log.Warn("Event publisher unavailable, continuing without domain events",
				zap.Error(err),
			)
			publisher = nil
		} else {
			defer func() { _ = publisher.Close() }()
			events = publisher
		}
	}

	videoRepo := repository.NewVideoRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)
	tweetRepo := repository.NewTweetRepository(pool)
	reactionRepo := repository.NewReactionRepository(pool)
	subscriptionRepo := repository.NewSubscriptionRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	playlistRepo := repository.NewPlaylistRepository(pool)
	statsRepo := repository.NewStatsRepository(pool)

	validator := validation.New(cfg.Media.MaxUploadSize)

	videoSvc := service.NewVideoService(videoRepo, commentRepo, store, validator, media.ProbeDuration, events)
	commentSvc := service.NewCommentService(commentRepo, videoRepo, validator)
	tweetSvc := service.NewTweetService(tweetRepo, validator, store)
	reactionSvc := service.NewReactionService(reactionRepo, events)
	subscriptionSvc := service.NewSubscriptionService(subscriptionRepo, userRepo, events)
	playlistSvc := service.NewPlaylistService(playlistRepo, videoRepo, validator)
	dashboardSvc := service.NewDashboardService(statsRepo)
	userSvc := service.NewUserService(userRepo, store)

	handlers := &handler.Handlers{
		Videos:        handler.NewVideoHandler(videoSvc, validator),
		Comments:      handler.NewCommentHandler(commentSvc),
		Tweets:        handler.NewTweetHandler(tweetSvc, validator),
		Reactions:     handler.NewReactionHandler(reactionSvc, videoSvc, commentSvc, tweetSvc),
		Subscriptions: handler.NewSubscriptionHandler(subscriptionSvc),
		Playlists:     handler.NewPlaylistHandler(playlistSvc),
		Dashboard:     handler.NewDashboardHandler(dashboardSvc),
		Users:         handler.NewUserHandler(userSvc, validator),
		Health:        handler.NewHealthHandler(pool, publisher),
	}

	gin.SetMode(gin.ReleaseMode)
	router := handler.NewRouter(handlers, cfg.Auth.JWTSecret)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Log.Info("Shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}

	logger.Log.Info("Server stopped")
	return nil
}
