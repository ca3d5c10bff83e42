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

	"github.com/lalith-99/vidstream/internal/api"
	"github.com/lalith-99/vidstream/internal/config"
	"github.com/lalith-99/vidstream/internal/db"
	"github.com/lalith-99/vidstream/internal/events"
	"github.com/lalith-99/vidstream/internal/observ"
	"github.com/lalith-99/vidstream/internal/realtime"
	"github.com/lalith-99/vidstream/internal/repository"
	"github.com/lalith-99/vidstream/internal/repository/postgres"
	"github.com/lalith-99/vidstream/internal/service"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := observ.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	poolOpts := db.DefaultPoolOptions()
	poolOpts.MaxConns = int32(cfg.DBMaxConns)
	poolOpts.MinConns = int32(cfg.DBMinConns)
	database, err := db.New(ctx, cfg.DatabaseURL, poolOpts, logger)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer database.Close()

	if err := db.Migrate(ctx, database.Pool(), logger); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to redis", zap.String("addr", redisOpts.Addr))

	// Assigning to the interfaces keeps the stores honest at compile time.
	pool := database.Pool()
	var (
		userRepo      repository.UserRepository      = postgres.NewUserStore(pool)
		videoRepo     repository.VideoRepository     = postgres.NewVideoStore(pool)
		commentRepo   repository.CommentRepository   = postgres.NewCommentStore(pool)
		tweetRepo     repository.TweetRepository     = postgres.NewTweetStore(pool)
		playlistRepo  repository.PlaylistRepository  = postgres.NewPlaylistStore(pool)
		dashboardRepo repository.DashboardRepository = postgres.NewDashboardStore(pool)
	)

	publisher := events.NewRedisPublisher(rdb, cfg.EventsChannel, logger)
	paging := service.Paging{DefaultLimit: cfg.DefaultPageLimit, MaxLimit: cfg.MaxPageLimit}

	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	commentSvc := service.NewCommentService(commentRepo, videoRepo, publisher)
	tweetSvc := service.NewTweetService(tweetRepo, userRepo, publisher)
	playlistSvc := service.NewPlaylistService(playlistRepo, videoRepo, userRepo, publisher)
	dashboardSvc := service.NewDashboardService(dashboardRepo, videoRepo)

	hub := realtime.NewHub(logger)
	go hub.Run(ctx)
	go func() {
		if err := realtime.Relay(ctx, rdb, cfg.EventsChannel, hub, logger); err != nil {
			logger.Error("event relay stopped", zap.Error(err))
		}
	}()

	router := api.NewRouter(api.Handlers{
		Health:    api.NewHealthHandler(database, logger),
		Auth:      api.NewAuthHandler(authSvc, logger),
		User:      api.NewUserHandler(authSvc, logger),
		Comment:   api.NewCommentHandler(commentSvc, paging, logger),
		Tweet:     api.NewTweetHandler(tweetSvc, paging, logger),
		Playlist:  api.NewPlaylistHandler(playlistSvc, paging, logger),
		Dashboard: api.NewDashboardHandler(dashboardSvc, paging, logger),
		Live:      api.NewLiveHandler(hub),
	}, cfg.JWTSecret, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting VidStream",
			zap.String("port", cfg.Port),
			zap.String("env", cfg.Env),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
