package http

import (
	"context"
	"fmt"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vidtube/internal/config"
	"vidtube/internal/database"
	"vidtube/internal/handler"
	"vidtube/internal/queue"
	"vidtube/internal/redis"
	"vidtube/internal/repository"
	"vidtube/internal/service"
	"vidtube/internal/worker"
)

// Run wires the whole application together and serves HTTP until the process
// receives an interrupt. Any startup failure terminates the process.
func Run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	redisClient, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer redisClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := redisClient.Ping(ctx); err != nil {
		return fmt.Errorf("failed to reach redis: %w", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	watchHistoryRepo := repository.NewWatchHistoryRepository(db)

	// Queue
	publisher := queue.NewPublisher(redisClient.Client)
	consumer := queue.NewConsumer(redisClient.Client)

	// Services
	mediaService, err := service.NewMediaService(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create media service: %w", err)
	}

	authService := service.NewAuthService(userRepo, cfg)
	userService := service.NewUserService(userRepo, subscriptionRepo, watchHistoryRepo, mediaService)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, userRepo)
	likeService := service.NewLikeService(likeRepo, videoRepo, commentRepo, tweetRepo)
	videoService := service.NewVideoService(videoRepo, mediaService, publisher)
	commentService := service.NewCommentService(commentRepo, videoRepo)
	tweetService := service.NewTweetService(tweetRepo, userRepo)
	playlistService := service.NewPlaylistService(playlistRepo, videoRepo, userRepo)
	dashboardService := service.NewDashboardService(videoRepo, subscriptionRepo, likeRepo)

	// Background view workers
	manager := worker.NewManager(consumer, worker.NewHandler(videoRepo, watchHistoryRepo), worker.DefaultManagerConfig())
	if err := manager.Start(ctx); err != nil {
		return fmt.Errorf("failed to start workers: %w", err)
	}
	defer manager.Stop()

	router := NewRouter(RouterConfig{
		UserHandler:         handler.NewUserHandler(userService, authService, mediaService, cfg),
		VideoHandler:        handler.NewVideoHandler(videoService),
		CommentHandler:      handler.NewCommentHandler(commentService),
		TweetHandler:        handler.NewTweetHandler(tweetService),
		LikeHandler:         handler.NewLikeHandler(likeService),
		SubscriptionHandler: handler.NewSubscriptionHandler(subscriptionService),
		PlaylistHandler:     handler.NewPlaylistHandler(playlistService),
		DashboardHandler:    handler.NewDashboardHandler(dashboardService),
		AuthService:         authService,
		UserRepo:            userRepo,
		CORSOrigin:          cfg.CORSOrigin,
	})

	server := &stdhttp.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on :%s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		log.Printf("Received %s, shutting down", sig)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
