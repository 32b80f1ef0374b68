package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"folio/internal/api"
	"folio/internal/api/middleware"
	"folio/internal/config"
	"folio/internal/database"
	"folio/internal/editor"
	"folio/internal/email"
	"folio/internal/feed"
	"folio/internal/storage"
	"folio/internal/store"
	"folio/internal/tasks"
	"folio/internal/view"
)

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	log.Printf("api bootstrapped with db host=%s port=%d db=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)

	db, err := database.InitDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	log.Printf("database connection ready")

	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}
	log.Printf("database migrated")

	redisAddr := cfg.Redis.Addr()
	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error("close redis client failed", slog.Any("error", err))
		}
	}()
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("ping redis: %v", err)
	}

	var repo store.Repository = store.NewGormRepository(db)
	if cfg.Cache.Enabled {
		repo = store.NewCachedRepository(repo, redisClient, cfg.Cache.TTL, logger)
		logger.Info("document cache enabled", slog.Duration("ttl", cfg.Cache.TTL))
	}

	storageClient, err := storage.NewClient(cfg.MinIO)
	if err != nil {
		log.Fatalf("init storage client: %v", err)
	}
	log.Printf("storage client ready, bucket=%s", cfg.MinIO.Bucket)

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	defer asynqClient.Close()
	cleanupQueue := tasks.NewImageCleanupQueue(asynqClient, middleware.CorrelationIDFromContext)

	feedClient, err := feed.NewClient(cfg.Feed, nil, logger)
	if err != nil {
		log.Fatalf("init feed client: %v", err)
	}

	sender := email.NewSender(cfg.Email, nil)
	if !sender.Enabled() {
		logger.Warn("email sender is not configured, contact messages will fail")
	}

	presenter := view.NewPresenter(repo, feedClient, logger).WithDefaultShowCount(cfg.API.DefaultBlogShowCount)

	router := api.NewRouter(logger)
	api.RegisterRoutes(router, api.Dependencies{
		Repo:                 repo,
		Presenter:            presenter,
		Projects:             editor.NewProjectEditor(repo, storageClient, cleanupQueue, logger),
		Sender:               sender,
		ContactLimiter:       api.NewRateLimiter(redisClient, "contact", cfg.API.ContactRatePerHour, time.Hour),
		ClamdAddr:            cfg.API.ClamdAddr,
		MaxUploadBytes:       cfg.API.MaxUploadBytes,
		DefaultBlogShowCount: cfg.API.DefaultBlogShowCount,
		SearchDelay:          time.Duration(cfg.API.SearchDebounceMillis) * time.Millisecond,
		AllowedOrigins:       cfg.API.AllowedOrigins,
	})

	address := fmt.Sprintf(":%d", cfg.API.Port)
	log.Printf("api listening on %s", address)

	if err := router.Run(address); err != nil {
		log.Fatalf("failed to start api server: %v", err)
	}
}
