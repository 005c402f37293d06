package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/storekeep/adminapi/internal/api"
	"github.com/storekeep/adminapi/internal/catalog"
	"github.com/storekeep/adminapi/internal/config"
	"github.com/storekeep/adminapi/internal/sale"
	"github.com/storekeep/adminapi/internal/session"
	"github.com/storekeep/adminapi/internal/upstream"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	client := upstream.NewClient(cfg.Upstream, logger)

	// Sessions and the catalog cache live in redis when an address is
	// configured; otherwise both fall back to process-local stores, which is
	// fine for a single replica.
	var (
		sessions     session.Store
		catalogCache catalog.Cache
	)
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Error("Failed to connect to redis", zap.Error(err))
			os.Exit(1)
		}
		defer redisClient.Close()

		sessions = session.NewRedisStore(redisClient)
		catalogCache = catalog.NewRedisCache(redisClient)
		logger.Info("Using redis-backed sessions and catalog cache",
			zap.String("addr", cfg.Redis.Addr))
	} else {
		sessions = session.NewMemoryStore()
		catalogCache = catalog.NoopCache{}
		logger.Warn("REDIS_ADDR not set, sessions will not survive restarts")
	}

	deps := api.Dependencies{
		Config:   cfg,
		Logger:   logger,
		Upstream: client,
		Catalog:  catalog.NewService(client, catalogCache, cfg.Catalog.CacheTTL, logger),
		Sessions: sessions,
		Drafts:   sale.NewManager(client, cfg.Session.TTL, logger),
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewRouter(deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		logger.Info("Starting server",
			zap.String("port", cfg.Port),
			zap.String("environment", cfg.Environment),
			zap.String("upstream", cfg.Upstream.BaseURL),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Environment == "production" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
