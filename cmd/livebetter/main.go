package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/livebetter-hq/livebetter/internal/api"
	"github.com/livebetter-hq/livebetter/internal/cache"
	"github.com/livebetter-hq/livebetter/internal/config"
	"github.com/livebetter-hq/livebetter/internal/events"
	"github.com/livebetter-hq/livebetter/internal/llm"
	"github.com/livebetter-hq/livebetter/internal/parser"
	"github.com/livebetter-hq/livebetter/internal/scoring"
	"github.com/livebetter-hq/livebetter/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	db, err := store.NewPostgresStore(ctx, cfg.Database.URL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("connected to database")

	// Cache: redis when reachable, in-memory otherwise
	responseCache := newCache(ctx, cfg, logger)
	defer responseCache.Close()

	// Event bus (optional)
	var eventClient events.Client
	if cfg.Events.URL != "" {
		ec, err := events.NewNATSClient(ctx, cfg.Events.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to event bus, running without events", "error", err)
		} else {
			eventClient = ec
			defer ec.Close()
			logger.Info("connected to event bus")

			// ETL reloads invalidate every cached ranking.
			err := ec.Subscribe(events.SubjectDataRefreshed, func(subject string, data []byte) {
				deleted, err := responseCache.DeletePattern(context.Background(), cache.Namespace+":*")
				if err != nil {
					logger.Error("cache flush after data refresh failed", "error", err)
					return
				}
				logger.Info("cache flushed after data refresh", "deleted", deleted)
			})
			if err != nil {
				logger.Warn("failed to subscribe to data refresh events", "error", err)
			}
		}
	}

	// Preference parser, LLM-backed when a key is configured
	var llmClient llm.Client
	if cfg.LLM.Enabled && cfg.LLM.APIKey != "" {
		llmClient = llm.NewHTTPClient(cfg.LLM.URL, cfg.LLM.APIKey, cfg.LLM.Model)
		logger.Info("llm preference parsing enabled", "model", cfg.LLM.Model)
	}
	prefParser := parser.New(llmClient, logger)

	// Ranking pipeline
	ranker := scoring.NewRanker(db, responseCache, eventClient, cfg.CacheTTL(), logger)

	// API server
	router := api.NewRouter(db, responseCache, ranker, prefParser, cfg.CacheTTL(), cfg.Server.AdminToken, logger)
	apiServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Metrics server
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: api.NewMetricsRouter(),
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}

func newCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) cache.Cache {
	if !cfg.Cache.Enabled {
		logger.Info("response caching disabled via config")
		return cache.Disabled{}
	}
	if cfg.Redis.Enabled {
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err == nil {
			logger.Info("redis cache initialized", "addr", cfg.Redis.Addr)
			return rc
		}
		logger.Warn("redis connection failed, using in-memory cache", "error", err)
	}
	return cache.NewMemoryCache()
}
