// The vwconsoled command implements the Vidwall Console daemon
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

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/vidwall/vidwall-console/internal/console/assignment"
	"github.com/vidwall/vidwall-console/internal/console/assignmentcache"
	redisstore "github.com/vidwall/vidwall-console/internal/console/assignmentcache/redis"
	"github.com/vidwall/vidwall-console/internal/console/assignmentcache/sqlite"
	"github.com/vidwall/vidwall-console/internal/console/client"
	"github.com/vidwall/vidwall-console/internal/console/config"
	"github.com/vidwall/vidwall-console/internal/console/httpapi"
	"github.com/vidwall/vidwall-console/internal/console/metrics"
	"github.com/vidwall/vidwall-console/internal/console/refresh"
	"github.com/vidwall/vidwall-console/internal/console/store"
	"github.com/vidwall/vidwall-console/internal/console/streaming"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// Initialize structured logging with JSON format for easier parsing
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load configuration
	var cfg *config.Config
	var err error

	if *configPath != "" {
		cfg, err = config.LoadFile(*configPath)
		if err != nil {
			logger.Error("failed to load config file", "error", err)
			os.Exit(1)
		}
	} else {
		cfg, err = config.Load()
		if err != nil {
			logger.Error("failed to load configuration", "error", err)
			os.Exit(1)
		}
	}

	// Backend gateway
	gateway, err := client.New(cfg.Backend.BaseURL, client.WithTimeout(cfg.Backend.RequestTimeout))
	if err != nil {
		logger.Error("failed to create backend client", "error", err)
		os.Exit(1)
	}

	// Assignment cache storage
	cacheStore, closeStore, err := setupCacheStore(cfg)
	if err != nil {
		logger.Error("failed to set up assignment cache storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Error("failed to close cache storage", "error", err)
		}
	}()

	// Engine wiring
	m := metrics.New()
	st := store.New(logger)
	cache := assignmentcache.New(cacheStore, logger)

	coordinator := refresh.New(gateway, st, logger,
		refresh.WithMinInterval(cfg.Refresh.MinInterval),
		refresh.WithFetchTimeout(cfg.Refresh.FetchTimeout),
		refresh.WithDebounceWindow(cfg.Refresh.DebounceWindow),
		refresh.WithMetrics(m),
	)
	defer coordinator.Stop()

	manager := assignment.New(gateway, coordinator, m, logger)
	controller := streaming.NewController(gateway, cache, st, coordinator, m, logger)
	poller := streaming.NewPoller(gateway, st, logger,
		streaming.WithPollInterval(cfg.Status.PollInterval),
		streaming.WithPollTimeout(cfg.Status.PollTimeout),
		streaming.WithPollMetrics(m),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// First fetch before serving traffic; a dead backend at boot is
	// tolerated, the poller and later refreshes will converge.
	if _, err := coordinator.Refresh(ctx, true); err != nil {
		logger.Warn("initial refresh failed, continuing", "error", err)
	}
	go poller.Run(ctx)

	// HTTP API
	zlogger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	handler := httpapi.NewHandler(st, gateway, manager, controller, coordinator, cache, zlogger)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	r.Method(http.MethodGet, "/metrics", m.Handler())

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine to allow for graceful shutdown
	go func() {
		logger.Info("starting server",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
			"backend", cfg.Backend.BaseURL,
		)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Set up graceful shutdown on interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	<-shutdown
	logger.Info("shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("server stopped")
}

// setupCacheStore builds the configured assignment cache backend and a
// close function for it.
func setupCacheStore(cfg *config.Config) (assignmentcache.Store, func() error, error) {
	switch cfg.Cache.Driver {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		return redisstore.NewStore(rdb), rdb.Close, nil
	default:
		s, err := sqlite.Open(cfg.Cache.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	}
}
