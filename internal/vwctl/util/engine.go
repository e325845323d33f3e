package util

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vidwall/vidwall-console/internal/console/assignmentcache"
	"github.com/vidwall/vidwall-console/internal/console/assignmentcache/sqlite"
	"github.com/vidwall/vidwall-console/internal/console/client"
	"github.com/vidwall/vidwall-console/internal/console/refresh"
	"github.com/vidwall/vidwall-console/internal/console/store"
	"github.com/vidwall/vidwall-console/internal/console/streaming"
	"github.com/vidwall/vidwall-console/internal/vwctl/config"
)

// Engine is a one-shot console engine for CLI streaming commands. It
// carries enough of the daemon's wiring to run the streaming controller:
// a freshly fetched store, the selection cache, and the poller used for
// status queries.
type Engine struct {
	Client     *client.Client
	Store      *store.Store
	Cache      *assignmentcache.Cache
	Controller *streaming.Controller
	Poller     *streaming.Poller

	coordinator *refresh.Coordinator
	cacheStore  *sqlite.Store
}

// BuildEngine creates the engine and performs the initial data fetch so
// streaming preconditions can be checked against current backend state.
func BuildEngine(ctx context.Context) (*Engine, error) {
	c, err := GetClient()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load("")
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	st := store.New(logger)
	coordinator := refresh.New(c, st, logger)
	if _, err := coordinator.Refresh(ctx, true); err != nil {
		return nil, err
	}

	// Streaming preconditions need current status, not just the bulk data.
	poller := streaming.NewPoller(c, st, logger)
	poller.PollOnce(ctx)

	cachePath := cfg.CachePath
	if cachePath == "" {
		cachePath = config.DefaultCachePath()
	}
	if err := os.MkdirAll(filepath.Dir(cachePath), 0o755); err != nil {
		return nil, err
	}
	cacheStore, err := sqlite.Open(cachePath)
	if err != nil {
		return nil, err
	}

	cache := assignmentcache.New(cacheStore, logger)
	controller := streaming.NewController(c, cache, st, coordinator, nil, logger)

	return &Engine{
		Client:      c,
		Store:       st,
		Cache:       cache,
		Controller:  controller,
		Poller:      poller,
		coordinator: coordinator,
		cacheStore:  cacheStore,
	}, nil
}

// Close cancels pending refreshes and releases the engine's resources.
func (e *Engine) Close() error {
	e.coordinator.Stop()
	return e.cacheStore.Close()
}
