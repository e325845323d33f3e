// Package refresh coordinates bulk data fetches from the backend. It
// enforces a minimum polling interval, collapses concurrent callers onto a
// single in-flight fetch, and bounds every fetch with a timeout. A debounced
// variant absorbs the refresh burst that follows a run of operator actions.
package refresh

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/vidwall/vidwall-console/api/types/v1alpha1"
	"github.com/vidwall/vidwall-console/internal/console/metrics"
	"github.com/vidwall/vidwall-console/internal/console/store"
)

// Defaults for the coordinator's timing knobs
const (
	DefaultMinInterval    = 2 * time.Minute
	DefaultFetchTimeout   = 15 * time.Second
	DefaultDebounceWindow = 10 * time.Second
)

// Fetcher is the slice of the backend gateway the coordinator needs
type Fetcher interface {
	ListGroups(ctx context.Context) ([]v1alpha1.Group, error)
	ListClients(ctx context.Context) ([]v1alpha1.Client, error)
	ListVideos(ctx context.Context) ([]v1alpha1.Video, error)
}

// Coordinator serializes and rate-limits bulk refreshes into the store
type Coordinator struct {
	fetcher Fetcher
	store   *store.Store
	metrics *metrics.Metrics
	logger  *slog.Logger

	minInterval    time.Duration
	fetchTimeout   time.Duration
	debounceWindow time.Duration

	flight singleflight.Group

	mu          sync.Mutex
	lastSuccess time.Time
	debounce    *time.Timer
	stopped     bool
}

// Option configures a Coordinator
type Option func(*Coordinator)

// WithMinInterval overrides the minimum interval between unforced refreshes
func WithMinInterval(d time.Duration) Option {
	return func(c *Coordinator) { c.minInterval = d }
}

// WithFetchTimeout overrides the bulk fetch timeout
func WithFetchTimeout(d time.Duration) Option {
	return func(c *Coordinator) { c.fetchTimeout = d }
}

// WithDebounceWindow overrides the post-mutation debounce window
func WithDebounceWindow(d time.Duration) Option {
	return func(c *Coordinator) { c.debounceWindow = d }
}

// WithMetrics attaches engine metrics
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Coordinator) { c.metrics = m }
}

// New creates a refresh coordinator feeding the given store
func New(fetcher Fetcher, st *store.Store, logger *slog.Logger, options ...Option) *Coordinator {
	c := &Coordinator{
		fetcher:        fetcher,
		store:          st,
		logger:         logger.With("component", "refresh"),
		minInterval:    DefaultMinInterval,
		fetchTimeout:   DefaultFetchTimeout,
		debounceWindow: DefaultDebounceWindow,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Refresh fetches groups, clients, and videos and applies them to the store.
// With force false the call is a no-op returning the current snapshot when a
// successful refresh happened within the minimum interval; a caller arriving
// while a fetch is in flight shares that fetch's result instead of issuing a
// duplicate request. On failure the previous snapshot is retained and the
// error is returned.
func (c *Coordinator) Refresh(ctx context.Context, force bool) (store.Snapshot, error) {
	if !force {
		c.mu.Lock()
		fresh := !c.lastSuccess.IsZero() && time.Since(c.lastSuccess) < c.minInterval
		c.mu.Unlock()
		if fresh {
			return c.store.Snapshot(), nil
		}
	}

	_, err, _ := c.flight.Do("bulk", func() (interface{}, error) {
		return nil, c.fetch(ctx)
	})
	return c.store.Snapshot(), err
}

// DebouncedRefresh schedules a forced refresh after the debounce window.
// Calls arriving while one is already scheduled are absorbed, so a burst of
// operator actions converges in a single fetch.
func (c *Coordinator) DebouncedRefresh(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped || c.debounce != nil {
		return
	}
	c.debounce = time.AfterFunc(c.debounceWindow, func() {
		c.mu.Lock()
		c.debounce = nil
		stopped := c.stopped
		c.mu.Unlock()
		if stopped {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), c.fetchTimeout)
		defer cancel()
		if _, err := c.Refresh(ctx, true); err != nil {
			c.logger.Warn("debounced refresh failed", "error", err)
		}
	})
}

// Stop cancels any pending debounced refresh. The coordinator schedules no
// further work afterwards; in-flight fetches finish on their own.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopped = true
	if c.debounce != nil {
		c.debounce.Stop()
		c.debounce = nil
	}
}

// fetch issues the three list calls in parallel under one timeout and applies
// the result as a new snapshot.
func (c *Coordinator) fetch(ctx context.Context) error {
	c.metrics.IncRefresh()

	ctx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	var (
		groups  []v1alpha1.Group
		clients []v1alpha1.Client
		videos  []v1alpha1.Video
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		groups, err = c.fetcher.ListGroups(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		clients, err = c.fetcher.ListClients(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		videos, err = c.fetcher.ListVideos(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		c.metrics.IncRefreshFailure()
		c.logger.Error("bulk refresh failed", "error", err)
		return err
	}

	c.store.ApplySnapshot(groups, clients, videos)

	c.mu.Lock()
	c.lastSuccess = time.Now()
	c.mu.Unlock()
	return nil
}
