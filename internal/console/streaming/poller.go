package streaming

import (
	"context"
	"log/slog"
	"time"

	"github.com/vidwall/vidwall-console/api/types/v1alpha1"
	"github.com/vidwall/vidwall-console/internal/console/metrics"
	"github.com/vidwall/vidwall-console/internal/console/store"
)

// Defaults for the status poller's timing knobs
const (
	DefaultPollInterval = 15 * time.Second
	DefaultPollTimeout  = 10 * time.Second
)

// StatusGateway is the slice of the backend gateway the poller needs
type StatusGateway interface {
	GetAllStreamingStatuses(ctx context.Context) (map[string]v1alpha1.RawStreamingStatus, error)
	GetStreamingStatus(ctx context.Context, groupID string) (v1alpha1.RawStreamingStatus, error)
}

// Poller periodically synchronizes per-group streaming status into the
// store, independent of the bulk refresh cycle. Status is best effort: an
// individual group's failure degrades to "not streaming" instead of failing
// the cycle.
type Poller struct {
	gateway StatusGateway
	store   *store.Store
	metrics *metrics.Metrics
	logger  *slog.Logger

	interval time.Duration
	timeout  time.Duration
}

// PollerOption configures a Poller
type PollerOption func(*Poller)

// WithPollInterval overrides the polling interval
func WithPollInterval(d time.Duration) PollerOption {
	return func(p *Poller) { p.interval = d }
}

// WithPollTimeout overrides the per-cycle timeout
func WithPollTimeout(d time.Duration) PollerOption {
	return func(p *Poller) { p.timeout = d }
}

// WithPollMetrics attaches engine metrics
func WithPollMetrics(m *metrics.Metrics) PollerOption {
	return func(p *Poller) { p.metrics = m }
}

// NewPoller creates a status poller feeding the given store
func NewPoller(gateway StatusGateway, st *store.Store, logger *slog.Logger, options ...PollerOption) *Poller {
	p := &Poller{
		gateway:  gateway,
		store:    st,
		logger:   logger.With("component", "statuspoller"),
		interval: DefaultPollInterval,
		timeout:  DefaultPollTimeout,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Run polls until the context is cancelled. One poll is issued immediately
// so a fresh daemon does not wait a full interval for status.
func (p *Poller) Run(ctx context.Context) {
	p.PollOnce(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.PollOnce(ctx)
		}
	}
}

// PollOnce fetches streaming status for all known groups and merges the
// normalized result into the store. The batched call is preferred; on its
// failure each group is fetched individually, with failures recorded as
// "not streaming". No error escapes a poll cycle.
func (p *Poller) PollOnce(ctx context.Context) {
	p.metrics.IncStatusPoll()

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var statuses map[string]bool
	raw, err := p.gateway.GetAllStreamingStatuses(ctx)
	if err != nil {
		p.metrics.IncStatusPollFallback()
		p.logger.Debug("batched status fetch failed, falling back to per-group calls", "error", err)
		statuses = p.pollEachGroup(ctx)
	} else {
		statuses = store.NormalizeStatusMap(raw)
	}

	active := 0
	for _, isStreaming := range statuses {
		if isStreaming {
			active++
		}
	}
	p.metrics.SetActiveGroups(active)

	p.store.ApplyStreamingStatus(statuses)
}

func (p *Poller) pollEachGroup(ctx context.Context) map[string]bool {
	snap := p.store.Snapshot()
	statuses := make(map[string]bool, len(snap.Groups))

	for _, g := range snap.Groups {
		raw, err := p.gateway.GetStreamingStatus(ctx, g.ID)
		if err != nil {
			p.logger.Debug("status fetch failed for group", "groupId", g.ID, "error", err)
			statuses[g.ID] = false
			continue
		}
		statuses[g.ID] = store.NormalizeStatus(raw)
	}
	return statuses
}
