// Package streaming drives the per-group streaming state machine and the
// background status poller. Operator-driven transitions are applied
// optimistically and reconciled against polled backend truth: once a poll
// lands after a transition, the polled value wins.
package streaming

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/vidwall/vidwall-console/api/types/v1alpha1"
	"github.com/vidwall/vidwall-console/internal/console/assignmentcache"
	"github.com/vidwall/vidwall-console/internal/console/errors"
	"github.com/vidwall/vidwall-console/internal/console/metrics"
	"github.com/vidwall/vidwall-console/internal/console/store"
)

// State represents a group's streaming lifecycle state as the engine sees it
type State string

const (
	// StateInactive indicates the group is not streaming
	StateInactive State = "inactive"
	// StateStarting indicates a start operation is in flight
	StateStarting State = "starting"
	// StateActive indicates the group is streaming
	StateActive State = "active"
	// StateStopping indicates a stop operation is in flight
	StateStopping State = "stopping"
)

// Gateway is the slice of the backend gateway the controller needs
type Gateway interface {
	StartMultiVideo(ctx context.Context, groupID string, req v1alpha1.StartMultiVideoRequest) error
	StartSingleVideoSplit(ctx context.Context, groupID string, req v1alpha1.StartSingleVideoSplitRequest) error
	StopStreaming(ctx context.Context, groupID string) error
}

// Refresher schedules the post-mutation store refresh
type Refresher interface {
	DebouncedRefresh(ctx context.Context)
}

// overlayEntry is a locally-known state that temporarily shadows polled
// truth: transitional states while an operation is in flight, and optimistic
// results until a newer poll lands.
type overlayEntry struct {
	state State
	at    time.Time
}

// Controller validates mode-specific preconditions and drives start/stop
// operations per group
type Controller struct {
	gateway   Gateway
	cache     *assignmentcache.Cache
	store     *store.Store
	refresher Refresher
	metrics   *metrics.Metrics
	logger    *slog.Logger

	mu      sync.Mutex
	overlay map[string]overlayEntry
}

// NewController creates a streaming operation controller
func NewController(gateway Gateway, cache *assignmentcache.Cache, st *store.Store, refresher Refresher, m *metrics.Metrics, logger *slog.Logger) *Controller {
	return &Controller{
		gateway:   gateway,
		cache:     cache,
		store:     st,
		refresher: refresher,
		metrics:   m,
		logger:    logger.With("component", "streaming"),
		overlay:   make(map[string]overlayEntry),
	}
}

// State returns the group's streaming state, preferring an in-flight or
// optimistic local transition over polled truth until a newer poll lands.
func (c *Controller) State(groupID string) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked(groupID)
}

func (c *Controller) stateLocked(groupID string) State {
	if e, ok := c.overlay[groupID]; ok {
		if e.state == StateStarting || e.state == StateStopping {
			return e.state
		}
		if e.at.After(c.store.StatusAt()) {
			return e.state
		}
		// A poll landed after the optimistic transition; it wins.
		delete(c.overlay, groupID)
	}
	if c.store.StreamingActive(groupID) {
		return StateActive
	}
	return StateInactive
}

// StartMultiVideo starts streaming with one video per screen. Preconditions:
// the group exists and is configured for multi-video mode, its container is
// running, no operation is in flight, and every screen index carries a
// non-empty assignment. On failure the group returns to Inactive and the
// error is propagated.
func (c *Controller) StartMultiVideo(ctx context.Context, groupID string) error {
	const op = "StartMultiVideo"

	group, err := c.startableGroup(op, groupID, v1alpha1.StreamingModeMultiVideo)
	if err != nil {
		return err
	}

	assignments, _, err := c.cache.Load(ctx, groupID, group.ScreenCount)
	if err != nil {
		return err
	}
	for _, a := range assignments {
		if a.File == "" {
			return errors.NewValidation(op,
				fmt.Sprintf("screen %d of group %s has no video assigned", a.Screen, groupID))
		}
	}

	revert, err := c.begin(op, groupID, StateStarting, StateInactive)
	if err != nil {
		return err
	}

	c.metrics.IncStreamingOp()
	if err := c.gateway.StartMultiVideo(ctx, groupID, v1alpha1.StartMultiVideoRequest{
		VideoFiles:  assignments,
		ScreenCount: group.ScreenCount,
		Orientation: group.Orientation,
	}); err != nil {
		revert()
		c.logger.Warn("multi-video start failed", "groupId", groupID, "error", err)
		return err
	}

	c.settle(groupID, StateActive)
	c.refresher.DebouncedRefresh(ctx)
	return nil
}

// StartSingleVideoSplit starts streaming one video cropped across the
// group's screens. The backend computes crop regions; looping is always
// enabled for split mode.
func (c *Controller) StartSingleVideoSplit(ctx context.Context, groupID string) error {
	const op = "StartSingleVideoSplit"

	group, err := c.startableGroup(op, groupID, v1alpha1.StreamingModeSingleVideoSplit)
	if err != nil {
		return err
	}

	_, splitFile, err := c.cache.Load(ctx, groupID, group.ScreenCount)
	if err != nil {
		return err
	}
	if splitFile == "" {
		return errors.NewValidation(op,
			fmt.Sprintf("group %s has no video selected for split mode", groupID))
	}

	revert, err := c.begin(op, groupID, StateStarting, StateInactive)
	if err != nil {
		return err
	}

	c.metrics.IncStreamingOp()
	if err := c.gateway.StartSingleVideoSplit(ctx, groupID, v1alpha1.StartSingleVideoSplitRequest{
		VideoFile:     splitFile,
		ScreenCount:   group.ScreenCount,
		Orientation:   group.Orientation,
		EnableLooping: true,
	}); err != nil {
		revert()
		c.logger.Warn("single-video-split start failed", "groupId", groupID, "error", err)
		return err
	}

	c.settle(groupID, StateActive)
	c.refresher.DebouncedRefresh(ctx)
	return nil
}

// Stop stops streaming for a group regardless of which mode was started. On
// failure the group remains Active and the error is propagated.
func (c *Controller) Stop(ctx context.Context, groupID string) error {
	const op = "StopStreaming"

	revert, err := c.begin(op, groupID, StateStopping, StateActive)
	if err != nil {
		return err
	}

	c.metrics.IncStreamingOp()
	if err := c.gateway.StopStreaming(ctx, groupID); err != nil {
		revert()
		c.logger.Warn("stop failed", "groupId", groupID, "error", err)
		return err
	}

	c.settle(groupID, StateInactive)
	c.refresher.DebouncedRefresh(ctx)
	return nil
}

// startableGroup checks the preconditions common to both start variants.
// The mode check doubles as the guard that keeps a group's configured
// streaming mode effectively immutable: a start call in the other mode never
// passes validation.
func (c *Controller) startableGroup(op, groupID string, mode v1alpha1.StreamingMode) (v1alpha1.Group, error) {
	group, ok := c.store.GroupByID(groupID)
	if !ok {
		return v1alpha1.Group{}, errors.NewValidation(op, fmt.Sprintf("unknown group %s", groupID))
	}
	if group.StreamingMode != mode {
		return v1alpha1.Group{}, errors.NewValidation(op,
			fmt.Sprintf("group %s is configured for %s mode", groupID, group.StreamingMode))
	}
	if !group.DockerRunning {
		return v1alpha1.Group{}, errors.NewValidation(op,
			fmt.Sprintf("encoder container for group %s is not running", groupID))
	}
	return group, nil
}

// begin moves the group into a transitional state after checking that no
// operation is in flight and that the group is in the required stable state.
// The returned revert restores the exact prior local state for the failure
// path.
func (c *Controller) begin(op, groupID string, transitional, required State) (func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current := c.stateLocked(groupID)
	if current == StateStarting || current == StateStopping {
		return nil, errors.NewValidation(op,
			fmt.Sprintf("an operation for group %s is already in flight", groupID))
	}
	if current != required {
		verb := "is not streaming"
		if required == StateInactive {
			verb = "is already streaming"
		}
		return nil, errors.NewValidation(op, fmt.Sprintf("group %s %s", groupID, verb))
	}

	prior, hadPrior := c.overlay[groupID]
	c.overlay[groupID] = overlayEntry{state: transitional, at: time.Now()}

	revert := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if hadPrior {
			c.overlay[groupID] = prior
		} else {
			delete(c.overlay, groupID)
		}
	}
	return revert, nil
}

// settle records the optimistic post-operation state. It is overwritten by
// the next successful status poll.
func (c *Controller) settle(groupID string, state State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.overlay[groupID] = overlayEntry{state: state, at: time.Now()}
}
