// Package assignment executes client-to-group and client-to-screen
// assignment commands against the backend. Mutations for one client are
// strictly serialized: a second command while one is outstanding is rejected
// rather than queued, so commands can never apply out of order. Local state
// is never mutated optimistically; the post-mutation refresh is the only
// path back to consistency.
package assignment

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/vidwall/vidwall-console/internal/console/errors"
	"github.com/vidwall/vidwall-console/internal/console/metrics"
)

// Gateway is the slice of the backend gateway the manager needs
type Gateway interface {
	AssignClientToGroup(ctx context.Context, clientID, groupID string) error
	UnassignClientFromGroup(ctx context.Context, clientID string) error
	AssignClientToScreen(ctx context.Context, clientID, groupID string, screenNumber int) error
	UnassignClientFromScreen(ctx context.Context, clientID string) error
	AutoAssignScreens(ctx context.Context, groupID string) error
	RemoveClient(ctx context.Context, clientID string) error
	RenameClient(ctx context.Context, clientID, displayName string) error
}

// Refresher schedules the post-mutation store refresh
type Refresher interface {
	DebouncedRefresh(ctx context.Context)
}

// Manager serializes per-client assignment mutations
type Manager struct {
	gateway   Gateway
	refresher Refresher
	metrics   *metrics.Metrics
	logger    *slog.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// New creates an assignment manager
func New(gateway Gateway, refresher Refresher, m *metrics.Metrics, logger *slog.Logger) *Manager {
	return &Manager{
		gateway:   gateway,
		refresher: refresher,
		metrics:   m,
		logger:    logger.With("component", "assignment"),
		inFlight:  make(map[string]struct{}),
	}
}

// AssignToGroup assigns a client to a group. An empty groupID removes the
// client from its current group.
func (m *Manager) AssignToGroup(ctx context.Context, clientID, groupID string) error {
	op := "AssignToGroup"
	if groupID == "" {
		op = "UnassignFromGroup"
	}
	return m.run(ctx, op, clientKey(clientID), func(ctx context.Context) error {
		if groupID == "" {
			return m.gateway.UnassignClientFromGroup(ctx, clientID)
		}
		return m.gateway.AssignClientToGroup(ctx, clientID, groupID)
	})
}

// AssignToScreen pins a client to a screen index within a group
func (m *Manager) AssignToScreen(ctx context.Context, clientID, groupID string, screenNumber int) error {
	const op = "AssignToScreen"
	if screenNumber < 0 {
		return errors.NewValidation(op, fmt.Sprintf("screen number %d is negative", screenNumber))
	}
	if groupID == "" {
		return errors.NewValidation(op, "a screen assignment requires a group")
	}
	return m.run(ctx, op, clientKey(clientID), func(ctx context.Context) error {
		return m.gateway.AssignClientToScreen(ctx, clientID, groupID, screenNumber)
	})
}

// UnassignFromScreen releases a client from its screen index. Unassigning an
// already-unassigned client is a no-op backend-side, so repeating the call
// converges on the same state.
func (m *Manager) UnassignFromScreen(ctx context.Context, clientID string) error {
	return m.run(ctx, "UnassignFromScreen", clientKey(clientID), func(ctx context.Context) error {
		return m.gateway.UnassignClientFromScreen(ctx, clientID)
	})
}

// AutoAssignScreens asks the backend to distribute a group's clients across
// its screens in a single round trip; no assignment is computed locally.
func (m *Manager) AutoAssignScreens(ctx context.Context, groupID string) error {
	return m.run(ctx, "AutoAssignScreens", groupKey(groupID), func(ctx context.Context) error {
		return m.gateway.AutoAssignScreens(ctx, groupID)
	})
}

// RemoveClient deletes a client registration
func (m *Manager) RemoveClient(ctx context.Context, clientID string) error {
	return m.run(ctx, "RemoveClient", clientKey(clientID), func(ctx context.Context) error {
		return m.gateway.RemoveClient(ctx, clientID)
	})
}

// RenameClient sets a client's display name
func (m *Manager) RenameClient(ctx context.Context, clientID, displayName string) error {
	return m.run(ctx, "RenameClient", clientKey(clientID), func(ctx context.Context) error {
		return m.gateway.RenameClient(ctx, clientID, displayName)
	})
}

// run wraps one mutation with the in-flight guard and the post-success
// refresh. On failure nothing local changes; retrying is simply issuing the
// same command again.
func (m *Manager) run(ctx context.Context, op, key string, call func(ctx context.Context) error) error {
	if err := m.acquire(op, key); err != nil {
		return err
	}
	defer m.release(key)

	m.metrics.IncAssignmentOp()
	if err := call(ctx); err != nil {
		m.metrics.IncAssignmentOpFailure()
		m.logger.Warn("assignment operation failed", "op", op, "key", key, "error", err)
		return err
	}

	m.refresher.DebouncedRefresh(ctx)
	return nil
}

func (m *Manager) acquire(op, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, busy := m.inFlight[key]; busy {
		return errors.NewValidation(op, fmt.Sprintf("an operation for %s is already in flight", key))
	}
	m.inFlight[key] = struct{}{}
	return nil
}

func (m *Manager) release(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.inFlight, key)
}

func clientKey(clientID string) string { return "client/" + clientID }
func groupKey(groupID string) string   { return "group/" + groupID }
