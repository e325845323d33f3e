// Package store holds the canonical in-memory snapshot of groups, clients,
// and videos. The snapshot is mutated only through two merge points: bulk
// snapshot application (refresh) and streaming status merges (status poller).
// Every other component reads; convergence with backend truth happens by
// re-fetching, never by local edits.
package store

import (
	"log/slog"
	"sync"
	"time"

	"github.com/vidwall/vidwall-console/api/types/v1alpha1"
)

// Snapshot is one consistent view of the backend state
type Snapshot struct {
	// Groups are all known streaming groups
	Groups []v1alpha1.Group
	// Clients are all registered playback devices
	Clients []v1alpha1.Client
	// Videos are all uploaded source videos
	Videos []v1alpha1.Video
	// Streaming maps group id to the normalized is-streaming flag
	Streaming map[string]bool
	// FetchedAt is when the bulk data was last applied
	FetchedAt time.Time
	// StatusAt is when streaming statuses were last merged
	StatusAt time.Time
}

// Store owns the current snapshot and fans changes out to subscribers
type Store struct {
	mu     sync.RWMutex
	snap   Snapshot
	subs   map[uint64]chan Snapshot
	nextID uint64
	logger *slog.Logger
}

// New creates an empty store
func New(logger *slog.Logger) *Store {
	return &Store{
		snap:   Snapshot{Streaming: make(map[string]bool)},
		subs:   make(map[uint64]chan Snapshot),
		logger: logger.With("component", "store"),
	}
}

// Snapshot returns a copy of the current snapshot. The copy is safe to hold
// across later merges.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.clone()
}

// GroupByID looks up a group in the current snapshot
func (s *Store) GroupByID(id string) (v1alpha1.Group, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, g := range s.snap.Groups {
		if g.ID == id {
			return g, true
		}
	}
	return v1alpha1.Group{}, false
}

// StreamingActive reports the normalized streaming flag for a group
func (s *Store) StreamingActive(groupID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Streaming[groupID]
}

// StatusAt returns when streaming statuses were last merged
func (s *Store) StatusAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.StatusAt
}

// ApplySnapshot replaces the bulk data wholesale. A group absent from the
// new data is gone: its streaming entry is pruned so stale groups cannot
// linger in derived views.
func (s *Store) ApplySnapshot(groups []v1alpha1.Group, clients []v1alpha1.Client, videos []v1alpha1.Video) {
	s.mu.Lock()

	known := make(map[string]struct{}, len(groups))
	for _, g := range groups {
		known[g.ID] = struct{}{}
	}
	streaming := make(map[string]bool, len(groups))
	for id, active := range s.snap.Streaming {
		if _, ok := known[id]; ok {
			streaming[id] = active
		}
	}

	s.snap.Groups = groups
	s.snap.Clients = clients
	s.snap.Videos = videos
	s.snap.Streaming = streaming
	s.snap.FetchedAt = time.Now()

	snap := s.snap.clone()
	s.mu.Unlock()

	s.logger.Debug("applied snapshot",
		"groups", len(groups),
		"clients", len(clients),
		"videos", len(videos),
	)
	s.notify(snap)
}

// ApplyStreamingStatus merges normalized per-group streaming flags, last
// write wins per group. Entries for groups the store has never seen are kept
// until the next bulk apply decides whether the group exists.
func (s *Store) ApplyStreamingStatus(statuses map[string]bool) {
	if len(statuses) == 0 {
		return
	}

	s.mu.Lock()
	for id, active := range statuses {
		s.snap.Streaming[id] = active
	}
	s.snap.StatusAt = time.Now()
	snap := s.snap.clone()
	s.mu.Unlock()

	s.notify(snap)
}

// Subscribe registers a consumer for snapshot updates. The returned cancel
// function must be called when the consumer goes away; afterwards the
// channel is closed and no further sends occur.
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan Snapshot, 1)
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// notify delivers the snapshot to every subscriber, replacing any undelivered
// previous snapshot. A slow consumer only ever loses intermediate states.
func (s *Store) notify(snap Snapshot) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}

func (snap Snapshot) clone() Snapshot {
	out := Snapshot{
		Groups:    make([]v1alpha1.Group, len(snap.Groups)),
		Clients:   make([]v1alpha1.Client, len(snap.Clients)),
		Videos:    make([]v1alpha1.Video, len(snap.Videos)),
		Streaming: make(map[string]bool, len(snap.Streaming)),
		FetchedAt: snap.FetchedAt,
		StatusAt:  snap.StatusAt,
	}
	copy(out.Groups, snap.Groups)
	copy(out.Clients, snap.Clients)
	copy(out.Videos, snap.Videos)
	for id, active := range snap.Streaming {
		out.Streaming[id] = active
	}
	return out
}
