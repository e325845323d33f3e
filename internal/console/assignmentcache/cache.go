// Package assignmentcache persists per-group screen-to-video assignment
// selections so they survive console restarts. Records are schema versioned;
// a record that no longer matches the group's shape is discarded rather than
// returned partially filled.
package assignmentcache

import (
	"context"
	"errors"
	"log/slog"

	"github.com/vidwall/vidwall-console/api/types/v1alpha1"
)

// SchemaVersion is bumped whenever the record layout changes. Records with a
// different version are discarded on load.
const SchemaVersion = 1

// ErrNotFound is returned by stores when no record exists for a group
var ErrNotFound = errors.New("assignment record not found")

// Record is the durable per-group assignment selection
type Record struct {
	// Version is the schema version the record was written with
	Version int `json:"version"`
	// GroupID is the owning group
	GroupID string `json:"group_id"`
	// Assignments holds one entry per screen index, in index order
	Assignments []v1alpha1.VideoAssignment `json:"assignments"`
	// SelectedSplitFile is the single video chosen for split mode
	SelectedSplitFile string `json:"selected_split_file"`
}

// Store is the durable backing for assignment records
type Store interface {
	// Get retrieves the record for a group, or ErrNotFound
	Get(ctx context.Context, groupID string) (*Record, error)

	// Put durably writes the record for a group
	Put(ctx context.Context, groupID string, record *Record) error

	// Delete removes the record for a group; missing records are not an error
	Delete(ctx context.Context, groupID string) error
}

// Cache validates records against the group's current screen count on the
// way in and out of a Store
type Cache struct {
	store  Store
	logger *slog.Logger
}

// New creates an assignment cache over the given store
func New(store Store, logger *slog.Logger) *Cache {
	return &Cache{
		store:  store,
		logger: logger.With("component", "assignmentcache"),
	}
}

// DefaultAssignments returns an all-unset assignment list for a screen count
func DefaultAssignments(screenCount int) []v1alpha1.VideoAssignment {
	assignments := make([]v1alpha1.VideoAssignment, screenCount)
	for i := range assignments {
		assignments[i] = v1alpha1.VideoAssignment{Screen: i}
	}
	return assignments
}

// Load returns the stored assignments and split-file selection for a group.
// A missing or invalid record yields the all-unset default; only store I/O
// failures are reported as errors.
func (c *Cache) Load(ctx context.Context, groupID string, screenCount int) ([]v1alpha1.VideoAssignment, string, error) {
	record, err := c.store.Get(ctx, groupID)
	if errors.Is(err, ErrNotFound) {
		return DefaultAssignments(screenCount), "", nil
	}
	if err != nil {
		return DefaultAssignments(screenCount), "", err
	}

	if !c.valid(record, screenCount) {
		c.logger.Warn("discarding stale assignment record",
			"groupId", groupID,
			"screenCount", screenCount,
			"recordVersion", record.Version,
			"recordLen", len(record.Assignments),
		)
		return DefaultAssignments(screenCount), "", nil
	}

	assignments := make([]v1alpha1.VideoAssignment, len(record.Assignments))
	copy(assignments, record.Assignments)
	return assignments, record.SelectedSplitFile, nil
}

// Save durably writes the assignments and split-file selection for a group.
// Screen indexes are normalized to entry positions before writing.
func (c *Cache) Save(ctx context.Context, groupID string, assignments []v1alpha1.VideoAssignment, selectedSplitFile string) error {
	normalized := make([]v1alpha1.VideoAssignment, len(assignments))
	for i, a := range assignments {
		normalized[i] = v1alpha1.VideoAssignment{Screen: i, File: a.File}
	}

	return c.store.Put(ctx, groupID, &Record{
		Version:           SchemaVersion,
		GroupID:           groupID,
		Assignments:       normalized,
		SelectedSplitFile: selectedSplitFile,
	})
}

// Invalidate removes the stored record for a group, typically after group
// deletion.
func (c *Cache) Invalidate(ctx context.Context, groupID string) error {
	return c.store.Delete(ctx, groupID)
}

// valid checks that a record matches the current schema and group shape:
// right version, one entry per screen, every entry's index at its position.
func (c *Cache) valid(record *Record, screenCount int) bool {
	if record.Version != SchemaVersion {
		return false
	}
	if len(record.Assignments) != screenCount {
		return false
	}
	for i, a := range record.Assignments {
		if a.Screen != i {
			return false
		}
	}
	return true
}
