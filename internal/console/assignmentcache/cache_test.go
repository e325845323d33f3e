package assignmentcache

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidwall/vidwall-console/api/types/v1alpha1"
)

type memStore struct {
	records map[string]*Record
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string]*Record)}
}

func (m *memStore) Get(_ context.Context, groupID string) (*Record, error) {
	record, ok := m.records[groupID]
	if !ok {
		return nil, ErrNotFound
	}
	return record, nil
}

func (m *memStore) Put(_ context.Context, groupID string, record *Record) error {
	m.records[groupID] = record
	return nil
}

func (m *memStore) Delete(_ context.Context, groupID string) error {
	delete(m.records, groupID)
	return nil
}

func newTestCache() (*Cache, *memStore) {
	store := newMemStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(store, logger), store
}

func TestLoadMissingRecordReturnsDefaults(t *testing.T) {
	cache, _ := newTestCache()

	assignments, splitFile, err := cache.Load(context.Background(), "g1", 3)
	require.NoError(t, err)
	assert.Empty(t, splitFile)
	require.Len(t, assignments, 3)
	for i, a := range assignments {
		assert.Equal(t, i, a.Screen)
		assert.Empty(t, a.File)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cache, _ := newTestCache()
	ctx := context.Background()

	saved := []v1alpha1.VideoAssignment{
		{Screen: 0, File: "a.mp4"},
		{Screen: 1, File: "b.mp4"},
	}
	require.NoError(t, cache.Save(ctx, "g1", saved, "split.mp4"))

	assignments, splitFile, err := cache.Load(ctx, "g1", 2)
	require.NoError(t, err)
	assert.Equal(t, saved, assignments)
	assert.Equal(t, "split.mp4", splitFile)
}

func TestLoadDiscardsRecordOnScreenCountMismatch(t *testing.T) {
	cache, _ := newTestCache()
	ctx := context.Background()

	require.NoError(t, cache.Save(ctx, "g1", []v1alpha1.VideoAssignment{
		{Screen: 0, File: "a.mp4"},
		{Screen: 1, File: "b.mp4"},
	}, "split.mp4"))

	// The group was reconfigured from 2 screens to 3; the stored record no
	// longer fits and must yield an all-unset default.
	assignments, splitFile, err := cache.Load(ctx, "g1", 3)
	require.NoError(t, err)
	assert.Empty(t, splitFile)
	require.Len(t, assignments, 3)
	for _, a := range assignments {
		assert.Empty(t, a.File)
	}
}

func TestLoadDiscardsRecordOnIndexMismatch(t *testing.T) {
	cache, store := newTestCache()

	store.records["g1"] = &Record{
		Version: SchemaVersion,
		GroupID: "g1",
		Assignments: []v1alpha1.VideoAssignment{
			{Screen: 1, File: "a.mp4"},
			{Screen: 0, File: "b.mp4"},
		},
	}

	assignments, _, err := cache.Load(context.Background(), "g1", 2)
	require.NoError(t, err)
	for i, a := range assignments {
		assert.Equal(t, i, a.Screen)
		assert.Empty(t, a.File)
	}
}

func TestLoadDiscardsRecordOnVersionMismatch(t *testing.T) {
	cache, store := newTestCache()

	store.records["g1"] = &Record{
		Version:     SchemaVersion + 1,
		GroupID:     "g1",
		Assignments: []v1alpha1.VideoAssignment{{Screen: 0, File: "a.mp4"}},
	}

	assignments, _, err := cache.Load(context.Background(), "g1", 1)
	require.NoError(t, err)
	assert.Empty(t, assignments[0].File)
}

func TestSaveNormalizesScreenIndexes(t *testing.T) {
	cache, store := newTestCache()
	ctx := context.Background()

	require.NoError(t, cache.Save(ctx, "g1", []v1alpha1.VideoAssignment{
		{Screen: 5, File: "a.mp4"},
		{Screen: 9, File: "b.mp4"},
	}, ""))

	record := store.records["g1"]
	require.NotNil(t, record)
	assert.Equal(t, 0, record.Assignments[0].Screen)
	assert.Equal(t, 1, record.Assignments[1].Screen)
	assert.Equal(t, SchemaVersion, record.Version)
}

func TestInvalidate(t *testing.T) {
	cache, store := newTestCache()
	ctx := context.Background()

	require.NoError(t, cache.Save(ctx, "g1", []v1alpha1.VideoAssignment{{Screen: 0, File: "a.mp4"}}, ""))
	require.NoError(t, cache.Invalidate(ctx, "g1"))
	assert.NotContains(t, store.records, "g1")
}
