package streaming

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/vidwall/vidwall-console/api/types/v1alpha1"
	"github.com/vidwall/vidwall-console/internal/console/store"
)

type mockStatusGateway struct {
	mock.Mock
}

func (m *mockStatusGateway) GetAllStreamingStatuses(ctx context.Context) (map[string]v1alpha1.RawStreamingStatus, error) {
	args := m.Called(ctx)
	statuses, _ := args.Get(0).(map[string]v1alpha1.RawStreamingStatus)
	return statuses, args.Error(1)
}

func (m *mockStatusGateway) GetStreamingStatus(ctx context.Context, groupID string) (v1alpha1.RawStreamingStatus, error) {
	args := m.Called(ctx, groupID)
	raw, _ := args.Get(0).(v1alpha1.RawStreamingStatus)
	return raw, args.Error(1)
}

func newPollerFixture(groups ...v1alpha1.Group) (*mockStatusGateway, *store.Store, *Poller) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gw := new(mockStatusGateway)
	st := store.New(logger)
	st.ApplySnapshot(groups, nil, nil)
	return gw, st, NewPoller(gw, st, logger)
}

func TestPollOnceBatched(t *testing.T) {
	gw, st, p := newPollerFixture(v1alpha1.Group{ID: "g1"}, v1alpha1.Group{ID: "g2"})

	gw.On("GetAllStreamingStatuses", mock.Anything).Return(map[string]v1alpha1.RawStreamingStatus{
		"g1": v1alpha1.RawStreamingStatus(`true`),
		"g2": v1alpha1.RawStreamingStatus(`{"is_streaming": false}`),
	}, nil)

	p.PollOnce(context.Background())

	assert.True(t, st.StreamingActive("g1"))
	assert.False(t, st.StreamingActive("g2"))
	gw.AssertNotCalled(t, "GetStreamingStatus", mock.Anything, mock.Anything)
}

func TestPollOnceFallsBackPerGroup(t *testing.T) {
	gw, st, p := newPollerFixture(v1alpha1.Group{ID: "g1"}, v1alpha1.Group{ID: "g2"})

	gw.On("GetAllStreamingStatuses", mock.Anything).
		Return(nil, assert.AnError)
	gw.On("GetStreamingStatus", mock.Anything, "g1").
		Return(v1alpha1.RawStreamingStatus(`true`), nil)
	// g2's individual call fails: the status degrades to false and the
	// cycle still completes.
	gw.On("GetStreamingStatus", mock.Anything, "g2").
		Return(nil, assert.AnError)

	p.PollOnce(context.Background())

	assert.True(t, st.StreamingActive("g1"))
	assert.False(t, st.StreamingActive("g2"))
	gw.AssertExpectations(t)
}

func TestPollOnceNormalizesBeforeMerge(t *testing.T) {
	gw, st, p := newPollerFixture(v1alpha1.Group{ID: "g1"})

	gw.On("GetAllStreamingStatuses", mock.Anything).Return(map[string]v1alpha1.RawStreamingStatus{
		"g1": v1alpha1.RawStreamingStatus(`{"active": true}`),
	}, nil)

	p.PollOnce(context.Background())
	assert.True(t, st.StreamingActive("g1"))
}

func TestRunStopsOnCancel(t *testing.T) {
	gw, _, _ := newPollerFixture()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.New(logger)
	p := NewPoller(gw, st, logger, WithPollInterval(5*time.Millisecond))

	gw.On("GetAllStreamingStatuses", mock.Anything).Return(map[string]v1alpha1.RawStreamingStatus{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop after cancellation")
	}
}
