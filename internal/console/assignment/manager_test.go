package assignment

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vidwall/vidwall-console/internal/console/errors"
)

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) AssignClientToGroup(ctx context.Context, clientID, groupID string) error {
	args := m.Called(ctx, clientID, groupID)
	return args.Error(0)
}

func (m *mockGateway) UnassignClientFromGroup(ctx context.Context, clientID string) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

func (m *mockGateway) AssignClientToScreen(ctx context.Context, clientID, groupID string, screenNumber int) error {
	args := m.Called(ctx, clientID, groupID, screenNumber)
	return args.Error(0)
}

func (m *mockGateway) UnassignClientFromScreen(ctx context.Context, clientID string) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

func (m *mockGateway) AutoAssignScreens(ctx context.Context, groupID string) error {
	args := m.Called(ctx, groupID)
	return args.Error(0)
}

func (m *mockGateway) RemoveClient(ctx context.Context, clientID string) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

func (m *mockGateway) RenameClient(ctx context.Context, clientID, displayName string) error {
	args := m.Called(ctx, clientID, displayName)
	return args.Error(0)
}

type fakeRefresher struct {
	calls int32
}

func (f *fakeRefresher) DebouncedRefresh(context.Context) {
	atomic.AddInt32(&f.calls, 1)
}

func (f *fakeRefresher) count() int32 {
	return atomic.LoadInt32(&f.calls)
}

func newTestManager(gw *mockGateway) (*Manager, *fakeRefresher) {
	refresher := &fakeRefresher{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(gw, refresher, nil, logger), refresher
}

func TestAssignToGroup(t *testing.T) {
	gw := new(mockGateway)
	gw.On("AssignClientToGroup", mock.Anything, "c1", "g1").Return(nil)
	m, refresher := newTestManager(gw)

	require.NoError(t, m.AssignToGroup(context.Background(), "c1", "g1"))

	gw.AssertExpectations(t)
	assert.Equal(t, int32(1), refresher.count())
}

func TestAssignToGroupEmptyGroupUnassigns(t *testing.T) {
	gw := new(mockGateway)
	gw.On("UnassignClientFromGroup", mock.Anything, "c1").Return(nil)
	m, _ := newTestManager(gw)

	require.NoError(t, m.AssignToGroup(context.Background(), "c1", ""))
	gw.AssertExpectations(t)
	gw.AssertNotCalled(t, "AssignClientToGroup", mock.Anything, mock.Anything, mock.Anything)
}

func TestFailureSurfacesErrorWithoutRefresh(t *testing.T) {
	gw := new(mockGateway)
	gw.On("AssignClientToGroup", mock.Anything, "c1", "g1").
		Return(errors.NewDomain("AssignClientToGroup", "client not registered"))
	m, refresher := newTestManager(gw)

	err := m.AssignToGroup(context.Background(), "c1", "g1")
	require.Error(t, err)
	assert.True(t, errors.IsDomain(err))
	assert.Equal(t, int32(0), refresher.count(), "failed mutation must not trigger a refresh")
}

func TestAssignToScreenValidation(t *testing.T) {
	gw := new(mockGateway)
	m, _ := newTestManager(gw)
	ctx := context.Background()

	err := m.AssignToScreen(ctx, "c1", "g1", -1)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))

	err = m.AssignToScreen(ctx, "c1", "", 0)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))

	gw.AssertNotCalled(t, "AssignClientToScreen", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConcurrentOperationForSameClientIsRejected(t *testing.T) {
	gw := new(mockGateway)
	entered := make(chan struct{})
	release := make(chan struct{})
	gw.On("AssignClientToScreen", mock.Anything, "c1", "g1", 0).
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(nil)
	m, _ := newTestManager(gw)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, m.AssignToScreen(context.Background(), "c1", "g1", 0))
	}()

	<-entered
	err := m.AssignToScreen(context.Background(), "c1", "g1", 1)
	require.Error(t, err, "second mutation for the same client must be rejected, not queued")
	assert.True(t, errors.IsValidation(err))

	close(release)
	wg.Wait()
	gw.AssertNumberOfCalls(t, "AssignClientToScreen", 1)
}

func TestDifferentClientsProceedConcurrently(t *testing.T) {
	gw := new(mockGateway)
	entered := make(chan struct{})
	release := make(chan struct{})
	gw.On("UnassignClientFromScreen", mock.Anything, "c1").
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(nil)
	gw.On("UnassignClientFromScreen", mock.Anything, "c2").Return(nil)
	m, _ := newTestManager(gw)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, m.UnassignFromScreen(context.Background(), "c1"))
	}()

	<-entered
	assert.NoError(t, m.UnassignFromScreen(context.Background(), "c2"))

	close(release)
	wg.Wait()
}

func TestUnassignFromScreenIsRepeatable(t *testing.T) {
	gw := new(mockGateway)
	gw.On("UnassignClientFromScreen", mock.Anything, "c1").Return(nil)
	m, _ := newTestManager(gw)
	ctx := context.Background()

	require.NoError(t, m.UnassignFromScreen(ctx, "c1"))
	require.NoError(t, m.UnassignFromScreen(ctx, "c1"))
	gw.AssertNumberOfCalls(t, "UnassignClientFromScreen", 2)
}

func TestAutoAssignScreens(t *testing.T) {
	gw := new(mockGateway)
	gw.On("AutoAssignScreens", mock.Anything, "g1").Return(nil)
	m, refresher := newTestManager(gw)

	require.NoError(t, m.AutoAssignScreens(context.Background(), "g1"))
	gw.AssertExpectations(t)
	assert.Equal(t, int32(1), refresher.count())
}

func TestRemoveAndRenameClient(t *testing.T) {
	gw := new(mockGateway)
	gw.On("RemoveClient", mock.Anything, "c1").Return(nil)
	gw.On("RenameClient", mock.Anything, "c2", "east wall").Return(nil)
	m, _ := newTestManager(gw)
	ctx := context.Background()

	require.NoError(t, m.RemoveClient(ctx, "c1"))
	require.NoError(t, m.RenameClient(ctx, "c2", "east wall"))
	gw.AssertExpectations(t)
}
