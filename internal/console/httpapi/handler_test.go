package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidwall/vidwall-console/api/types/v1alpha1"
	consoleerrors "github.com/vidwall/vidwall-console/internal/console/errors"
	"github.com/vidwall/vidwall-console/internal/console/store"
	"github.com/vidwall/vidwall-console/internal/console/streaming"
)

type fakeGateway struct {
	createdGroup  *v1alpha1.CreateGroupRequest
	deletedGroup  string
	uploadedName  string
	uploadedBytes []byte
	deletedVideo  string
	err           error
}

func (f *fakeGateway) CreateGroup(_ context.Context, req v1alpha1.CreateGroupRequest) (*v1alpha1.Group, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.createdGroup = &req
	return &v1alpha1.Group{ID: "g1", Name: req.Name, ScreenCount: req.ScreenCount}, nil
}

func (f *fakeGateway) DeleteGroup(_ context.Context, groupID string) error {
	f.deletedGroup = groupID
	return f.err
}

func (f *fakeGateway) RegisterClient(_ context.Context, _ v1alpha1.RegisterClientRequest) error {
	return f.err
}

func (f *fakeGateway) UploadVideo(_ context.Context, name string, content io.Reader) (*v1alpha1.Video, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, err
	}
	f.uploadedName = name
	f.uploadedBytes = data
	return &v1alpha1.Video{Name: name, Size: int64(len(data))}, nil
}

func (f *fakeGateway) DeleteVideo(_ context.Context, name string) error {
	f.deletedVideo = name
	return f.err
}

type fakeAssigner struct {
	calls []string
	err   error
}

func (f *fakeAssigner) AssignToGroup(_ context.Context, clientID, groupID string) error {
	f.calls = append(f.calls, "group:"+clientID+":"+groupID)
	return f.err
}

func (f *fakeAssigner) AssignToScreen(_ context.Context, clientID, groupID string, screenNumber int) error {
	f.calls = append(f.calls, "screen:"+clientID+":"+groupID)
	_ = screenNumber
	return f.err
}

func (f *fakeAssigner) UnassignFromScreen(_ context.Context, clientID string) error {
	f.calls = append(f.calls, "unscreen:"+clientID)
	return f.err
}

func (f *fakeAssigner) AutoAssignScreens(_ context.Context, groupID string) error {
	f.calls = append(f.calls, "auto:"+groupID)
	return f.err
}

func (f *fakeAssigner) RemoveClient(_ context.Context, clientID string) error {
	f.calls = append(f.calls, "remove:"+clientID)
	return f.err
}

func (f *fakeAssigner) RenameClient(_ context.Context, clientID, displayName string) error {
	f.calls = append(f.calls, "rename:"+clientID+":"+displayName)
	return f.err
}

type fakeStreamer struct {
	started []string
	stopped []string
	state   streaming.State
	err     error
}

func (f *fakeStreamer) StartMultiVideo(_ context.Context, groupID string) error {
	if f.err != nil {
		return f.err
	}
	f.started = append(f.started, groupID)
	return nil
}

func (f *fakeStreamer) StartSingleVideoSplit(_ context.Context, groupID string) error {
	if f.err != nil {
		return f.err
	}
	f.started = append(f.started, groupID)
	return nil
}

func (f *fakeStreamer) Stop(_ context.Context, groupID string) error {
	if f.err != nil {
		return f.err
	}
	f.stopped = append(f.stopped, groupID)
	return nil
}

func (f *fakeStreamer) State(string) streaming.State {
	if f.state == "" {
		return streaming.StateInactive
	}
	return f.state
}

type fakeRefresher struct {
	forced    int
	debounced int
	store     *store.Store
}

func (f *fakeRefresher) Refresh(context.Context, bool) (store.Snapshot, error) {
	f.forced++
	return f.store.Snapshot(), nil
}

func (f *fakeRefresher) DebouncedRefresh(context.Context) {
	f.debounced++
}

type fakeSelections struct {
	saved       map[string][]v1alpha1.VideoAssignment
	splitFiles  map[string]string
	invalidated []string
}

func newFakeSelections() *fakeSelections {
	return &fakeSelections{
		saved:      make(map[string][]v1alpha1.VideoAssignment),
		splitFiles: make(map[string]string),
	}
}

func (f *fakeSelections) Load(_ context.Context, groupID string, screenCount int) ([]v1alpha1.VideoAssignment, string, error) {
	if a, ok := f.saved[groupID]; ok {
		return a, f.splitFiles[groupID], nil
	}
	defaults := make([]v1alpha1.VideoAssignment, screenCount)
	for i := range defaults {
		defaults[i].Screen = i
	}
	return defaults, "", nil
}

func (f *fakeSelections) Save(_ context.Context, groupID string, assignments []v1alpha1.VideoAssignment, splitFile string) error {
	f.saved[groupID] = assignments
	f.splitFiles[groupID] = splitFile
	return nil
}

func (f *fakeSelections) Invalidate(_ context.Context, groupID string) error {
	f.invalidated = append(f.invalidated, groupID)
	return nil
}

type fixture struct {
	handler    *Handler
	store      *store.Store
	gateway    *fakeGateway
	assigner   *fakeAssigner
	streamer   *fakeStreamer
	refresher  *fakeRefresher
	selections *fakeSelections
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st := store.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	gw := &fakeGateway{}
	as := &fakeAssigner{}
	str := &fakeStreamer{}
	ref := &fakeRefresher{store: st}
	sel := newFakeSelections()

	h := NewHandler(st, gw, as, str, ref, sel, zerolog.Nop())
	return &fixture{handler: h, store: st, gateway: gw, assigner: as, streamer: str, refresher: ref, selections: sel}
}

func (f *fixture) seed() {
	f.store.ApplySnapshot(
		[]v1alpha1.Group{{ID: "g1", Name: "lobby", ScreenCount: 2, StreamingMode: v1alpha1.StreamingModeMultiVideo, DockerRunning: true}},
		[]v1alpha1.Client{{ClientID: "c1", Hostname: "pi-1", GroupID: "g1"}},
		[]v1alpha1.Video{{Name: "intro.mp4", Size: 1024}},
	)
}

func (f *fixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	f.handler.Router().ServeHTTP(rec, req)
	return rec
}

func TestGetSnapshot(t *testing.T) {
	f := newFixture(t)
	f.seed()

	rec := f.do(t, http.MethodGet, "/api/v1alpha1/snapshot", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var snap snapshotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Len(t, snap.Groups, 1)
	assert.Len(t, snap.Clients, 1)
	assert.Len(t, snap.Videos, 1)
}

func TestForcedRefresh(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1alpha1/refresh", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, f.refresher.forced)
}

func TestCreateGroup(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1alpha1/groups", v1alpha1.CreateGroupRequest{
		Name:        "lobby",
		ScreenCount: 3,
		Orientation: v1alpha1.OrientationHorizontal,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, f.gateway.createdGroup)
	assert.Equal(t, "lobby", f.gateway.createdGroup.Name)
	assert.Equal(t, 1, f.refresher.debounced)
}

func TestCreateGroupRequiresName(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1alpha1/groups", v1alpha1.CreateGroupRequest{ScreenCount: 2})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, f.gateway.createdGroup)
}

func TestDeleteGroupClearsSelections(t *testing.T) {
	f := newFixture(t)
	f.seed()

	rec := f.do(t, http.MethodDelete, "/api/v1alpha1/groups/g1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "g1", f.gateway.deletedGroup)
	assert.Equal(t, []string{"g1"}, f.selections.invalidated)
}

func TestGroupClientsUnknownGroup(t *testing.T) {
	f := newFixture(t)
	f.seed()

	rec := f.do(t, http.MethodGet, "/api/v1alpha1/groups/nope/clients", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAssignScreen(t *testing.T) {
	f := newFixture(t)
	f.seed()

	rec := f.do(t, http.MethodPut, "/api/v1alpha1/clients/c1/screen", map[string]interface{}{
		"groupId":      "g1",
		"screenNumber": 1,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"screen:c1:g1"}, f.assigner.calls)
}

func TestAssignerErrorsMapToStatusCodes(t *testing.T) {
	f := newFixture(t)
	f.seed()
	f.assigner.err = consoleerrors.NewValidation("test", "already in flight")

	rec := f.do(t, http.MethodPut, "/api/v1alpha1/clients/c1/group", map[string]string{"groupId": "g1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "already in flight")
}

func TestDomainErrorsMapToConflict(t *testing.T) {
	f := newFixture(t)
	f.seed()
	f.streamer.err = consoleerrors.NewDomain("test", "group has no docker process")

	rec := f.do(t, http.MethodPost, "/api/v1alpha1/groups/g1/stream/multi", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestStartMultiVideo(t *testing.T) {
	f := newFixture(t)
	f.seed()

	rec := f.do(t, http.MethodPost, "/api/v1alpha1/groups/g1/stream/multi", nil)
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, []string{"g1"}, f.streamer.started)
}

func TestStreamingState(t *testing.T) {
	f := newFixture(t)
	f.seed()
	f.streamer.state = streaming.StateActive

	rec := f.do(t, http.MethodGet, "/api/v1alpha1/groups/g1/state", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "active", body["state"])
}

func TestAllStreamingStates(t *testing.T) {
	f := newFixture(t)
	f.seed()
	f.streamer.state = streaming.StateStarting

	rec := f.do(t, http.MethodGet, "/api/v1alpha1/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		States map[string]string `json:"states"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "starting", body.States["g1"])
}

func TestSaveSelectionsValidatesCount(t *testing.T) {
	f := newFixture(t)
	f.seed()

	rec := f.do(t, http.MethodPut, "/api/v1alpha1/groups/g1/selections", selectionsPayload{
		Assignments: []v1alpha1.VideoAssignment{{Screen: 0, File: "a.mp4"}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPut, "/api/v1alpha1/groups/g1/selections", selectionsPayload{
		Assignments: []v1alpha1.VideoAssignment{
			{Screen: 0, File: "a.mp4"},
			{Screen: 1, File: "b.mp4"},
		},
		SelectedSplitFile: "wide.mp4",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, f.selections.saved["g1"], 2)
	assert.Equal(t, "wide.mp4", f.selections.splitFiles["g1"])
}

func TestGetSelectionsDefaults(t *testing.T) {
	f := newFixture(t)
	f.seed()

	rec := f.do(t, http.MethodGet, "/api/v1alpha1/groups/g1/selections", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload selectionsPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Assignments, 2)
	assert.Empty(t, payload.Assignments[0].File)
}

func TestListClientsUnassignedFilter(t *testing.T) {
	f := newFixture(t)
	f.store.ApplySnapshot(
		[]v1alpha1.Group{{ID: "g1", Name: "lobby", ScreenCount: 2}},
		[]v1alpha1.Client{
			{ClientID: "c1", GroupID: "g1"},
			{ClientID: "c2"},
		},
		nil,
	)

	rec := f.do(t, http.MethodGet, "/api/v1alpha1/clients?unassigned=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list v1alpha1.ClientList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Clients, 1)
	assert.Equal(t, "c2", list.Clients[0].ClientID)
}

func TestUploadVideo(t *testing.T) {
	f := newFixture(t)

	var buf bytes.Buffer
	boundary := "testboundary"
	buf.WriteString("--" + boundary + "\r\n")
	buf.WriteString("Content-Disposition: form-data; name=\"file\"; filename=\"clip.mp4\"\r\n")
	buf.WriteString("Content-Type: video/mp4\r\n\r\n")
	buf.WriteString("fake video bytes")
	buf.WriteString("\r\n--" + boundary + "--\r\n")

	req := httptest.NewRequest(http.MethodPost, "/api/v1alpha1/videos", &buf)
	req.Header.Set("Content-Type", "multipart/form-data; boundary="+boundary)
	rec := httptest.NewRecorder()
	f.handler.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "clip.mp4", f.gateway.uploadedName)
	assert.Equal(t, "fake video bytes", string(f.gateway.uploadedBytes))
}

func TestReadyzWaitsForFirstRefresh(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	f.seed()
	rec = f.do(t, http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWebsocketSnapshotStream(t *testing.T) {
	f := newFixture(t)
	f.seed()

	srv := httptest.NewServer(f.handler.Router())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, ws.Close())
	}()

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))

	var first snapshotResponse
	require.NoError(t, ws.ReadJSON(&first))
	assert.Len(t, first.Groups, 1)

	f.store.ApplyStreamingStatus(map[string]bool{"g1": true})

	var second snapshotResponse
	require.NoError(t, ws.ReadJSON(&second))
	assert.True(t, second.Streaming["g1"])
}
