package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidwall/vidwall-console/api/types/v1alpha1"
	"github.com/vidwall/vidwall-console/internal/console/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL)
	require.NoError(t, err)
	return c, srv
}

func TestListGroups(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/groups", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(v1alpha1.GroupList{
			Groups: []v1alpha1.Group{
				{
					ID:            "g1",
					Name:          "lobby-wall",
					ScreenCount:   3,
					Orientation:   v1alpha1.OrientationHorizontal,
					StreamingMode: v1alpha1.StreamingModeMultiVideo,
					DockerRunning: true,
					Status:        v1alpha1.GroupStatusInactive,
				},
			},
		})
		require.NoError(t, err)
	})

	groups, err := c.ListGroups(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "g1", groups[0].ID)
	assert.Equal(t, 3, groups[0].ScreenCount)
	assert.True(t, groups[0].DockerRunning)
}

func TestDomainErrorCarriesBackendMessage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error": "client not registered"}`))
	})

	err := c.AssignClientToGroup(context.Background(), "c1", "g1")
	require.Error(t, err)
	assert.True(t, errors.IsDomain(err))
	assert.Contains(t, err.Error(), "client not registered")
	assert.Contains(t, err.Error(), "AssignClientToGroup")
}

func TestNonJSONResponseIsProtocolError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>proxy error</html>"))
	})

	_, err := c.ListVideos(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsProtocol(err))
	assert.False(t, errors.IsDomain(err))
}

func TestMalformedBodyIsProtocolError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"groups": [{`))
	})

	_, err := c.ListGroups(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsProtocol(err))
}

func TestNetworkFailureIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(url)
	require.NoError(t, err)

	_, err = c.ListClients(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsTransport(err))
}

func TestStartMultiVideoPayload(t *testing.T) {
	var got v1alpha1.StartMultiVideoRequest

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/groups/g1/start_multi_video", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"started": true}`))
	})

	req := v1alpha1.StartMultiVideoRequest{
		VideoFiles: []v1alpha1.VideoAssignment{
			{Screen: 0, File: "a.mp4"},
			{Screen: 1, File: "b.mp4"},
		},
		ScreenCount: 2,
		Orientation: v1alpha1.OrientationHorizontal,
	}
	require.NoError(t, c.StartMultiVideo(context.Background(), "g1", req))

	assert.Equal(t, req.VideoFiles, got.VideoFiles)
	assert.Equal(t, 2, got.ScreenCount)
	assert.Equal(t, v1alpha1.OrientationHorizontal, got.Orientation)
}

func TestStartSingleVideoSplitAlwaysLoops(t *testing.T) {
	var got v1alpha1.StartSingleVideoSplitRequest

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	})

	req := v1alpha1.StartSingleVideoSplitRequest{
		VideoFile:     "movie.mp4",
		ScreenCount:   4,
		Orientation:   v1alpha1.OrientationGrid,
		EnableLooping: true,
	}
	require.NoError(t, c.StartSingleVideoSplit(context.Background(), "g2", req))
	assert.True(t, got.EnableLooping)
	assert.Equal(t, "movie.mp4", got.VideoFile)
}

func TestGetAllStreamingStatusesKeepsRawShapes(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"statuses": {"g1": true, "g2": {"is_streaming": false}}}`))
	})

	statuses, err := c.GetAllStreamingStatuses(context.Background())
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	assert.JSONEq(t, `true`, string(statuses["g1"]))
	assert.JSONEq(t, `{"is_streaming": false}`, string(statuses["g2"]))
}

func TestUploadVideoMultipart(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/videos/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "clip.mp4", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(v1alpha1.Video{Name: "clip.mp4", Path: "/videos/clip.mp4", Size: 4})
		require.NoError(t, err)
	})

	video, err := c.UploadVideo(context.Background(), "clip.mp4", strings.NewReader("data"))
	require.NoError(t, err)
	assert.Equal(t, "clip.mp4", video.Name)
	assert.Equal(t, int64(4), video.Size)
}

func TestNewRejectsBadBaseURL(t *testing.T) {
	_, err := New("not a url")
	assert.Error(t, err)

	c, err := New("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.baseURL)
}
