package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vidwall/vidwall-console/api/types/v1alpha1"
	"github.com/vidwall/vidwall-console/internal/console/store"
	"github.com/vidwall/vidwall-console/internal/console/streaming"
)

// Gateway covers the backend operations the API proxies directly,
// without going through the assignment or streaming layers.
type Gateway interface {
	CreateGroup(ctx context.Context, req v1alpha1.CreateGroupRequest) (*v1alpha1.Group, error)
	DeleteGroup(ctx context.Context, groupID string) error
	RegisterClient(ctx context.Context, req v1alpha1.RegisterClientRequest) error
	UploadVideo(ctx context.Context, name string, content io.Reader) (*v1alpha1.Video, error)
	DeleteVideo(ctx context.Context, name string) error
}

// Assigner is the subset of the assignment manager the API needs.
type Assigner interface {
	AssignToGroup(ctx context.Context, clientID, groupID string) error
	AssignToScreen(ctx context.Context, clientID, groupID string, screenNumber int) error
	UnassignFromScreen(ctx context.Context, clientID string) error
	AutoAssignScreens(ctx context.Context, groupID string) error
	RemoveClient(ctx context.Context, clientID string) error
	RenameClient(ctx context.Context, clientID, displayName string) error
}

// Streamer is the subset of the streaming controller the API needs.
type Streamer interface {
	StartMultiVideo(ctx context.Context, groupID string) error
	StartSingleVideoSplit(ctx context.Context, groupID string) error
	Stop(ctx context.Context, groupID string) error
	State(groupID string) streaming.State
}

// Refresher triggers data refreshes against the backend.
type Refresher interface {
	Refresh(ctx context.Context, force bool) (store.Snapshot, error)
	DebouncedRefresh(ctx context.Context)
}

// Selections persists per-group video selections.
type Selections interface {
	Load(ctx context.Context, groupID string, screenCount int) ([]v1alpha1.VideoAssignment, string, error)
	Save(ctx context.Context, groupID string, assignments []v1alpha1.VideoAssignment, selectedSplitFile string) error
	Invalidate(ctx context.Context, groupID string) error
}

type Handler struct {
	store      *store.Store
	gateway    Gateway
	assigner   Assigner
	streamer   Streamer
	refresher  Refresher
	selections Selections
	logger     zerolog.Logger
}

func NewHandler(st *store.Store, gateway Gateway, assigner Assigner, streamer Streamer, refresher Refresher, selections Selections, logger zerolog.Logger) *Handler {
	return &Handler{
		store:      st,
		gateway:    gateway,
		assigner:   assigner,
		streamer:   streamer,
		refresher:  refresher,
		selections: selections,
		logger:     logger.With().Str("component", "console-http").Logger(),
	}
}

func decodeJSON(r *http.Request, target interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return ErrInvalidRequest("invalid request body")
	}
	return nil
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			h.logger.Error().Err(err).Msg("failed to encode response")
		}
	}
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	code, msg := statusForError(err)
	if code >= http.StatusInternalServerError {
		h.logger.Error().Err(err).Msg("request failed")
	}
	h.respondJSON(w, code, map[string]string{"error": msg})
}
