package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleAllStreamingStates reports the effective streaming state of every
// known group, transitional overlays included.
func (h *Handler) handleAllStreamingStates(w http.ResponseWriter, _ *http.Request) {
	snap := h.store.Snapshot()
	states := make(map[string]string, len(snap.Groups))
	for _, g := range snap.Groups {
		states[g.ID] = string(h.streamer.State(g.ID))
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"states":   states,
		"statusAt": snap.StatusAt,
	})
}

func (h *Handler) handleStreamingState(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")
	if _, ok := h.store.GroupByID(groupID); !ok {
		h.respondError(w, ErrNotFound("unknown group"))
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{
		"groupId": groupID,
		"state":   string(h.streamer.State(groupID)),
	})
}

func (h *Handler) handleStartMultiVideo(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")
	if err := h.streamer.StartMultiVideo(r.Context(), groupID); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusAccepted, map[string]string{"status": "starting"})
}

func (h *Handler) handleStartSplit(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")
	if err := h.streamer.StartSingleVideoSplit(r.Context(), groupID); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusAccepted, map[string]string{"status": "starting"})
}

func (h *Handler) handleStopStreaming(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")
	if err := h.streamer.Stop(r.Context(), groupID); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusAccepted, map[string]string{"status": "stopping"})
}
