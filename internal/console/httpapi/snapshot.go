package httpapi

import (
	"net/http"
	"time"

	"github.com/vidwall/vidwall-console/api/types/v1alpha1"
	"github.com/vidwall/vidwall-console/internal/console/store"
)

// snapshotResponse is the wire form of a store snapshot.
type snapshotResponse struct {
	Groups    []v1alpha1.Group  `json:"groups"`
	Clients   []v1alpha1.Client `json:"clients"`
	Videos    []v1alpha1.Video  `json:"videos"`
	Streaming map[string]bool   `json:"streaming"`
	FetchedAt time.Time         `json:"fetchedAt"`
	StatusAt  time.Time         `json:"statusAt"`
}

func toSnapshotResponse(snap store.Snapshot) snapshotResponse {
	return snapshotResponse{
		Groups:    snap.Groups,
		Clients:   snap.Clients,
		Videos:    snap.Videos,
		Streaming: snap.Streaming,
		FetchedAt: snap.FetchedAt,
		StatusAt:  snap.StatusAt,
	}
}

func (h *Handler) handleGetSnapshot(w http.ResponseWriter, _ *http.Request) {
	h.respondJSON(w, http.StatusOK, toSnapshotResponse(h.store.Snapshot()))
}

// handleRefresh forces a refresh regardless of the freshness gate.
func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	snap, err := h.refresher.Refresh(r.Context(), true)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, toSnapshotResponse(snap))
}
