package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vidwall/vidwall-console/api/types/v1alpha1"
)

func (h *Handler) handleListClients(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	if r.URL.Query().Get("unassigned") == "true" {
		h.respondJSON(w, http.StatusOK, v1alpha1.ClientList{Clients: h.store.UnassignedClients()})
		return
	}
	h.respondJSON(w, http.StatusOK, v1alpha1.ClientList{Clients: snap.Clients})
}

func (h *Handler) handleRegisterClient(w http.ResponseWriter, r *http.Request) {
	var req v1alpha1.RegisterClientRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}
	if req.ClientID == "" {
		h.respondError(w, ErrInvalidRequest("client id is required"))
		return
	}

	if err := h.gateway.RegisterClient(r.Context(), req); err != nil {
		h.respondError(w, err)
		return
	}
	h.refresher.DebouncedRefresh(r.Context())
	h.respondJSON(w, http.StatusCreated, map[string]string{"status": "registered"})
}

func (h *Handler) handleRemoveClient(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "id")
	if err := h.assigner.RemoveClient(r.Context(), clientID); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (h *Handler) handleRenameClient(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "id")

	var req struct {
		DisplayName string `json:"displayName"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	if err := h.assigner.RenameClient(r.Context(), clientID, req.DisplayName); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "renamed"})
}

// handleAssignGroup moves a client into a group, or out of all groups when
// the body carries an empty group id.
func (h *Handler) handleAssignGroup(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "id")

	var req struct {
		GroupID string `json:"groupId"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	if err := h.assigner.AssignToGroup(r.Context(), clientID, req.GroupID); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "assigned"})
}

func (h *Handler) handleAssignScreen(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "id")

	var req struct {
		GroupID      string `json:"groupId"`
		ScreenNumber int    `json:"screenNumber"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	if err := h.assigner.AssignToScreen(r.Context(), clientID, req.GroupID, req.ScreenNumber); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "assigned"})
}

func (h *Handler) handleUnassignScreen(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "id")
	if err := h.assigner.UnassignFromScreen(r.Context(), clientID); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "unassigned"})
}
