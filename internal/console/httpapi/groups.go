package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vidwall/vidwall-console/api/types/v1alpha1"
)

func (h *Handler) handleListGroups(w http.ResponseWriter, _ *http.Request) {
	snap := h.store.Snapshot()
	h.respondJSON(w, http.StatusOK, v1alpha1.GroupList{Groups: snap.Groups})
}

func (h *Handler) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req v1alpha1.CreateGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}
	if req.Name == "" {
		h.respondError(w, ErrInvalidRequest("group name is required"))
		return
	}

	group, err := h.gateway.CreateGroup(r.Context(), req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.refresher.DebouncedRefresh(r.Context())
	h.respondJSON(w, http.StatusCreated, group)
}

func (h *Handler) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")
	if err := h.gateway.DeleteGroup(r.Context(), groupID); err != nil {
		h.respondError(w, err)
		return
	}

	// The group is gone; its saved selections would only poison a future
	// group that reuses the id.
	if err := h.selections.Invalidate(r.Context(), groupID); err != nil {
		h.logger.Warn().Err(err).Str("groupId", groupID).Msg("failed to drop selections for deleted group")
	}

	h.refresher.DebouncedRefresh(r.Context())
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) handleGroupClients(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")
	if _, ok := h.store.GroupByID(groupID); !ok {
		h.respondError(w, ErrNotFound("unknown group"))
		return
	}
	h.respondJSON(w, http.StatusOK, h.store.ScreenAssignmentSummaryFor(groupID))
}

func (h *Handler) handleAutoAssign(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")
	if err := h.assigner.AutoAssignScreens(r.Context(), groupID); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "assigned"})
}

// selectionsPayload carries per-screen video choices for a group.
type selectionsPayload struct {
	Assignments       []v1alpha1.VideoAssignment `json:"assignments"`
	SelectedSplitFile string                     `json:"selectedSplitFile,omitempty"`
}

func (h *Handler) handleGetSelections(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")
	group, ok := h.store.GroupByID(groupID)
	if !ok {
		h.respondError(w, ErrNotFound("unknown group"))
		return
	}

	assignments, splitFile, err := h.selections.Load(r.Context(), groupID, group.ScreenCount)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, selectionsPayload{
		Assignments:       assignments,
		SelectedSplitFile: splitFile,
	})
}

func (h *Handler) handleSaveSelections(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")
	group, ok := h.store.GroupByID(groupID)
	if !ok {
		h.respondError(w, ErrNotFound("unknown group"))
		return
	}

	var payload selectionsPayload
	if err := decodeJSON(r, &payload); err != nil {
		h.respondError(w, err)
		return
	}
	if len(payload.Assignments) != group.ScreenCount {
		h.respondError(w, ErrInvalidRequest("assignment count must match the group's screen count"))
		return
	}

	if err := h.selections.Save(r.Context(), groupID, payload.Assignments, payload.SelectedSplitFile); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

func (h *Handler) handleInvalidateSelections(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")
	if err := h.selections.Invalidate(r.Context(), groupID); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
