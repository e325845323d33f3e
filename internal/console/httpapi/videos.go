package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vidwall/vidwall-console/api/types/v1alpha1"
)

// maxUploadBytes caps a single video upload at 4 GiB.
const maxUploadBytes = 4 << 30

func (h *Handler) handleListVideos(w http.ResponseWriter, _ *http.Request) {
	snap := h.store.Snapshot()
	h.respondJSON(w, http.StatusOK, v1alpha1.VideoList{Videos: snap.Videos})
}

// handleUploadVideo streams a multipart upload through to the backend
// without buffering the whole file.
func (h *Handler) handleUploadVideo(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	reader, err := r.MultipartReader()
	if err != nil {
		h.respondError(w, ErrInvalidRequest("expected a multipart upload"))
		return
	}

	part, err := reader.NextPart()
	if err != nil || part.FormName() != "file" {
		h.respondError(w, ErrInvalidRequest("multipart upload must lead with a file part"))
		return
	}
	defer func() {
		if err := part.Close(); err != nil {
			h.logger.Error().Err(err).Msg("failed to close upload part")
		}
	}()

	name := part.FileName()
	if name == "" {
		h.respondError(w, ErrInvalidRequest("file part must carry a filename"))
		return
	}

	video, err := h.gateway.UploadVideo(r.Context(), name, part)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.refresher.DebouncedRefresh(r.Context())
	h.respondJSON(w, http.StatusCreated, video)
}

func (h *Handler) handleDeleteVideo(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := h.gateway.DeleteVideo(r.Context(), name); err != nil {
		h.respondError(w, err)
		return
	}
	h.refresher.DebouncedRefresh(r.Context())
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
