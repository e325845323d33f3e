package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router returns a router with all console endpoints mounted.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes mounts all API endpoints on the provided router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1alpha1", func(r chi.Router) {
		r.Get("/snapshot", h.handleGetSnapshot)
		r.Get("/status", h.handleAllStreamingStates)
		r.Post("/refresh", h.handleRefresh)

		r.Route("/groups", func(r chi.Router) {
			r.Get("/", h.handleListGroups)
			r.Post("/", h.handleCreateGroup)
			r.Route("/{id}", func(r chi.Router) {
				r.Delete("/", h.handleDeleteGroup)
				r.Get("/clients", h.handleGroupClients)
				r.Post("/auto-assign", h.handleAutoAssign)

				r.Get("/selections", h.handleGetSelections)
				r.Put("/selections", h.handleSaveSelections)
				r.Delete("/selections", h.handleInvalidateSelections)

				r.Get("/state", h.handleStreamingState)
				r.Post("/stream/multi", h.handleStartMultiVideo)
				r.Post("/stream/split", h.handleStartSplit)
				r.Post("/stream/stop", h.handleStopStreaming)
			})
		})

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", h.handleListClients)
			r.Post("/", h.handleRegisterClient)
			r.Route("/{id}", func(r chi.Router) {
				r.Delete("/", h.handleRemoveClient)
				r.Post("/rename", h.handleRenameClient)
				r.Put("/group", h.handleAssignGroup)
				r.Put("/screen", h.handleAssignScreen)
				r.Delete("/screen", h.handleUnassignScreen)
			})
		})

		r.Route("/videos", func(r chi.Router) {
			r.Get("/", h.handleListVideos)
			r.Post("/", h.handleUploadVideo)
			r.Delete("/{name}", h.handleDeleteVideo)
		})
	})

	r.Get("/ws", h.ServeWs)
	r.Get("/healthz", h.handleHealthz)
	r.Get("/readyz", h.handleReadyz)
}

func (h *Handler) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReadyz reports ready once at least one refresh has landed.
func (h *Handler) handleReadyz(w http.ResponseWriter, _ *http.Request) {
	snap := h.store.Snapshot()
	if snap.FetchedAt.IsZero() {
		h.respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "waiting for initial refresh"})
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
