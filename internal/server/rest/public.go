package rest

import (
	"context"
	"net/http"
	"time"
)

type healthResponse struct {
	Status string `json:"status"`
}

const healthTimeout = 2 * time.Second

func (h *Handlers) publicEvents(w http.ResponseWriter, r *http.Request) {
	h.listEvents(w, r)
}

func (h *Handlers) publicGallery(w http.ResponseWriter, r *http.Request) {
	h.listGallery(w, r)
}

func (h *Handlers) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Error(r.Context(), "Health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
