package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/carvingsite/internal/server/models"
	"github.com/dmitrijs2005/carvingsite/internal/server/services"
)

type eventResponse struct {
	Event *models.Event `json:"event"`
}

const eventNotFound = "Event not found"

func (h *Handlers) listEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.List(r.Context())
	if err != nil {
		h.fail(w, r, err, eventNotFound, "fetch events")
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *Handlers) getEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, eventNotFound)
		return
	}

	e, err := h.events.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, eventNotFound, "fetch event")
		return
	}
	writeJSON(w, http.StatusOK, eventResponse{Event: e})
}

func (h *Handlers) createEvent(w http.ResponseWriter, r *http.Request) {
	var in models.Event
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.events.Create(r.Context(), &in)
	if err != nil {
		h.fail(w, r, err, eventNotFound, "create event")
		return
	}

	h.logger.Info(r.Context(), "Event created", "id", created.ID)
	writeJSON(w, http.StatusCreated, eventResponse{Event: created})
}

func (h *Handlers) updateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, eventNotFound)
		return
	}

	var patch models.EventPatch
	if err := decodeJSON(r, &patch); err != nil && !errors.Is(err, errEmptyBody) {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.events.Update(r.Context(), id, patch)
	if err != nil {
		h.fail(w, r, err, eventNotFound, "update event")
		return
	}
	writeJSON(w, http.StatusOK, eventResponse{Event: updated})
}

func (h *Handlers) deleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, eventNotFound)
		return
	}

	deleted, cleanup, err := h.events.Delete(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, eventNotFound, "delete event")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, eventNotFound)
		return
	}

	h.logCleanup(r, cleanup)
	writeJSON(w, http.StatusOK, messageResponse{Message: "Event deleted"})
}

// logCleanup records the outcome of a best-effort image removal. It never
// affects the response.
func (h *Handlers) logCleanup(r *http.Request, c services.CleanupResult) {
	switch {
	case c.Err != nil:
		h.logger.Warn(r.Context(), "Failed to remove image file", "path", c.Path, "error", c.Err)
	case c.Removed:
		h.logger.Debug(r.Context(), "Removed image file", "path", c.Path)
	}
}
