package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/carvingsite/internal/common"
)

// fail maps a service error to a response. Store and infrastructure
// failures are logged and answered with "Failed to <action>" only.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error, notFound, action string) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, notFound)
	case errors.Is(err, common.ErrorUnauthorized):
		writeError(w, http.StatusUnauthorized, "Unauthorized")
	default:
		h.logger.Error(r.Context(), "Failed to "+action,
			"error", err,
			"request_id", RequestIDFrom(r.Context()),
		)
		writeError(w, http.StatusInternalServerError, "Failed to "+action)
	}
}
