package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/carvingsite/internal/server/models"
)

type imageResponse struct {
	Image *models.GalleryImage `json:"image"`
}

type reorderRequest struct {
	ImageIDs []int64 `json:"imageIds"`
}

type galleryResponse struct {
	Gallery []models.GalleryImage `json:"gallery"`
}

const imageNotFound = "Image not found"

func (h *Handlers) listGallery(w http.ResponseWriter, r *http.Request) {
	imgs, err := h.gallery.List(r.Context())
	if err != nil {
		h.fail(w, r, err, imageNotFound, "fetch gallery")
		return
	}
	writeJSON(w, http.StatusOK, imgs)
}

func (h *Handlers) getGalleryImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, imageNotFound)
		return
	}

	img, err := h.gallery.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, imageNotFound, "fetch image")
		return
	}
	writeJSON(w, http.StatusOK, imageResponse{Image: img})
}

func (h *Handlers) createGalleryImage(w http.ResponseWriter, r *http.Request) {
	var in models.GalleryImage
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.gallery.Create(r.Context(), &in)
	if err != nil {
		h.fail(w, r, err, imageNotFound, "create image")
		return
	}

	h.logger.Info(r.Context(), "Gallery image created", "id", created.ID, "order", created.Order)
	writeJSON(w, http.StatusCreated, imageResponse{Image: created})
}

func (h *Handlers) updateGalleryImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, imageNotFound)
		return
	}

	var patch models.GalleryImagePatch
	if err := decodeJSON(r, &patch); err != nil && !errors.Is(err, errEmptyBody) {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.gallery.Update(r.Context(), id, patch)
	if err != nil {
		h.fail(w, r, err, imageNotFound, "update image")
		return
	}
	writeJSON(w, http.StatusOK, imageResponse{Image: updated})
}

func (h *Handlers) deleteGalleryImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, imageNotFound)
		return
	}

	deleted, cleanup, err := h.gallery.Delete(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, imageNotFound, "delete image")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, imageNotFound)
		return
	}

	h.logCleanup(r, cleanup)
	writeJSON(w, http.StatusOK, messageResponse{Message: "Image deleted"})
}

func (h *Handlers) reorderGallery(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "imageIds must be an array of ids")
		return
	}

	imgs, err := h.gallery.Reorder(r.Context(), req.ImageIDs)
	if err != nil {
		h.fail(w, r, err, imageNotFound, "reorder gallery")
		return
	}
	writeJSON(w, http.StatusOK, galleryResponse{Gallery: imgs})
}
