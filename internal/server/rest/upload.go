package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/carvingsite/internal/server/images"
)

type uploadResponse struct {
	ImagePath string `json:"imagePath"`
}

// multipartMemory is the part of a multipart body kept in memory; the
// rest spills to temporary files.
const multipartMemory = 8 << 20

func (h *Handlers) uploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, uploadParseError(err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No image file provided")
		return
	}
	defer file.Close()

	category := r.FormValue("category")
	if !images.ValidCategory(category) {
		writeError(w, http.StatusBadRequest, "category must be one of: events, gallery")
		return
	}

	path, err := h.images.Ingest(r.Context(), category, header.Filename, file)
	if err != nil {
		if images.IsClientError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.fail(w, r, err, "", "process image")
		return
	}

	h.logger.Info(r.Context(), "Image stored", "path", path, "size", header.Size)
	writeJSON(w, http.StatusOK, uploadResponse{ImagePath: path})
}

func uploadParseError(err error) string {
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		return "Upload exceeds the size limit"
	}
	return "Invalid multipart form"
}
