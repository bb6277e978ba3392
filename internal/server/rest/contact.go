package rest

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/dmitrijs2005/carvingsite/internal/server/mailer"
	"github.com/dmitrijs2005/carvingsite/internal/server/services"
)

// sendContact accepts multipart or url-encoded forms. Attached files go in
// the "files" field.
func (h *Handlers) sendContact(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)

	err := r.ParseMultipartForm(multipartMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, uploadParseError(err))
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	req := &services.ContactRequest{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Message: r.FormValue("message"),
	}

	if r.MultipartForm != nil {
		files := r.MultipartForm.File["files"]
		if len(files) > services.MaxContactAttachments {
			writeError(w, http.StatusBadRequest,
				fmt.Sprintf("files allows at most %d items", services.MaxContactAttachments))
			return
		}
		for _, fh := range files {
			a, err := readAttachment(fh)
			if err != nil {
				writeError(w, http.StatusBadRequest, "Invalid attachment")
				return
			}
			req.Attachments = append(req.Attachments, a)
		}
	}

	if err := h.contact.Send(r.Context(), req); err != nil {
		if errors.Is(err, services.ErrContactDisabled) {
			writeError(w, http.StatusServiceUnavailable, "Contact form is not available")
			return
		}
		h.fail(w, r, err, "", "send message")
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Message sent"})
}

func readAttachment(fh *multipart.FileHeader) (mailer.Attachment, error) {
	f, err := fh.Open()
	if err != nil {
		return mailer.Attachment{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return mailer.Attachment{}, err
	}

	return mailer.Attachment{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
