package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/MKhiriev/go-qr-keeper/internal/utils"
	"github.com/MKhiriev/go-qr-keeper/models"
	"github.com/go-chi/chi/v5"
)

// multipartMemory is how much of a multipart body is kept in memory before
// spilling to temporary files.
const multipartMemory = 1 << 20

const (
	headerPlacementMode = "X-Placement-Mode"
	headerBlobLocator   = "X-Blob-Locator"
)

// protect accepts a multipart or url-encoded form with either a `file` or a
// `text` field plus `passphrase`, and returns the QR artifact. With
// ?format=png the PNG itself is returned, otherwise a JSON
// [models.ProtectResult].
func (h *Handler) protect(w http.ResponseWriter, r *http.Request) {
	req, err := readProtectRequest(r)
	if err != nil {
		writeError(w, r, "Handler.protect", err)
		return
	}

	res, err := h.services.ProtectionService.Protect(r.Context(), req)
	if err != nil {
		writeError(w, r, "Handler.protect", err)
		return
	}

	if r.URL.Query().Get("format") == "png" {
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set(headerPlacementMode, string(res.Mode))
		if res.Blob != nil {
			w.Header().Set(headerBlobLocator, res.Blob.Locator)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(res.QRCode)
		return
	}

	_, _ = utils.WriteJSON(w, res, http.StatusOK)
}

// reveal decrypts a scanned QR text. The plaintext is returned as-is.
func (h *Handler) reveal(w http.ResponseWriter, r *http.Request) {
	var req models.RevealRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, "Handler.reveal", err)
		return
	}

	plaintext, err := h.services.ProtectionService.Reveal(r.Context(), req)
	if err != nil {
		writeError(w, r, "Handler.reveal", err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(plaintext)
}

// getBlob serves an offloaded envelope. The body is the serialized envelope
// text exactly as it was stored.
func (h *Handler) getBlob(w http.ResponseWriter, r *http.Request) {
	data, err := h.services.ProtectionService.FetchBlob(r.Context(), chi.URLParam(r, "locator"))
	if err != nil {
		writeError(w, r, "Handler.getBlob", err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func readProtectRequest(r *http.Request) (models.ProtectRequest, error) {
	err := r.ParseMultipartForm(multipartMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		return models.ProtectRequest{}, fmt.Errorf("%w: %w", ErrInvalidForm, err)
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	req := models.ProtectRequest{
		Passphrase: r.PostFormValue("passphrase"),
		Filename:   r.PostFormValue("filename"),
	}

	file, header, err := r.FormFile("file")
	switch {
	case err == nil:
		defer file.Close()

		req.Data, err = io.ReadAll(file)
		if err != nil {
			return models.ProtectRequest{}, fmt.Errorf("%w: %w", ErrInvalidForm, err)
		}
		if req.Filename == "" {
			req.Filename = header.Filename
		}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		text := r.PostFormValue("text")
		if text == "" {
			return models.ProtectRequest{}, ErrNoPayload
		}
		req.Data = []byte(text)
	default:
		return models.ProtectRequest{}, fmt.Errorf("%w: %w", ErrInvalidForm, err)
	}

	return req, nil
}
