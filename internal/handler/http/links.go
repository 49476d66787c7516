// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-qr-keeper/internal/logger"
	"github.com/MKhiriev/go-qr-keeper/internal/utils"
	"github.com/MKhiriev/go-qr-keeper/models"
	"github.com/go-chi/chi/v5"
)

// updateLinkRequest is the PATCH /api/links/{id} body. Omitted fields are
// left unchanged.
type updateLinkRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Tags        []string `json:"tags"`
}

// shorten issues a short link. Authenticated callers become the owner;
// anonymous links cannot be managed later.
func (h *Handler) shorten(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.ShortenRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, "Handler.shorten", err)
		return
	}
	req.OwnerID, _ = utils.GetOwnerIDFromContext(ctx)

	link, err := h.services.ShortLinkService.Shorten(ctx, req)
	if err != nil {
		writeError(w, r, "Handler.shorten", err)
		return
	}

	resp := models.ShortenResponse{
		Link:     link,
		ShortURL: h.services.ShortLinkService.ShortURL(link.Code),
	}

	resp.QRCode, err = h.services.ShortLinkService.QRCode(ctx, link.Code)
	if err != nil {
		logger.FromRequest(r).Warn().Err(err).Str("func", "Handler.shorten").Msg("short link created without qr code")
	}

	_, _ = utils.WriteJSON(w, resp, http.StatusCreated)
}

// resolve redirects to the original URL with 302 Found.
func (h *Handler) resolve(w http.ResponseWriter, r *http.Request) {
	target, err := h.services.ShortLinkService.Resolve(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, r, "Handler.resolve", err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	http.Redirect(w, r, target, http.StatusFound)
}

func (h *Handler) shortLinkQR(w http.ResponseWriter, r *http.Request) {
	png, err := h.services.ShortLinkService.QRCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, r, "Handler.shortLinkQR", err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func (h *Handler) listLinks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ownerID, _ := utils.GetOwnerIDFromContext(ctx)

	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, r, "Handler.listLinks", err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		writeError(w, r, "Handler.listLinks", err)
		return
	}

	page, err := h.services.ShortLinkService.ListForOwner(ctx, ownerID, limit, offset)
	if err != nil {
		writeError(w, r, "Handler.listLinks", err)
		return
	}

	_, _ = utils.WriteJSON(w, page, http.StatusOK)
}

func (h *Handler) getLink(w http.ResponseWriter, r *http.Request) {
	id, ownerID, err := linkTarget(r)
	if err != nil {
		writeError(w, r, "Handler.getLink", err)
		return
	}

	link, err := h.services.ShortLinkService.Get(r.Context(), id, ownerID)
	if err != nil {
		writeError(w, r, "Handler.getLink", err)
		return
	}

	_, _ = utils.WriteJSON(w, link, http.StatusOK)
}

func (h *Handler) updateLink(w http.ResponseWriter, r *http.Request) {
	id, ownerID, err := linkTarget(r)
	if err != nil {
		writeError(w, r, "Handler.updateLink", err)
		return
	}

	var body updateLinkRequest
	if err = decodeJSON(r, &body); err != nil {
		writeError(w, r, "Handler.updateLink", err)
		return
	}

	link, err := h.services.ShortLinkService.Update(r.Context(), models.ShortLinkUpdate{
		ID:          id,
		OwnerID:     ownerID,
		Title:       body.Title,
		Description: body.Description,
		Tags:        body.Tags,
	})
	if err != nil {
		writeError(w, r, "Handler.updateLink", err)
		return
	}

	_, _ = utils.WriteJSON(w, link, http.StatusOK)
}

func (h *Handler) toggleLink(w http.ResponseWriter, r *http.Request) {
	id, ownerID, err := linkTarget(r)
	if err != nil {
		writeError(w, r, "Handler.toggleLink", err)
		return
	}

	active, err := h.services.ShortLinkService.ToggleActive(r.Context(), id, ownerID)
	if err != nil {
		writeError(w, r, "Handler.toggleLink", err)
		return
	}

	_, _ = utils.WriteJSON(w, models.ToggleResponse{ID: id, IsActive: active}, http.StatusOK)
}

func (h *Handler) deleteLink(w http.ResponseWriter, r *http.Request) {
	id, ownerID, err := linkTarget(r)
	if err != nil {
		writeError(w, r, "Handler.deleteLink", err)
		return
	}

	if err = h.services.ShortLinkService.Delete(r.Context(), id, ownerID); err != nil {
		writeError(w, r, "Handler.deleteLink", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// linkTarget reads the {id} path parameter and the caller identity.
func linkTarget(r *http.Request) (int64, string, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, "", ErrInvalidLinkID
	}

	ownerID, _ := utils.GetOwnerIDFromContext(r.Context())
	return id, ownerID, nil
}

// queryInt returns 0 for an absent parameter.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidPaging, name, raw)
	}
	return v, nil
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}
