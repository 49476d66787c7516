package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-qr-keeper/internal/crypto"
	"github.com/MKhiriev/go-qr-keeper/internal/encoder"
	"github.com/MKhiriev/go-qr-keeper/internal/logger"
	"github.com/MKhiriev/go-qr-keeper/internal/placement"
	"github.com/MKhiriev/go-qr-keeper/internal/service"
	"github.com/MKhiriev/go-qr-keeper/internal/store"
	"github.com/MKhiriev/go-qr-keeper/internal/utils"
	"github.com/MKhiriev/go-qr-keeper/internal/validators"
)

// errorStatuses is checked in order; the first sentinel matched by
// errors.Is decides the status.
var errorStatuses = []struct {
	err    error
	status int
}{
	{crypto.ErrInvalidPassphrase, http.StatusBadRequest},
	{crypto.ErrDecryptionFailed, http.StatusUnprocessableEntity},

	{placement.ErrPayloadUnroutable, http.StatusRequestEntityTooLarge},
	{encoder.ErrPayloadTooLarge, http.StatusRequestEntityTooLarge},

	{validators.ErrInvalidURL, http.StatusBadRequest},
	{validators.ErrInvalidAlias, http.StatusBadRequest},
	{validators.ErrInvalidExpiry, http.StatusBadRequest},
	{validators.ErrInvalidTitle, http.StatusBadRequest},
	{validators.ErrInvalidDescription, http.StatusBadRequest},
	{validators.ErrInvalidTags, http.StatusBadRequest},
	{validators.ErrNoFieldsToUpdate, http.StatusBadRequest},

	{service.ErrAliasTaken, http.StatusConflict},
	{service.ErrNotFound, http.StatusNotFound},
	{service.ErrExpired, http.StatusGone},
	{service.ErrDisabled, http.StatusForbidden},
	{service.ErrNotFoundOrUnauthorized, http.StatusNotFound},
	{service.ErrUnauthenticated, http.StatusUnauthorized},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},

	{store.ErrStorageUnavailable, http.StatusServiceUnavailable},

	{ErrInvalidAuthorizationHeader, http.StatusUnauthorized},
	{ErrInvalidJSON, http.StatusBadRequest},
	{ErrInvalidForm, http.StatusBadRequest},
	{ErrNoPayload, http.StatusBadRequest},
	{ErrInvalidLinkID, http.StatusBadRequest},
	{ErrInvalidPaging, http.StatusBadRequest},
	{ErrBodyTooLarge, http.StatusRequestEntityTooLarge},
}

// statusFromError returns the status for err together with the message that
// may be shown to the caller. Unknown errors are reported as 500 without
// details.
func statusFromError(err error) (int, string) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge, ErrBodyTooLarge.Error()
	}

	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status, e.err.Error()
		}
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}

// writeError maps err to a status, logs it and writes the JSON error body.
func writeError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	status, message := statusFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Str("func", funcName).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Str("func", funcName).Int("status", status).Msg("request rejected")
	}

	utils.WriteError(w, message, status)
}
