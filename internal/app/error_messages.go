// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the human-readable messages the qr-keeper client
// prints when a server call fails.
//
// All Msg* constants describe the outcome of an operation in terms a CLI
// user can act on. Keeping them in one place keeps the wording consistent
// across subcommands.
package app

import (
	"errors"

	"github.com/MKhiriev/go-qr-keeper/internal/adapter"
)

const (
	// MsgInvalidDataProvided is printed when the server rejects the input
	// (bad URL, alias, expiry or passphrase).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgTokenIsExpiredOrInvalid is printed when the bearer token is
	// missing, expired or cannot be verified.
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid, set -token or QRK_TOKEN"

	// MsgLinkDisabled is printed when a short link was disabled by its owner.
	MsgLinkDisabled = "link is disabled"

	// MsgDataNotFound is printed when a link, code or blob does not exist
	// or belongs to someone else.
	MsgDataNotFound = "not found"

	// MsgAliasTaken is printed when the requested custom alias is in use.
	MsgAliasTaken = "alias is already taken, choose another one"

	// MsgLinkExpired is printed when a short link is past its expiry.
	MsgLinkExpired = "link has expired"

	// MsgPayloadTooLarge is printed when the payload cannot be uploaded or
	// does not fit any QR code.
	MsgPayloadTooLarge = "payload is too large"

	// MsgDecryptionFailed is printed for a wrong passphrase as well as a
	// damaged artifact.
	MsgDecryptionFailed = "wrong passphrase or damaged code"

	// MsgServerUnavailable is printed when the server storage is down.
	MsgServerUnavailable = "server is temporarily unavailable, try again later"

	// MsgInternalServerError is printed for any other server failure.
	MsgInternalServerError = "internal server error"
)

var hints = []struct {
	err error
	msg string
}{
	{adapter.ErrBadRequest, MsgInvalidDataProvided},
	{adapter.ErrUnauthorized, MsgTokenIsExpiredOrInvalid},
	{adapter.ErrForbidden, MsgLinkDisabled},
	{adapter.ErrNotFound, MsgDataNotFound},
	{adapter.ErrConflict, MsgAliasTaken},
	{adapter.ErrGone, MsgLinkExpired},
	{adapter.ErrPayloadTooLarge, MsgPayloadTooLarge},
	{adapter.ErrUnprocessable, MsgDecryptionFailed},
	{adapter.ErrUnavailable, MsgServerUnavailable},
	{adapter.ErrInternalServerError, MsgInternalServerError},
}

// Hint returns the message for a server error, or an empty string when err
// is not a recognised server response.
func Hint(err error) string {
	for _, h := range hints {
		if errors.Is(err, h.err) {
			return h.msg
		}
	}
	return ""
}
