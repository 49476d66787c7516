// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced by the transport layer itself. Callers can match
// against them with [errors.Is].
var (
	// ErrInvalidAuthorizationHeader is returned by the auth middleware when
	// the "Authorization" header is present but is not "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrInvalidJSON is returned when a request body cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrInvalidForm is returned when a form body cannot be parsed.
	ErrInvalidForm = errors.New("invalid form data")

	// ErrNoPayload is returned by the protect handler when neither a file
	// nor a text field was submitted.
	ErrNoPayload = errors.New("either `file` or `text` must be provided")

	// ErrInvalidLinkID is returned when the {id} path segment is not a
	// positive integer.
	ErrInvalidLinkID = errors.New("invalid link id")

	// ErrInvalidPaging is returned for non-numeric limit or offset values.
	ErrInvalidPaging = errors.New("invalid limit or offset")

	// ErrBodyTooLarge is returned when the request body exceeds the upload
	// limit.
	ErrBodyTooLarge = errors.New("request body too large")
)
