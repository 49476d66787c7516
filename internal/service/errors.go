package service

import (
	"errors"

	"github.com/MKhiriev/go-qr-keeper/internal/validators"
)

// Input validation, shared with the validators package.
var (
	ErrInvalidURL    = validators.ErrInvalidURL
	ErrInvalidAlias  = validators.ErrInvalidAlias
	ErrInvalidExpiry = validators.ErrInvalidExpiry
)

var (
	ErrAliasTaken = errors.New("alias already taken")

	ErrNotFound               = errors.New("not found")
	ErrExpired                = errors.New("link expired")
	ErrDisabled               = errors.New("link disabled")
	ErrNotFoundOrUnauthorized = errors.New("link not found or not owned by caller")

	// ErrCodeSpaceExhausted is always wrapped together with
	// store.ErrStorageUnavailable.
	ErrCodeSpaceExhausted = errors.New("code space exhausted")

	ErrUnauthenticated         = errors.New("authentication required")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
