// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client-side transport for the qr-keeper
// server.
//
// The primary abstraction is [ServerAdapter], which hides the REST API
// behind typed calls. Error responses are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] (e.g. [ErrConflict] for
// 409, [ErrGone] for an expired link).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-qr-keeper/models"
)

// ServerAdapter defines communication with the qr-keeper server.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to subsequent requests.
	SetToken(token string)

	// Token returns the stored bearer token, or an empty string.
	Token() string

	// Version returns the server build information.
	Version(ctx context.Context) (string, error)

	// Protect encrypts req on the server and returns the artifact.
	Protect(ctx context.Context, req models.ProtectRequest) (models.ProtectResult, error)

	// Reveal decrypts a scanned artifact text.
	Reveal(ctx context.Context, req models.RevealRequest) ([]byte, error)

	// Shorten issues a short link, owned by the token holder if a token
	// is set.
	Shorten(ctx context.Context, req models.ShortenRequest) (models.ShortenResponse, error)

	// ListLinks returns one page of the caller's links.
	ListLinks(ctx context.Context, limit, offset int) (models.ShortLinkPage, error)

	// GetLink returns one of the caller's links.
	GetLink(ctx context.Context, id int64) (models.ShortLink, error)

	// UpdateLink changes the metadata of one of the caller's links.
	UpdateLink(ctx context.Context, id int64, update LinkUpdate) (models.ShortLink, error)

	// ToggleLink flips the activation flag of one of the caller's links.
	ToggleLink(ctx context.Context, id int64) (models.ToggleResponse, error)

	// DeleteLink removes one of the caller's links.
	DeleteLink(ctx context.Context, id int64) error
}

// LinkUpdate carries the metadata fields to change. Nil fields are left
// unchanged; an empty non-nil Tags clears the tags.
type LinkUpdate struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Tags        []string `json:"tags"`
}
