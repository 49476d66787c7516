// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service holds the business logic of qr-keeper: protecting
// payloads into QR artifacts and managing short links.
package service

import (
	"context"

	"github.com/MKhiriev/go-qr-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// ShortLinkService issues, resolves and manages short links.
type ShortLinkService interface {
	// Shorten issues a link for req. A custom alias is used verbatim;
	// otherwise a random code is generated.
	Shorten(ctx context.Context, req models.ShortenRequest) (models.ShortLink, error)

	// Resolve returns the original URL for code and counts the click.
	Resolve(ctx context.Context, code string) (string, error)

	// ListForOwner returns one page of the owner's links, newest first.
	ListForOwner(ctx context.Context, ownerID string, limit, offset int) (models.ShortLinkPage, error)

	// Get returns one of the owner's links with its statistics.
	Get(ctx context.Context, id int64, ownerID string) (models.ShortLink, error)

	// Update changes the title, description or tags of an owner's link.
	Update(ctx context.Context, update models.ShortLinkUpdate) (models.ShortLink, error)

	// ToggleActive flips the activation flag and returns the new state.
	ToggleActive(ctx context.Context, id int64, ownerID string) (bool, error)

	// Delete removes an owner's link permanently.
	Delete(ctx context.Context, id int64, ownerID string) error

	// ShortURL returns the public URL that resolves code.
	ShortURL(code string) string

	// QRCode renders the short URL of an existing code as PNG.
	QRCode(ctx context.Context, code string) ([]byte, error)
}

// ProtectionService turns payloads into passphrase-protected QR artifacts
// and back.
type ProtectionService interface {
	Protect(ctx context.Context, req models.ProtectRequest) (models.ProtectResult, error)

	// Reveal accepts whatever was scanned from the QR code.
	Reveal(ctx context.Context, req models.RevealRequest) ([]byte, error)

	// FetchBlob returns an offloaded envelope by locator.
	FetchBlob(ctx context.Context, locator string) ([]byte, error)
}

// AuthService verifies bearer tokens. Tokens are minted outside the server.
type AuthService interface {
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// HealthService reports whether the backing storage is reachable.
type HealthService interface {
	Check(ctx context.Context) error
}
