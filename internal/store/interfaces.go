// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store implements the record store for short links and the blob
// store for offloaded envelopes.
package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-qr-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ShortLinkStore persists short links. Implementations guarantee that Code
// is unique and that IncrementClicks is atomic.
type ShortLinkStore interface {
	// InsertUnique stores link and returns it with ID populated.
	// Returns [ErrConflict] if the code is already taken.
	InsertUnique(ctx context.Context, link models.ShortLink) (models.ShortLink, error)

	// FindByCode returns [ErrNotFound] for an unknown code.
	FindByCode(ctx context.Context, code string) (models.ShortLink, error)

	// FindByIDAndOwner returns [ErrNotFound] when no link with that id
	// belongs to ownerID.
	FindByIDAndOwner(ctx context.Context, id int64, ownerID string) (models.ShortLink, error)

	// IncrementClicks adds one to the click counter in a single atomic step.
	IncrementClicks(ctx context.Context, id int64) error

	// Update applies the non-nil fields of update to the owner's link.
	// Returns [ErrNotFound] when nothing matched.
	Update(ctx context.Context, update models.ShortLinkUpdate) error

	// Delete hard-deletes the owner's link. Returns [ErrNotFound] when
	// nothing matched.
	Delete(ctx context.Context, id int64, ownerID string) error

	// ListByOwner returns one page ordered by created_at DESC, id DESC
	// together with the owner's total link count.
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]models.ShortLink, int64, error)

	// DeleteExpiredBefore removes links whose expiry lies before cutoff and
	// returns how many were removed.
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// BlobStore keeps offloaded envelopes. Put returns only after the bytes are
// durable.
type BlobStore interface {
	// Put stores data under a fresh unguessable locator.
	Put(ctx context.Context, data []byte) (models.BlobReference, error)

	// Get returns [ErrBlobNotFound] for an unknown locator.
	Get(ctx context.Context, locator string) ([]byte, error)

	// Delete removes a blob. Deleting an unknown locator is not an error.
	Delete(ctx context.Context, locator string) error
}

// ErrorClassificator maps driver-specific errors to store sentinels.
type ErrorClassificator interface {
	// Classify returns [ErrConflict] for unique-constraint violations and
	// nil when the error is not recognised.
	Classify(err error) error
}
