// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package placement decides whether an envelope travels inside the QR code
// or is offloaded to the blob store, and reverses that decision on the way
// back.
package placement

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-qr-keeper/internal/logger"
	"github.com/MKhiriev/go-qr-keeper/internal/store"
	"github.com/MKhiriev/go-qr-keeper/models"
)

// BlobPath is the route prefix under which offloaded envelopes are served.
const BlobPath = "/b/"

// Placement is the outcome of [Router.Route].
type Placement struct {
	Mode models.PlacementMode

	// Text is what the QR code must carry: the envelope itself or the
	// retrieval URL of its offloaded copy.
	Text string

	// Blob is set only when Mode is [models.PlacementOffloaded].
	Blob *models.BlobReference
}

// Router implements the capacity routing decision.
//
// A Router holds no mutable state and is safe for concurrent use.
type Router struct {
	// blobs receives envelopes that do not fit inline.
	blobs store.BlobStore

	// blobPrefix is "<public base URL>/b/".
	blobPrefix string

	// maxPayload is the renderer's absolute ceiling. Whatever text is
	// chosen must not exceed it.
	maxPayload int

	// timeout bounds every blob store call.
	timeout time.Duration

	logger *logger.Logger
}

// NewRouter constructs a [Router].
//
// Parameters:
//   - blobs: destination for offloaded envelopes.
//   - publicBaseURL: absolute base URL used to build locator URLs.
//   - maxPayload: the renderer's absolute capacity, see encoder.Encoder.MaxPayload.
//   - timeout: per-call deadline for blob store operations; zero disables it.
func NewRouter(blobs store.BlobStore, publicBaseURL string, maxPayload int, timeout time.Duration, log *logger.Logger) (*Router, error) {
	base, err := url.Parse(publicBaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: public base URL %q must be absolute", ErrInvalidRouterConfig, publicBaseURL)
	}
	if maxPayload <= 0 {
		return nil, fmt.Errorf("%w: max payload must be positive", ErrInvalidRouterConfig)
	}
	if blobs == nil {
		return nil, fmt.Errorf("%w: blob store is required", ErrInvalidRouterConfig)
	}

	return &Router{
		blobs:      blobs,
		blobPrefix: strings.TrimRight(base.String(), "/") + BlobPath,
		maxPayload: maxPayload,
		timeout:    timeout,
		logger:     log,
	}, nil
}

// Route chooses where envelope lives.
//
// Behavior:
//   - len(envelope) <= inlineCapacity: the envelope is returned as Text.
//   - otherwise the envelope is written to the blob store and the locator
//     URL is returned as Text. The write completes before Route returns.
//
// Returns [ErrPayloadUnroutable] when the chosen text exceeds the
// renderer's absolute maximum; a blob written for such a locator is removed
// again. Blob store failures are reported as [store.ErrStorageUnavailable].
func (r *Router) Route(ctx context.Context, envelope []byte, inlineCapacity int) (Placement, error) {
	if len(envelope) <= inlineCapacity {
		if len(envelope) > r.maxPayload {
			return Placement{}, fmt.Errorf("%w: envelope of %d bytes exceeds renderer capacity %d",
				ErrPayloadUnroutable, len(envelope), r.maxPayload)
		}
		return Placement{Mode: models.PlacementInline, Text: string(envelope)}, nil
	}

	putCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	ref, err := r.blobs.Put(putCtx, envelope)
	if err != nil {
		r.logger.Err(err).Str("func", "Router.Route").Int("size", len(envelope)).Msg("error offloading envelope")
		return Placement{}, storageUnavailable(err)
	}

	text := r.LocatorURL(ref.Locator)
	if len(text) > r.maxPayload {
		r.discard(ctx, ref.Locator)
		return Placement{}, fmt.Errorf("%w: locator URL of %d bytes exceeds renderer capacity %d",
			ErrPayloadUnroutable, len(text), r.maxPayload)
	}

	return Placement{Mode: models.PlacementOffloaded, Text: text, Blob: &ref}, nil
}

// Resolve turns scanned text back into the serialized envelope. Locator
// URLs of this service are fetched from the blob store; any other text is
// returned unchanged.
func (r *Router) Resolve(ctx context.Context, text string) ([]byte, error) {
	text = strings.TrimSpace(text)

	locator, ok := r.Locator(text)
	if !ok {
		if isURL(text) {
			return nil, ErrForeignLocator
		}
		return []byte(text), nil
	}

	return r.Fetch(ctx, locator)
}

// Fetch returns the offloaded envelope stored under locator.
// Unknown locators yield [store.ErrBlobNotFound].
func (r *Router) Fetch(ctx context.Context, locator string) ([]byte, error) {
	getCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	data, err := r.blobs.Get(getCtx, locator)
	if err != nil {
		if errors.Is(err, store.ErrBlobNotFound) {
			return nil, err
		}
		return nil, storageUnavailable(err)
	}

	return data, nil
}

// LocatorURL returns the retrieval URL for locator.
func (r *Router) LocatorURL(locator string) string {
	return r.blobPrefix + locator
}

// Locator extracts the locator from a retrieval URL produced by this router.
func (r *Router) Locator(text string) (string, bool) {
	locator, ok := strings.CutPrefix(text, r.blobPrefix)
	if !ok || locator == "" || strings.ContainsAny(locator, "/?#") {
		return "", false
	}
	return locator, true
}

// MaxPayload reports the renderer ceiling the router checks against.
func (r *Router) MaxPayload() int {
	return r.maxPayload
}

// discard removes a blob that will never be referenced. Failures are only
// logged.
func (r *Router) discard(ctx context.Context, locator string) {
	delCtx, cancel := r.withTimeout(context.WithoutCancel(ctx))
	defer cancel()

	if err := r.blobs.Delete(delCtx, locator); err != nil {
		r.logger.Warn().Err(err).Str("func", "Router.discard").Msg("error deleting unroutable blob")
	}
}

func (r *Router) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

func storageUnavailable(err error) error {
	if errors.Is(err, store.ErrStorageUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", store.ErrStorageUnavailable, err)
}

func isURL(text string) bool {
	lower := strings.ToLower(text)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
