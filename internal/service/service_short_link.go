// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/MKhiriev/go-qr-keeper/internal/config"
	"github.com/MKhiriev/go-qr-keeper/internal/encoder"
	"github.com/MKhiriev/go-qr-keeper/internal/logger"
	"github.com/MKhiriev/go-qr-keeper/internal/store"
	"github.com/MKhiriev/go-qr-keeper/internal/validators"
	"github.com/MKhiriev/go-qr-keeper/models"
)

// MaxPageSize caps the limit accepted by ListForOwner.
const MaxPageSize = 100

// ShortLinkPath is the route prefix under which codes are resolved.
const ShortLinkPath = "/s/"

var codePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,50}$`)

// shortLinkService is the default implementation of [ShortLinkService].
//
// State per link: ACTIVE and DISABLED are stored, EXPIRED is derived at
// read time from ExpiresAt, DELETED means the record is gone.
type shortLinkService struct {
	// links is the record store. Code uniqueness and atomic click counting
	// are delegated to it.
	links store.ShortLinkStore

	// encoder renders short URLs into QR codes.
	encoder encoder.Encoder

	validator validators.Validator
	codes     CodeGenerator

	baseURL         string
	codeLength      int
	maxAttempts     int
	defaultPageSize int

	// timeout bounds every store call.
	timeout time.Duration

	now    func() time.Time
	logger *logger.Logger
}

// NewShortLinkService constructs a [ShortLinkService].
//
// Parameters:
//   - links: the record store.
//   - enc: renderer used for short-URL QR codes.
//   - cfg: App.PublicBaseURL, Shortener and Storage.Timeout are used.
//   - logger: structured logger used for diagnostic output.
func NewShortLinkService(links store.ShortLinkStore, enc encoder.Encoder, cfg config.StructuredConfig, logger *logger.Logger) ShortLinkService {
	return &shortLinkService{
		links:           links,
		encoder:         enc,
		validator:       validators.NewShortLinkValidator(),
		codes:           NewCodeGenerator(),
		baseURL:         strings.TrimRight(cfg.App.PublicBaseURL, "/"),
		codeLength:      cfg.Shortener.CodeLength,
		maxAttempts:     max(cfg.Shortener.MaxAttempts, 1),
		defaultPageSize: cfg.Shortener.DefaultPageSize,
		timeout:         cfg.Storage.Timeout,
		now:             time.Now,
		logger:          logger,
	}
}

// Shorten validates req and persists a new link.
//
// Behavior:
//   - with a custom alias the insert is attempted once; a taken alias
//     yields [ErrAliasTaken].
//   - without one, random codes are tried until an insert succeeds, at most
//     maxAttempts times. Running out of attempts is reported as
//     store.ErrStorageUnavailable wrapped with [ErrCodeSpaceExhausted].
//
// Uniqueness is decided by the store's insert, never by a prior lookup.
func (s *shortLinkService) Shorten(ctx context.Context, req models.ShortenRequest) (models.ShortLink, error) {
	log := logger.FromContext(ctx)

	req.Tags = validators.NormalizeTags(req.Tags)
	if err := s.validator.Validate(ctx, req); err != nil {
		log.Debug().Err(err).Str("func", "shortLinkService.Shorten").Msg("invalid shorten request")
		return models.ShortLink{}, err
	}

	now := s.now().UTC()
	link := models.ShortLink{
		OwnerID:     req.OwnerID,
		OriginalURL: req.OriginalURL,
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.ExpiresAt != nil {
		expiresAt := req.ExpiresAt.UTC()
		link.ExpiresAt = &expiresAt
	}

	if req.CustomAlias != "" {
		link.Code = req.CustomAlias
		link.IsCustomAlias = true

		created, err := s.insert(ctx, link)
		if errors.Is(err, store.ErrConflict) {
			return models.ShortLink{}, ErrAliasTaken
		}
		return created, err
	}

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		code, err := s.codes.Generate(s.codeLength)
		if err != nil {
			log.Err(err).Str("func", "shortLinkService.Shorten").Msg("error generating code")
			return models.ShortLink{}, fmt.Errorf("generate short code: %w", err)
		}
		if slices.Contains(validators.ReservedAliases, strings.ToLower(code)) {
			continue
		}

		link.Code = code
		created, err := s.insert(ctx, link)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, store.ErrConflict) {
			return models.ShortLink{}, err
		}

		log.Debug().Str("func", "shortLinkService.Shorten").Int("attempt", attempt).Msg("generated code collided")
	}

	log.Error().Str("func", "shortLinkService.Shorten").Int("attempts", s.maxAttempts).Msg("no free code found")
	return models.ShortLink{}, fmt.Errorf("%w: %w after %d attempts", store.ErrStorageUnavailable, ErrCodeSpaceExhausted, s.maxAttempts)
}

// Resolve looks code up and counts the click.
//
// Expiry is checked before the activation flag, so a disabled and expired
// link reports [ErrExpired]. Failed resolutions do not count as clicks.
func (s *shortLinkService) Resolve(ctx context.Context, code string) (string, error) {
	if !codePattern.MatchString(code) {
		return "", ErrNotFound
	}

	findCtx, cancel := s.withTimeout(ctx)
	link, err := s.links.FindByCode(findCtx, code)
	cancel()
	if err != nil {
		return "", mapStoreError(err, ErrNotFound)
	}

	if link.IsExpired(s.now()) {
		return "", ErrExpired
	}
	if !link.IsActive {
		return "", ErrDisabled
	}

	incCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err = s.links.IncrementClicks(incCtx, link.ID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "shortLinkService.Resolve").Int64("id", link.ID).Msg("error counting click")
		return "", mapStoreError(err, ErrNotFound)
	}

	return link.OriginalURL, nil
}

func (s *shortLinkService) ListForOwner(ctx context.Context, ownerID string, limit, offset int) (models.ShortLinkPage, error) {
	if ownerID == "" {
		return models.ShortLinkPage{}, ErrUnauthenticated
	}

	if limit <= 0 {
		limit = s.defaultPageSize
	}
	limit = min(max(limit, 1), MaxPageSize)
	offset = max(offset, 0)

	listCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	links, total, err := s.links.ListByOwner(listCtx, ownerID, limit, offset)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "shortLinkService.ListForOwner").Msg("error listing links")
		return models.ShortLinkPage{}, err
	}
	if links == nil {
		links = []models.ShortLink{}
	}

	return models.ShortLinkPage{
		Links:   links,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+limit) < total,
	}, nil
}

func (s *shortLinkService) Get(ctx context.Context, id int64, ownerID string) (models.ShortLink, error) {
	if ownerID == "" {
		return models.ShortLink{}, ErrNotFoundOrUnauthorized
	}

	getCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	link, err := s.links.FindByIDAndOwner(getCtx, id, ownerID)
	if err != nil {
		return models.ShortLink{}, mapStoreError(err, ErrNotFoundOrUnauthorized)
	}

	return link, nil
}

func (s *shortLinkService) Update(ctx context.Context, update models.ShortLinkUpdate) (models.ShortLink, error) {
	if update.OwnerID == "" {
		return models.ShortLink{}, ErrNotFoundOrUnauthorized
	}

	update.IsActive = nil
	if update.Tags != nil {
		update.Tags = validators.NormalizeTags(update.Tags)
	}
	if err := s.validator.Validate(ctx, update); err != nil {
		return models.ShortLink{}, err
	}
	update.UpdatedAt = s.now().UTC()

	updCtx, cancel := s.withTimeout(ctx)
	err := s.links.Update(updCtx, update)
	cancel()
	if err != nil {
		return models.ShortLink{}, mapStoreError(err, ErrNotFoundOrUnauthorized)
	}

	return s.Get(ctx, update.ID, update.OwnerID)
}

// ToggleActive flips IsActive. Only the owner may toggle; any other caller
// gets [ErrNotFoundOrUnauthorized] and the record stays unchanged.
func (s *shortLinkService) ToggleActive(ctx context.Context, id int64, ownerID string) (bool, error) {
	link, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return false, err
	}

	active := !link.IsActive

	updCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	err = s.links.Update(updCtx, models.ShortLinkUpdate{
		ID:        id,
		OwnerID:   ownerID,
		IsActive:  &active,
		UpdatedAt: s.now().UTC(),
	})
	if err != nil {
		return false, mapStoreError(err, ErrNotFoundOrUnauthorized)
	}

	return active, nil
}

func (s *shortLinkService) Delete(ctx context.Context, id int64, ownerID string) error {
	if ownerID == "" {
		return ErrNotFoundOrUnauthorized
	}

	delCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.links.Delete(delCtx, id, ownerID); err != nil {
		return mapStoreError(err, ErrNotFoundOrUnauthorized)
	}

	return nil
}

func (s *shortLinkService) ShortURL(code string) string {
	return s.baseURL + ShortLinkPath + code
}

func (s *shortLinkService) QRCode(ctx context.Context, code string) ([]byte, error) {
	if !codePattern.MatchString(code) {
		return nil, ErrNotFound
	}

	findCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.links.FindByCode(findCtx, code); err != nil {
		return nil, mapStoreError(err, ErrNotFound)
	}

	png, err := s.encoder.Encode(s.ShortURL(code))
	if err != nil {
		return nil, fmt.Errorf("render short url: %w", err)
	}

	return png, nil
}

func (s *shortLinkService) insert(ctx context.Context, link models.ShortLink) (models.ShortLink, error) {
	insCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.links.InsertUnique(insCtx, link)
}

func (s *shortLinkService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// mapStoreError replaces store.ErrNotFound with notFound. Any other error
// is returned unchanged.
func mapStoreError(err, notFound error) error {
	if errors.Is(err, store.ErrNotFound) {
		return notFound
	}
	return err
}
