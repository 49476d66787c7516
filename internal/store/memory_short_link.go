package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/go-qr-keeper/models"
)

// memShortLinkStore is an in-process [ShortLinkStore]. A single mutex
// serialises all access, which gives the same uniqueness and atomic
// increment guarantees as the SQL backends.
type memShortLinkStore struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]models.ShortLink
	byCode map[string]int64
}

// NewMemShortLinkStore returns an empty in-memory [ShortLinkStore].
func NewMemShortLinkStore() ShortLinkStore {
	return &memShortLinkStore{
		byID:   make(map[int64]models.ShortLink),
		byCode: make(map[string]int64),
	}
}

func (s *memShortLinkStore) InsertUnique(ctx context.Context, link models.ShortLink) (models.ShortLink, error) {
	if err := ctxAlive(ctx); err != nil {
		return models.ShortLink{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byCode[link.Code]; taken {
		return models.ShortLink{}, ErrConflict
	}

	s.nextID++
	link.ID = s.nextID
	link = cloneLink(link)
	s.byID[link.ID] = link
	s.byCode[link.Code] = link.ID

	return cloneLink(link), nil
}

func (s *memShortLinkStore) FindByCode(ctx context.Context, code string) (models.ShortLink, error) {
	if err := ctxAlive(ctx); err != nil {
		return models.ShortLink{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byCode[code]
	if !ok {
		return models.ShortLink{}, ErrNotFound
	}

	return cloneLink(s.byID[id]), nil
}

func (s *memShortLinkStore) FindByIDAndOwner(ctx context.Context, id int64, ownerID string) (models.ShortLink, error) {
	if err := ctxAlive(ctx); err != nil {
		return models.ShortLink{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	link, ok := s.owned(id, ownerID)
	if !ok {
		return models.ShortLink{}, ErrNotFound
	}

	return cloneLink(link), nil
}

func (s *memShortLinkStore) IncrementClicks(ctx context.Context, id int64) error {
	if err := ctxAlive(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	link, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	link.ClickCount++
	s.byID[id] = link

	return nil
}

func (s *memShortLinkStore) Update(ctx context.Context, update models.ShortLinkUpdate) error {
	if err := ctxAlive(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	link, ok := s.owned(update.ID, update.OwnerID)
	if !ok {
		return ErrNotFound
	}

	if update.IsActive != nil {
		link.IsActive = *update.IsActive
	}
	if update.Title != nil {
		link.Title = *update.Title
	}
	if update.Description != nil {
		link.Description = *update.Description
	}
	if update.Tags != nil {
		link.Tags = slices.Clone(update.Tags)
	}
	link.UpdatedAt = update.UpdatedAt
	s.byID[link.ID] = link

	return nil
}

func (s *memShortLinkStore) Delete(ctx context.Context, id int64, ownerID string) error {
	if err := ctxAlive(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	link, ok := s.owned(id, ownerID)
	if !ok {
		return ErrNotFound
	}
	delete(s.byID, id)
	delete(s.byCode, link.Code)

	return nil
}

func (s *memShortLinkStore) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]models.ShortLink, int64, error) {
	if err := ctxAlive(ctx); err != nil {
		return nil, 0, err
	}

	s.mu.Lock()
	owned := make([]models.ShortLink, 0)
	for _, link := range s.byID {
		if ownerID != "" && link.OwnerID == ownerID {
			owned = append(owned, cloneLink(link))
		}
	}
	s.mu.Unlock()

	slices.SortFunc(owned, func(a, b models.ShortLink) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	total := int64(len(owned))
	if offset >= len(owned) {
		return []models.ShortLink{}, total, nil
	}

	end := min(offset+limit, len(owned))
	return owned[offset:end], total, nil
}

func (s *memShortLinkStore) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if err := ctxAlive(ctx); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, link := range s.byID {
		if link.ExpiresAt != nil && link.ExpiresAt.Before(cutoff) {
			delete(s.byID, id)
			delete(s.byCode, link.Code)
			deleted++
		}
	}

	return deleted, nil
}

// owned must be called with mu held. Anonymous links have no owner and
// never match.
func (s *memShortLinkStore) owned(id int64, ownerID string) (models.ShortLink, bool) {
	link, ok := s.byID[id]
	if !ok || ownerID == "" || link.OwnerID != ownerID {
		return models.ShortLink{}, false
	}
	return link, true
}

func cloneLink(link models.ShortLink) models.ShortLink {
	link.Tags = slices.Clone(link.Tags)
	if link.ExpiresAt != nil {
		t := *link.ExpiresAt
		link.ExpiresAt = &t
	}
	return link
}

// ctxAlive reports a cancelled or expired context as [ErrStorageUnavailable].
func ctxAlive(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return nil
}
