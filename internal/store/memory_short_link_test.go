package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-qr-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insertLink(t *testing.T, s ShortLinkStore, code, owner string, createdAt time.Time) models.ShortLink {
	t.Helper()
	link, err := s.InsertUnique(context.Background(), models.ShortLink{
		Code:        code,
		OwnerID:     owner,
		OriginalURL: "https://example.com/" + code,
		IsActive:    true,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	})
	require.NoError(t, err)
	return link
}

func TestMemShortLinkStore_InsertAndFind(t *testing.T) {
	s := NewMemShortLinkStore()
	ctx := context.Background()

	created := insertLink(t, s, "abc123", "owner", time.Now().UTC())
	assert.Equal(t, int64(1), created.ID)

	found, err := s.FindByCode(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, created, found)

	_, err = s.FindByCode(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemShortLinkStore_InsertConflict(t *testing.T) {
	s := NewMemShortLinkStore()
	insertLink(t, s, "dup", "", time.Now())

	_, err := s.InsertUnique(context.Background(), models.ShortLink{Code: "dup"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestMemShortLinkStore_ReturnsCopies(t *testing.T) {
	s := NewMemShortLinkStore()
	ctx := context.Background()

	expires := time.Now().Add(time.Hour)
	link, err := s.InsertUnique(ctx, models.ShortLink{Code: "c", Tags: []string{"a"}, ExpiresAt: &expires})
	require.NoError(t, err)

	link.Tags[0] = "mutated"
	*link.ExpiresAt = time.Time{}

	found, err := s.FindByCode(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, found.Tags)
	assert.True(t, found.ExpiresAt.Equal(expires))
}

func TestMemShortLinkStore_OwnerScoping(t *testing.T) {
	s := NewMemShortLinkStore()
	ctx := context.Background()

	mine := insertLink(t, s, "mine", "alice", time.Now())
	anon := insertLink(t, s, "anon", "", time.Now())

	_, err := s.FindByIDAndOwner(ctx, mine.ID, "bob")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.FindByIDAndOwner(ctx, anon.ID, "")
	assert.ErrorIs(t, err, ErrNotFound)

	active := false
	assert.ErrorIs(t, s.Update(ctx, models.ShortLinkUpdate{ID: mine.ID, OwnerID: "bob", IsActive: &active}), ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, mine.ID, "bob"), ErrNotFound)

	found, err := s.FindByIDAndOwner(ctx, mine.ID, "alice")
	require.NoError(t, err)
	assert.True(t, found.IsActive)
}

func TestMemShortLinkStore_Update(t *testing.T) {
	s := NewMemShortLinkStore()
	ctx := context.Background()
	link := insertLink(t, s, "upd", "alice", time.Now())

	active := false
	title := "renamed"
	later := time.Now().Add(time.Minute)
	require.NoError(t, s.Update(ctx, models.ShortLinkUpdate{
		ID: link.ID, OwnerID: "alice", IsActive: &active, Title: &title, UpdatedAt: later,
	}))

	found, err := s.FindByCode(ctx, "upd")
	require.NoError(t, err)
	assert.False(t, found.IsActive)
	assert.Equal(t, "renamed", found.Title)
	assert.True(t, found.UpdatedAt.Equal(later))
	assert.Equal(t, link.OriginalURL, found.OriginalURL)
}

func TestMemShortLinkStore_DeleteFreesCode(t *testing.T) {
	s := NewMemShortLinkStore()
	ctx := context.Background()
	link := insertLink(t, s, "gone", "alice", time.Now())

	require.NoError(t, s.Delete(ctx, link.ID, "alice"))
	_, err := s.FindByCode(ctx, "gone")
	assert.ErrorIs(t, err, ErrNotFound)

	insertLink(t, s, "gone", "alice", time.Now())
}

func TestMemShortLinkStore_ListByOwner(t *testing.T) {
	s := NewMemShortLinkStore()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := range 5 {
		insertLink(t, s, fmt.Sprintf("a%d", i), "alice", base.Add(time.Duration(i)*time.Minute))
	}
	// same timestamp: newer id first
	insertLink(t, s, "tie", "alice", base.Add(4*time.Minute))
	insertLink(t, s, "b0", "bob", base)
	insertLink(t, s, "anon", "", base)

	page, total, err := s.ListByOwner(ctx, "alice", 3, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(6), total)
	require.Len(t, page, 3)
	assert.Equal(t, []string{"tie", "a4", "a3"}, []string{page[0].Code, page[1].Code, page[2].Code})

	page, _, err = s.ListByOwner(ctx, "alice", 3, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"a2", "a1", "a0"}, []string{page[0].Code, page[1].Code, page[2].Code})

	page, total, err = s.ListByOwner(ctx, "alice", 3, 10)
	require.NoError(t, err)
	assert.Empty(t, page)
	assert.Equal(t, int64(6), total)

	page, total, err = s.ListByOwner(ctx, "", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, page)
	assert.Zero(t, total)
}

func TestMemShortLinkStore_DeleteExpiredBefore(t *testing.T) {
	s := NewMemShortLinkStore()
	ctx := context.Background()
	now := time.Now().UTC()

	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	for code, exp := range map[string]*time.Time{"past": &past, "future": &future, "never": nil} {
		_, err := s.InsertUnique(ctx, models.ShortLink{Code: code, ExpiresAt: exp})
		require.NoError(t, err)
	}

	n, err := s.DeleteExpiredBefore(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = s.FindByCode(ctx, "past")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.FindByCode(ctx, "future")
	assert.NoError(t, err)
	_, err = s.FindByCode(ctx, "never")
	assert.NoError(t, err)
}

func TestMemShortLinkStore_ConcurrentIncrements(t *testing.T) {
	s := NewMemShortLinkStore()
	ctx := context.Background()
	link := insertLink(t, s, "hot", "", time.Now())

	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.IncrementClicks(ctx, link.ID))
		}()
	}
	wg.Wait()

	found, err := s.FindByCode(ctx, "hot")
	require.NoError(t, err)
	assert.Equal(t, int64(100), found.ClickCount)
}

func TestMemShortLinkStore_ConcurrentInsertSameCode(t *testing.T) {
	s := NewMemShortLinkStore()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.InsertUnique(context.Background(), models.ShortLink{Code: "race"}); err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, success)
}

func TestMemShortLinkStore_CancelledContext(t *testing.T) {
	s := NewMemShortLinkStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.FindByCode(ctx, "x")
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.ErrorIs(t, err, context.Canceled)
}
