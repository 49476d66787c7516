package store

import (
	"bytes"
	"context"
	"sync"

	"github.com/MKhiriev/go-qr-keeper/models"
)

type memBlobStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemBlobStore returns an in-process [BlobStore]. Contents are lost on
// restart.
func NewMemBlobStore() BlobStore {
	return &memBlobStore{blobs: make(map[string][]byte)}
}

func (s *memBlobStore) Put(ctx context.Context, data []byte) (models.BlobReference, error) {
	if err := ctxAlive(ctx); err != nil {
		return models.BlobReference{}, err
	}

	locator := newLocator()

	s.mu.Lock()
	s.blobs[locator] = bytes.Clone(data)
	s.mu.Unlock()

	return models.BlobReference{Locator: locator, Size: int64(len(data))}, nil
}

func (s *memBlobStore) Get(ctx context.Context, locator string) ([]byte, error) {
	if err := ctxAlive(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	data, ok := s.blobs[locator]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrBlobNotFound
	}

	return bytes.Clone(data), nil
}

func (s *memBlobStore) Delete(ctx context.Context, locator string) error {
	if err := ctxAlive(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.blobs, locator)
	s.mu.Unlock()

	return nil
}
