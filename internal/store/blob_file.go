// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-qr-keeper/internal/logger"
	"github.com/MKhiriev/go-qr-keeper/models"
)

type fileBlobStore struct {
	dir    string
	logger *logger.Logger
}

// NewFileBlobStore returns a [BlobStore] that keeps one file per blob in dir.
// The directory is created if it does not exist.
func NewFileBlobStore(dir string, log *logger.Logger) (BlobStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		log.Err(err).Str("func", "NewFileBlobStore").Str("dir", dir).Msg("error creating blob directory")
		return nil, fmt.Errorf("%w: create blob directory: %w", ErrStorageUnavailable, err)
	}

	return &fileBlobStore{dir: dir, logger: log}, nil
}

// Put writes data to a temporary file, fsyncs it and renames it into
// place, so a locator is only returned for a complete blob.
func (s *fileBlobStore) Put(ctx context.Context, data []byte) (models.BlobReference, error) {
	if err := ctxAlive(ctx); err != nil {
		return models.BlobReference{}, err
	}

	locator := newLocator()

	tmp, err := os.CreateTemp(s.dir, ".blob-*")
	if err != nil {
		return models.BlobReference{}, s.fail("create temp file", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	if _, err = tmp.Write(data); err != nil {
		cleanup()
		return models.BlobReference{}, s.fail("write blob", err)
	}
	if err = tmp.Sync(); err != nil {
		cleanup()
		return models.BlobReference{}, s.fail("sync blob", err)
	}
	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return models.BlobReference{}, s.fail("close blob", err)
	}

	if err = ctxAlive(ctx); err != nil {
		_ = os.Remove(tmpName)
		return models.BlobReference{}, err
	}

	if err = os.Rename(tmpName, s.path(locator)); err != nil {
		_ = os.Remove(tmpName)
		return models.BlobReference{}, s.fail("rename blob", err)
	}

	return models.BlobReference{Locator: locator, Size: int64(len(data))}, nil
}

func (s *fileBlobStore) Get(ctx context.Context, locator string) ([]byte, error) {
	if err := ctxAlive(ctx); err != nil {
		return nil, err
	}
	if !validLocator(locator) {
		return nil, ErrBlobNotFound
	}

	data, err := os.ReadFile(s.path(locator))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, s.fail("read blob", err)
	}

	return data, nil
}

func (s *fileBlobStore) Delete(ctx context.Context, locator string) error {
	if err := ctxAlive(ctx); err != nil {
		return err
	}
	if !validLocator(locator) {
		return nil
	}

	err := os.Remove(s.path(locator))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return s.fail("delete blob", err)
	}

	return nil
}

func (s *fileBlobStore) path(locator string) string {
	return filepath.Join(s.dir, locator)
}

func (s *fileBlobStore) fail(op string, err error) error {
	s.logger.Err(err).Str("func", "fileBlobStore").Str("op", op).Msg("blob store failure")
	return fmt.Errorf("%w: %s: %w", ErrStorageUnavailable, op, err)
}
