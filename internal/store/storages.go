package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-qr-keeper/internal/config"
	"github.com/MKhiriev/go-qr-keeper/internal/logger"
)

var errUnknownDSN = errors.New("unrecognised storage DSN")

// Backend names reported by [Storages.Backend].
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Storages bundles the record store and the blob store selected by the
// configuration.
type Storages struct {
	ShortLinks ShortLinkStore
	Blobs      BlobStore

	backend string
	db      *DB
}

// NewStorages opens the backends described by cfg. SQL backends are
// migrated before they are returned.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	s := &Storages{}

	switch backend := dsnBackend(cfg.DB.DSN); backend {
	case BackendPostgres, BackendSQLite:
		var (
			db  *DB
			err error
		)
		if backend == BackendPostgres {
			db, err = NewConnectPostgres(ctx, cfg.DB, log)
		} else {
			db, err = NewConnectSQLite(ctx, cfg.DB, log)
		}
		if err != nil {
			return nil, err
		}
		if err = db.Migrate(); err != nil {
			log.Err(err).Str("func", "NewStorages").Str("backend", backend).Msg("error applying migrations")
			_ = db.Close()
			return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
		}
		s.db = db
		s.backend = backend
		s.ShortLinks = NewShortLinkRepository(db, log)
	case BackendMemory:
		s.backend = BackendMemory
		s.ShortLinks = NewMemShortLinkStore()
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownDSN, cfg.DB.DSN)
	}

	blobs, err := newBlobStore(ctx, cfg, log)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	s.Blobs = blobs

	log.Info().Str("func", "NewStorages").Str("backend", s.backend).Msg("storages initialized")

	return s, nil
}

// Backend names the record store in use.
func (s *Storages) Backend() string {
	return s.backend
}

// Ping checks that the record store is reachable.
func (s *Storages) Ping(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return nil
}

// Close releases the database handle, if any.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func newBlobStore(ctx context.Context, cfg config.Storage, log *logger.Logger) (BlobStore, error) {
	switch {
	case cfg.S3.Bucket != "":
		return NewS3BlobStore(ctx, cfg.S3, log)
	case cfg.Files.BlobDir != "":
		return NewFileBlobStore(cfg.Files.BlobDir, log)
	default:
		return NewMemBlobStore(), nil
	}
}

func dsnBackend(dsn string) string {
	dsn = strings.TrimSpace(dsn)
	lower := strings.ToLower(dsn)

	switch {
	case dsn == "", lower == BackendMemory:
		return BackendMemory
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return BackendPostgres
	case strings.HasPrefix(lower, "file:"),
		strings.HasSuffix(lower, ".db"),
		strings.HasSuffix(lower, ".sqlite"),
		strings.HasSuffix(lower, ".sqlite3"):
		return BackendSQLite
	default:
		return ""
	}
}

