package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-qr-keeper/internal/logger"
	"github.com/MKhiriev/go-qr-keeper/migrations"
)

// DB is a database handle bound to one SQL dialect.
type DB struct {
	*sql.DB
	dialect            string
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies the embedded migrations for the handle's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// wrapError maps a driver error onto the store sentinels. The original
// error stays in the chain for logging.
func (db *DB) wrapError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return ErrNotFound
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %s: %w", ErrStorageUnavailable, op, err)
	}

	if db.errorClassificator != nil {
		if classified := db.errorClassificator.Classify(err); classified != nil {
			return fmt.Errorf("%w: %s: %w", classified, op, err)
		}
	}

	return fmt.Errorf("%w: %s: %w", ErrStorageUnavailable, op, err)
}
