// Package migrations embeds the goose schema migrations for every supported
// SQL dialect.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

// Supported dialects. Each has its own migration directory.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

var gooseDialects = map[string]goose.Dialect{
	DialectPostgres: goose.DialectPostgres,
	DialectSQLite:   goose.DialectSQLite3,
}

// goose keeps dialect and filesystem as package state
var gooseMu sync.Mutex

// Migrate applies all pending migrations for dialect to db.
func Migrate(db *sql.DB, dialect string) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	gooseDialect, ok := gooseDialects[dialect]
	if !ok {
		return fmt.Errorf("migration error: unsupported dialect %q", dialect)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(string(gooseDialect)); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dialect); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
