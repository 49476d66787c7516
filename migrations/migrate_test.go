// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"database/sql"
	"io/fs"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	_ = mock // не используем напрямую, goose сам будет ходить в DB

	err = Migrate(db, DialectPostgres)
	if err == nil {
		t.Fatal("expected error from Migrate, got nil")
	}

	if !strings.Contains(err.Error(), "migration error") {
		t.Errorf("expected wrapped migration error, got: %v", err)
	}
}

func TestMigrate_NilDB(t *testing.T) {
	var db *sql.DB

	err := Migrate(db, DialectPostgres)
	if err == nil {
		t.Fatal("expected error when db is nil, got nil")
	}

	if !strings.Contains(err.Error(), "db is nil") {
		t.Errorf("expected 'db is nil' error, got: %v", err)
	}
}

func TestMigrate_UnsupportedDialect(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = Migrate(db, "oracle")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported dialect")
}

func TestMigrate_SQLite(t *testing.T) {
	db, err := sql.Open("sqlite3", "file:"+t.TempDir()+"/m.db")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db, DialectSQLite))
	// idempotent
	require.NoError(t, Migrate(db, DialectSQLite))

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM short_links").Scan(&n))
	assert.Zero(t, n)
}

func TestEmbeddedMigrations_PresentForEveryDialect(t *testing.T) {
	for dialect := range gooseDialects {
		files, err := fs.Glob(embedMigrations, dialect+"/*.sql")
		require.NoError(t, err)
		assert.NotEmpty(t, files, dialect)
	}
}
