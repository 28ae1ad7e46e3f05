// Package storagetest opens migrated SQLite databases for tests.
package storagetest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/tokenvote/internal/dbx"
	"github.com/dmitrijs2005/tokenvote/internal/server/migrations"
	"github.com/dmitrijs2005/tokenvote/internal/server/storage"
	"github.com/pressly/goose/v3"
)

// OpenSQLite creates a file-backed database in t.TempDir with the full
// schema applied. The handle is closed on cleanup.
func OpenSQLite(t testing.TB) *sql.DB {
	t.Helper()
	return OpenSQLiteWithTimeout(t, 10*time.Second)
}

// OpenSQLiteWithTimeout is OpenSQLite with an explicit busy timeout.
func OpenSQLiteWithTimeout(t testing.TB, busy time.Duration) *sql.DB {
	t.Helper()

	ctx := context.Background()
	db, err := storage.Open(ctx, dbx.SQLite, filepath.Join(t.TempDir(), "vote.db"), busy)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(dbx.SQLite.GooseDialect()); err != nil {
		t.Fatalf("goose dialect: %v", err)
	}
	goose.SetLogger(goose.NopLogger())
	if err := goose.UpContext(ctx, db, "sqlite"); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
