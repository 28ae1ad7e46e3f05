package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/tokenvote/internal/dbx"
	"github.com/dmitrijs2005/tokenvote/internal/server/repositories/tokens"
	"github.com/dmitrijs2005/tokenvote/internal/server/storage"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestNewSQLRepositoryManager(t *testing.T) {
	m, err := NewSQLRepositoryManager(dbx.Postgres)
	require.NoError(t, err)
	assert.Equal(t, dbx.Postgres, m.Dialect())

	_, err = NewSQLRepositoryManager(dbx.Dialect("mysql"))
	require.Error(t, err)
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	m := &SQLRepositoryManager{dialect: dbx.SQLite}

	assert.NotNil(t, m.Tokens(db))
	assert.NotNil(t, m.Tallies(db))
	assert.NotNil(t, m.Audit(db))
	assert.NotNil(t, m.RateLimits(db))

	var _ tokens.Repository = m.Tokens(db)
}

func TestRunMigrations_UsesDialectDir(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	for d, want := range map[dbx.Dialect]string{dbx.SQLite: "sqlite", dbx.Postgres: "postgres"} {
		orig := gooseUpContext
		var got string
		gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
			got = dir
			return nil
		}

		m := &SQLRepositoryManager{dialect: d}
		require.NoError(t, m.RunMigrations(context.Background(), db))
		assert.Equal(t, want, got)

		gooseUpContext = orig
	}
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	m := &SQLRepositoryManager{dialect: dbx.Postgres}
	err := m.RunMigrations(context.Background(), db)
	require.EqualError(t, err, "boom")
}

func TestRunMigrations_SQLiteEndToEnd(t *testing.T) {
	ctx := context.Background()
	db, err := storage.Open(ctx, dbx.SQLite, t.TempDir()+"/vote.db", 0)
	require.NoError(t, err)
	defer db.Close()

	m := &SQLRepositoryManager{dialect: dbx.SQLite}
	require.NoError(t, m.RunMigrations(ctx, db))
	// idempotent
	require.NoError(t, m.RunMigrations(ctx, db))

	for _, table := range []string{"tokens", "votes", "audit_log", "rate_limits"} {
		var name string
		err := db.QueryRowContext(ctx,
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
	}
}
