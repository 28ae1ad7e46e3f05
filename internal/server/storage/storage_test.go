package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/tokenvote/internal/dbx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	tests := []struct {
		name    string
		dialect dbx.Dialect
		dsn     string
		want    string
	}{
		{
			name:    "sqlite path",
			dialect: dbx.SQLite,
			dsn:     "vote.db",
			want:    "file:vote.db?_pragma=journal_mode(WAL)&_pragma=busy_timeout(10000)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)&_txlock=immediate",
		},
		{
			name:    "sqlite uri with params",
			dialect: dbx.SQLite,
			dsn:     "file:vote.db?cache=shared",
			want:    "file:vote.db?cache=shared&_pragma=journal_mode(WAL)&_pragma=busy_timeout(10000)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)&_txlock=immediate",
		},
		{
			name:    "postgres url",
			dialect: dbx.Postgres,
			dsn:     "postgres://u:p@db:5432/vote?sslmode=disable",
			want:    "postgres://u:p@db:5432/vote?lock_timeout=10000&sslmode=disable",
		},
		{
			name:    "postgres keywords",
			dialect: dbx.Postgres,
			dsn:     "host=db user=u dbname=vote",
			want:    "host=db user=u dbname=vote lock_timeout=10000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DSN(tt.dialect, tt.dsn, 10*time.Second)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := DSN(dbx.Dialect("mysql"), "x", time.Second)
	require.Error(t, err)
}

func TestOpen_SQLiteAppliesPragmas(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "vote.db")

	db, err := Open(ctx, dbx.SQLite, path, 3*time.Second)
	require.NoError(t, err)
	defer db.Close()

	var mode string
	require.NoError(t, db.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	var busy int
	require.NoError(t, db.QueryRowContext(ctx, "PRAGMA busy_timeout").Scan(&busy))
	assert.Equal(t, 3000, busy)
}
