// Package storage opens the database handle for the configured dialect with
// the settings the voting core depends on: write-ahead logging, a bounded
// wait for the exclusive write scope, and immediate transactions on SQLite.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/tokenvote/internal/dbx"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// sqliteMaxOpenConns bounds the pool; SQLite has a single writer anyway and
// a small pool keeps waiting writers inside the busy handler instead of the
// database/sql queue.
const sqliteMaxOpenConns = 8

// DSN decorates dsn with the per-dialect settings.
//
// SQLite: journal_mode=WAL, busy_timeout, synchronous=NORMAL, foreign_keys and
// _txlock=immediate so every BeginTx issues BEGIN IMMEDIATE and takes the
// write lock before the first read.
//
// Postgres: lock_timeout as a runtime parameter so a blocked FOR UPDATE fails
// instead of hanging.
func DSN(d dbx.Dialect, dsn string, busy time.Duration) (string, error) {
	ms := strconv.FormatInt(busy.Milliseconds(), 10)

	switch d {
	case dbx.SQLite:
		params := []string{
			"_pragma=journal_mode(WAL)",
			"_pragma=busy_timeout(" + ms + ")",
			"_pragma=synchronous(NORMAL)",
			"_pragma=foreign_keys(ON)",
			"_txlock=immediate",
		}
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		if !strings.HasPrefix(dsn, "file:") {
			dsn = "file:" + dsn
		}
		return dsn + sep + strings.Join(params, "&"), nil

	case dbx.Postgres:
		if strings.Contains(dsn, "://") {
			u, err := url.Parse(dsn)
			if err != nil {
				return "", fmt.Errorf("parse dsn: %w", err)
			}
			q := u.Query()
			q.Set("lock_timeout", ms)
			u.RawQuery = q.Encode()
			return u.String(), nil
		}
		return strings.TrimSpace(dsn + " lock_timeout=" + ms), nil
	}
	return "", fmt.Errorf("unsupported dialect %q", d)
}

// Open opens and pings the database.
func Open(ctx context.Context, d dbx.Dialect, dsn string, busy time.Duration) (*sql.DB, error) {
	full, err := DSN(d, dsn, busy)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(d.DriverName(), full)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if d == dbx.SQLite {
		db.SetMaxOpenConns(sqliteMaxOpenConns)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	return db, nil
}
