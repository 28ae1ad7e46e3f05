package ratelimits

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tokenvote/internal/dbx"
)

// Timestamps are stored as unix milliseconds.
type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

// PurgeBefore deletes entries of every key older than cutoff.
func (r *SQLRepository) PurgeBefore(ctx context.Context, cutoff time.Time) error {
	query := r.dialect.Rebind(`DELETE FROM rate_limits WHERE ts < ?`)
	if _, err := r.db.ExecContext(ctx, query, cutoff.UnixMilli()); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) Count(ctx context.Context, key string) (int64, error) {
	query := r.dialect.Rebind(`SELECT COUNT(*) FROM rate_limits WHERE key = ?`)

	var n int64
	if err := r.db.QueryRowContext(ctx, query, key).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *SQLRepository) Insert(ctx context.Context, key string, at time.Time) error {
	query := r.dialect.Rebind(`INSERT INTO rate_limits (key, ts) VALUES (?, ?)`)
	if _, err := r.db.ExecContext(ctx, query, key, at.UnixMilli()); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
