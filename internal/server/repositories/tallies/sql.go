package tallies

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/tokenvote/internal/dbx"
)

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

// Increment adds one vote in a single statement: the upsert either creates
// the row at 1 or bumps it, and returns the new count.
func (r *SQLRepository) Increment(ctx context.Context, candidateID string) (int64, error) {
	query := r.dialect.Rebind(
		`INSERT INTO votes (candidate_id, vote_count) VALUES (?, 1)
		 ON CONFLICT (candidate_id) DO UPDATE SET vote_count = votes.vote_count + 1
		 RETURNING vote_count`)

	var count int64
	if err := r.db.QueryRowContext(ctx, query, candidateID).Scan(&count); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}

func (r *SQLRepository) Snapshot(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT candidate_id, vote_count FROM votes`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]int64)
	for rows.Next() {
		var (
			id    string
			count int64
		)
		if err := rows.Scan(&id, &count); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		totals[id] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return totals, nil
}

// Summary joins the token counts onto every tally row. It needs no
// transaction: a single SELECT already reads one consistent state, and on
// SQLite it does not take the write lock.
func (r *SQLRepository) Summary(ctx context.Context) (*Summary, error) {
	query := `SELECT v.candidate_id, v.vote_count, c.total, c.used
		 FROM (SELECT COUNT(*) AS total,
		              COALESCE(SUM(CASE WHEN used THEN 1 ELSE 0 END), 0) AS used
		       FROM tokens) c
		 LEFT JOIN votes v ON 1 = 1`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	sum := &Summary{Totals: make(map[string]int64)}
	for rows.Next() {
		var (
			id    sql.NullString
			count sql.NullInt64
		)
		if err := rows.Scan(&id, &count, &sum.Tokens, &sum.Used); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if id.Valid {
			sum.Totals[id.String] = count.Int64
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return sum, nil
}
