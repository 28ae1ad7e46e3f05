package tokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tokenvote/internal/common"
	"github.com/dmitrijs2005/tokenvote/internal/dbx"
	"github.com/dmitrijs2005/tokenvote/internal/server/models"
	"github.com/dmitrijs2005/tokenvote/internal/timex"
)

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

// Create inserts a fresh unused token. It reports false, without error, when
// the token already exists so the caller can draw another one.
func (r *SQLRepository) Create(ctx context.Context, token string) (bool, error) {
	query := r.dialect.Rebind(
		`INSERT INTO tokens (token, used) VALUES (?, ?)
		 ON CONFLICT (token) DO NOTHING`)

	res, err := r.db.ExecContext(ctx, query, token, false)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n == 1, nil
}

const selectToken = `SELECT id, token, used, used_at, used_ip, used_session, voter_id, vote
		 FROM tokens
		 WHERE token = ?`

func (r *SQLRepository) Find(ctx context.Context, token string) (*models.Token, error) {
	return r.find(ctx, r.dialect.Rebind(selectToken), token)
}

// FindForUpdate reads the token and, on Postgres, locks its row until the
// surrounding transaction ends.
func (r *SQLRepository) FindForUpdate(ctx context.Context, token string) (*models.Token, error) {
	return r.find(ctx, r.dialect.Rebind(selectToken+r.dialect.LockClause()), token)
}

func (r *SQLRepository) find(ctx context.Context, query string, token string) (*models.Token, error) {
	var (
		t                          models.Token
		usedAt, ip, session, voter sql.NullString
		vote                       sql.NullString
	)

	err := r.db.QueryRowContext(ctx, query, token).
		Scan(&t.ID, &t.Token, &t.Used, &usedAt, &ip, &session, &voter, &vote)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if usedAt.Valid {
		at, err := timex.ParseTimestamp(usedAt.String)
		if err != nil {
			return nil, fmt.Errorf("db error: bad used_at %q: %w", usedAt.String, err)
		}
		t.UsedAt = &at
	}
	t.UsedIP = ip.String
	t.UsedSession = session.String
	t.VoterID = voter.String
	t.Vote = vote.String

	return &t, nil
}

// MarkUsed flips used from false to true. The WHERE clause makes it a
// compare-and-swap: if another writer got there first no row changes and
// common.ErrTokenAlreadyUsed is returned. A token that was never issued
// yields common.ErrorNotFound.
func (r *SQLRepository) MarkUsed(ctx context.Context, token string, m models.Redemption) error {
	query := r.dialect.Rebind(
		`UPDATE tokens
		 SET used = ?, used_at = ?, used_ip = ?, used_session = ?, voter_id = ?, vote = ?
		 WHERE token = ? AND used = ?`)

	res, err := r.db.ExecContext(ctx, query,
		true, timex.FormatTimestamp(m.At), m.IP, m.SessionID, m.VoterID, models.VotePlaceholder,
		token, false)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return r.missOutcome(ctx, token)
	}
	return nil
}

// missOutcome tells an already used token apart from an unknown one after
// the update matched nothing.
func (r *SQLRepository) missOutcome(ctx context.Context, token string) error {
	query := r.dialect.Rebind(`SELECT 1 FROM tokens WHERE token = ?`)

	var one int
	err := r.db.QueryRowContext(ctx, query, token).Scan(&one)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return common.ErrorNotFound
	case err != nil:
		return fmt.Errorf("db error: %w", err)
	}
	return common.ErrTokenAlreadyUsed
}

func (r *SQLRepository) Counts(ctx context.Context) (int64, int64, error) {
	query := `SELECT COUNT(*), COALESCE(SUM(CASE WHEN used THEN 1 ELSE 0 END), 0) FROM tokens`

	var total, used int64
	if err := r.db.QueryRowContext(ctx, query).Scan(&total, &used); err != nil {
		return 0, 0, fmt.Errorf("db error: %w", err)
	}
	return total, used, nil
}
