package audit

import (
	"context"
	"fmt"
	"time"

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

func (r *SQLRepository) Create(ctx context.Context, e *models.AuditEntry) error {
	query := r.dialect.Rebind(
		`INSERT INTO audit_log (token_hash, voter_hash, ip, user_agent, session_id, created_at, success, reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		e.TokenHash, e.VoterHash, e.IP, e.UserAgent, e.SessionID,
		timex.FormatTimestamp(e.CreatedAt), e.Success, e.Reason)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// CountFailuresSince counts unsuccessful attempts of one session at or after since.
func (r *SQLRepository) CountFailuresSince(ctx context.Context, sessionID string, since time.Time) (int64, error) {
	query := r.dialect.Rebind(
		`SELECT COUNT(*) FROM audit_log
		 WHERE session_id = ? AND success = ? AND created_at >= ?`)

	var n int64
	err := r.db.QueryRowContext(ctx, query, sessionID, false, timex.FormatTimestamp(since)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
