package services

import (
	"context"
	"database/sql"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/tokenvote/internal/cryptox"
	"github.com/dmitrijs2005/tokenvote/internal/logging"
	"github.com/dmitrijs2005/tokenvote/internal/server/models"
	"github.com/dmitrijs2005/tokenvote/internal/server/repositories/repomanager"
)

const (
	maxUserAgentLen = 400
	maxReasonLen    = 200
)

// Attempt describes one verify or redeem call for the audit log. Token and
// VoterID are given in clear and hashed before storage.
type Attempt struct {
	Token     string
	VoterID   string
	IP        string
	UserAgent string
	SessionID string
	Success   bool
	Reason    string
}

// AuditLog appends attempts to the audit table. Writes are best-effort: a
// failure is logged and never reaches the voter.
type AuditLog struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *cryptox.Hasher
	logger      logging.Logger
	now         func() time.Time
}

func NewAuditLog(db *sql.DB, m repomanager.RepositoryManager, hasher *cryptox.Hasher, logger logging.Logger) *AuditLog {
	return &AuditLog{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		logger:      logger.With("module", "audit"),
		now:         time.Now,
	}
}

// Record stores a. It runs detached from ctx cancellation so an attempt is
// still logged when the client has already gone away.
func (a *AuditLog) Record(ctx context.Context, at Attempt) {
	ctx = context.WithoutCancel(ctx)

	e := &models.AuditEntry{
		TokenHash: a.hasher.Sum(at.Token),
		VoterHash: a.hasher.Sum(at.VoterID),
		IP:        at.IP,
		UserAgent: truncate(at.UserAgent, maxUserAgentLen),
		SessionID: at.SessionID,
		CreatedAt: a.now(),
		Success:   at.Success,
		Reason:    truncate(at.Reason, maxReasonLen),
	}

	if err := a.repomanager.Audit(a.db).Create(ctx, e); err != nil {
		a.logger.Error(ctx, "audit write failed", "reason", e.Reason, "session", at.SessionID, "error", err)
	}
}

// CountRecentFailures counts failed attempts of sessionID inside the trailing window.
func (a *AuditLog) CountRecentFailures(ctx context.Context, sessionID string, window time.Duration) (int64, error) {
	return a.repomanager.Audit(a.db).CountFailuresSince(ctx, sessionID, a.now().Add(-window))
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	s = s[:n]
	for len(s) > 0 && !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}
