package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tokenvote/internal/dbx"
	"github.com/dmitrijs2005/tokenvote/internal/server/config"
	"github.com/dmitrijs2005/tokenvote/internal/server/repositories/repomanager"
)

// RateLimitKey builds the limiter key for a client.
func RateLimitKey(ip, sessionID string) string {
	return fmt.Sprintf("ip:%s|sid:%s", ip, sessionID)
}

// RateLimiter is a sliding-window counter over the rate_limits table plus
// the failure-based slowdown read from the audit log.
type RateLimiter struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	audit       *AuditLog
	limit       config.RateLimitConfig
	delay       config.FailDelayConfig
	now         func() time.Time
}

func NewRateLimiter(db *sql.DB, m repomanager.RepositoryManager, audit *AuditLog,
	limit config.RateLimitConfig, delay config.FailDelayConfig) *RateLimiter {
	return &RateLimiter{
		db:          db,
		repomanager: m,
		audit:       audit,
		limit:       limit,
		delay:       delay,
		now:         time.Now,
	}
}

// CheckAndRecord purges expired entries of every key, then admits the request
// and records it if key has fewer than the maximum entries in the window.
// A denied request leaves no trace in the table.
func (l *RateLimiter) CheckAndRecord(ctx context.Context, key string) (bool, error) {
	now := l.now()
	allowed := false

	err := dbx.WithTx(ctx, l.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := l.repomanager.RateLimits(tx)

		if err := repo.PurgeBefore(ctx, now.Add(-l.limit.Window)); err != nil {
			return err
		}
		n, err := repo.Count(ctx, key)
		if err != nil {
			return err
		}
		if n >= int64(l.limit.MaxRequests) {
			return nil
		}
		if err := repo.Insert(ctx, key, now); err != nil {
			return err
		}
		allowed = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return allowed, nil
}

// ComputeDelay returns min(Cap, failures*PerFail) for the session's recent failures.
func (l *RateLimiter) ComputeDelay(ctx context.Context, sessionID string) (time.Duration, error) {
	n, err := l.audit.CountRecentFailures(ctx, sessionID, l.delay.Window)
	if err != nil {
		return 0, err
	}
	return FailDelay(n, l.delay), nil
}

// FailDelay is the pure delay formula.
func FailDelay(failures int64, cfg config.FailDelayConfig) time.Duration {
	if failures <= 0 {
		return 0
	}
	d := time.Duration(failures) * cfg.PerFail
	if d > cfg.Cap || d < 0 {
		return cfg.Cap
	}
	return d
}
