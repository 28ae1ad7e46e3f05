// Package audit persists the append-only attempt log.
package audit

import (
	"context"
	"time"

	"github.com/dmitrijs2005/tokenvote/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, e *models.AuditEntry) error
	CountFailuresSince(ctx context.Context, sessionID string, since time.Time) (int64, error)
}
