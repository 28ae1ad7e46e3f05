// Package tokens persists issued voting tokens and their redemption state.
package tokens

import (
	"context"

	"github.com/dmitrijs2005/tokenvote/internal/server/models"
)

// Repository is the Token Store. MarkUsed must only run inside the vote
// transaction, after FindForUpdate on the same DBTX.
type Repository interface {
	Create(ctx context.Context, token string) (bool, error)
	Find(ctx context.Context, token string) (*models.Token, error)
	FindForUpdate(ctx context.Context, token string) (*models.Token, error)
	MarkUsed(ctx context.Context, token string, r models.Redemption) error
	Counts(ctx context.Context) (total int64, used int64, err error)
}
