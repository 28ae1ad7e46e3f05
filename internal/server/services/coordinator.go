package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tokenvote/internal/common"
	"github.com/dmitrijs2005/tokenvote/internal/dbx"
	"github.com/dmitrijs2005/tokenvote/internal/server/models"
	"github.com/dmitrijs2005/tokenvote/internal/server/repositories/repomanager"
)

// txGrace is added to the busy timeout to bound the whole vote transaction,
// so the driver's own timeout fires first in the normal case.
const txGrace = 2 * time.Second

// errDenied rolls back the vote transaction for an expected denial.
var errDenied = errors.New("vote denied")

// VoteCoordinator performs the atomic redeem: token check, tally increment
// and token update commit together or not at all.
type VoteCoordinator struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	busyTimeout time.Duration
}

func NewVoteCoordinator(db *sql.DB, m repomanager.RepositoryManager, busyTimeout time.Duration) *VoteCoordinator {
	return &VoteCoordinator{db: db, repomanager: m, busyTimeout: busyTimeout}
}

// Cast redeems token for candidateID.
//
// The transaction takes the write lock before its first read: SQLite begins
// IMMEDIATE, Postgres locks the token row with FOR UPDATE. The used flag is
// therefore checked and flipped by one writer at a time, and MarkUsed is in
// addition a compare-and-swap. The tally is incremented before the token is
// marked so a failure in either rolls both back.
//
// Cast ignores cancellation of ctx: once started, the transaction commits or
// rolls back on its own deadline. Infrastructure failures are returned wrapped
// in common.ErrUnavailable.
func (c *VoteCoordinator) Cast(ctx context.Context, token, candidateID string, r models.Redemption) (Outcome, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.busyTimeout+txGrace)
	defer cancel()

	outcome := OutcomeSuccess
	err := dbx.WithTx(ctx, c.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		tokens := c.repomanager.Tokens(tx)

		t, err := tokens.FindForUpdate(ctx, token)
		if errors.Is(err, common.ErrorNotFound) {
			outcome = OutcomeTokenNotFound
			return errDenied
		}
		if err != nil {
			return err
		}
		if t.Used {
			outcome = OutcomeTokenAlreadyUsed
			return errDenied
		}

		if _, err := c.repomanager.Tallies(tx).Increment(ctx, candidateID); err != nil {
			return err
		}

		if err := tokens.MarkUsed(ctx, token, r); err != nil {
			if errors.Is(err, common.ErrTokenAlreadyUsed) {
				outcome = OutcomeTokenAlreadyUsed
				return errDenied
			}
			return err
		}
		return nil
	})

	switch {
	case err == nil:
		return OutcomeSuccess, nil
	case errors.Is(err, errDenied):
		return outcome, nil
	default:
		return "", fmt.Errorf("%w: %w", common.ErrUnavailable, err)
	}
}
