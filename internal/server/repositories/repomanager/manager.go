// Package repomanager vends repositories bound to a DBTX, so the same code
// runs against the pool or inside a transaction, and applies migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/tokenvote/internal/dbx"
	"github.com/dmitrijs2005/tokenvote/internal/server/repositories/audit"
	"github.com/dmitrijs2005/tokenvote/internal/server/repositories/ratelimits"
	"github.com/dmitrijs2005/tokenvote/internal/server/repositories/tallies"
	"github.com/dmitrijs2005/tokenvote/internal/server/repositories/tokens"
)

type RepositoryManager interface {
	Dialect() dbx.Dialect
	RunMigrations(context.Context, *sql.DB) error
	Tokens(db dbx.DBTX) tokens.Repository
	Tallies(db dbx.DBTX) tallies.Repository
	Audit(db dbx.DBTX) audit.Repository
	RateLimits(db dbx.DBTX) ratelimits.Repository
}
