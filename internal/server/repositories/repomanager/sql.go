package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/tokenvote/internal/dbx"
	"github.com/dmitrijs2005/tokenvote/internal/server/migrations"
	"github.com/dmitrijs2005/tokenvote/internal/server/repositories/audit"
	"github.com/dmitrijs2005/tokenvote/internal/server/repositories/ratelimits"
	"github.com/dmitrijs2005/tokenvote/internal/server/repositories/tallies"
	"github.com/dmitrijs2005/tokenvote/internal/server/repositories/tokens"
	"github.com/pressly/goose/v3"
)

// SQLRepositoryManager vends database/sql repositories for one dialect.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
}

func (m *SQLRepositoryManager) Dialect() dbx.Dialect {
	return m.dialect
}

func (m *SQLRepositoryManager) Tokens(db dbx.DBTX) tokens.Repository {
	return tokens.NewSQLRepository(db, m.dialect)
}

func (m *SQLRepositoryManager) Tallies(db dbx.DBTX) tallies.Repository {
	return tallies.NewSQLRepository(db, m.dialect)
}

func (m *SQLRepositoryManager) Audit(db dbx.DBTX) audit.Repository {
	return audit.NewSQLRepository(db, m.dialect)
}

func (m *SQLRepositoryManager) RateLimits(db dbx.DBTX) ratelimits.Repository {
	return ratelimits.NewSQLRepository(db, m.dialect)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// migrationsDir maps a dialect to its directory inside migrations.Migrations.
func migrationsDir(d dbx.Dialect) string {
	if d == dbx.Postgres {
		return "postgres"
	}
	return "sqlite"
}

// RunMigrations applies the embedded migrations for the manager's dialect.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(m.dialect.GooseDialect()); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, migrationsDir(m.dialect)); err != nil {
		return err
	}
	return nil
}

// NewSQLRepositoryManager constructs a RepositoryManager for the given dialect.
func NewSQLRepositoryManager(d dbx.Dialect) (RepositoryManager, error) {
	switch d {
	case dbx.SQLite, dbx.Postgres:
		return &SQLRepositoryManager{dialect: d}, nil
	}
	return nil, fmt.Errorf("unsupported dialect %q", d)
}
