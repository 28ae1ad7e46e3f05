package dbx

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect names a supported database/sql driver and carries the few SQL
// differences the repositories need to care about.
type Dialect string

const (
	// SQLite is modernc.org/sqlite. Exclusivity comes from BEGIN IMMEDIATE.
	SQLite Dialect = "sqlite"
	// Postgres is github.com/jackc/pgx/v5/stdlib. Exclusivity comes from row locks.
	Postgres Dialect = "pgx"
)

// ParseDialect validates a driver name from configuration.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "pgx", "postgres", "postgresql":
		return Postgres, nil
	}
	return "", fmt.Errorf("unsupported database driver %q", s)
}

// DriverName is the name registered with database/sql.
func (d Dialect) DriverName() string {
	return string(d)
}

// GooseDialect is the dialect name understood by goose.SetDialect.
func (d Dialect) GooseDialect() string {
	if d == Postgres {
		return "postgres"
	}
	return "sqlite3"
}

// Rebind rewrites '?' placeholders into '$n' for Postgres.
// Queries are written once with '?' and rebound per dialect.
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// LockClause is appended to a SELECT that opens the redemption critical section.
// SQLite has no row locks; its transactions are already IMMEDIATE.
func (d Dialect) LockClause() string {
	if d == Postgres {
		return " FOR UPDATE"
	}
	return ""
}
