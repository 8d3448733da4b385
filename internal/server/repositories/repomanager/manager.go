// Package repomanager opens the credential store named by the configured
// database URL, applies the embedded migrations and vends repositories bound
// to either the pool or a transaction.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strings"

	"github.com/dmitrijs2005/userauth/internal/dbx"
	"github.com/dmitrijs2005/userauth/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

// RepositoryManager vends repositories for one SQL dialect.
type RepositoryManager interface {
	Dialect() Dialect
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}

type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// DialectOf picks the store for a database URL: postgres:// and
// postgresql:// select PostgreSQL, everything else is treated as SQLite
// (file:, sqlite:, :memory: or a plain path).
func DialectOf(databaseURL string) Dialect {
	u := strings.ToLower(strings.TrimSpace(databaseURL))
	if strings.HasPrefix(u, "postgres://") || strings.HasPrefix(u, "postgresql://") {
		return DialectPostgres
	}
	return DialectSQLite
}

// Open connects to the store, verifies the connection and migrates the
// schema. authToken is the optional remote credential; SQLite ignores it.
func Open(ctx context.Context, databaseURL, authToken string) (*sql.DB, RepositoryManager, error) {
	var (
		db  *sql.DB
		m   RepositoryManager
		err error
	)
	switch DialectOf(databaseURL) {
	case DialectPostgres:
		db, err = openPostgres(databaseURL, authToken)
		m = &PostgresRepositoryManager{}
	default:
		db, err = openSQLite(databaseURL)
		m = &SQLiteRepositoryManager{}
	}
	if err != nil {
		return nil, nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("db ping error: %w", err)
	}
	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migration error: %w", err)
	}
	return db, m, nil
}

// gooseUp is a seam for tests.
var gooseUp = func(ctx context.Context, dialect goose.Dialect, db *sql.DB, fsys fs.FS) error {
	p, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return err
	}
	_, err = p.Up(ctx)
	return err
}
