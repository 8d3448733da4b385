package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/userauth/internal/dbx"
	"github.com/dmitrijs2005/userauth/internal/server/migrations"
	"github.com/dmitrijs2005/userauth/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager vends SQLite-backed repositories.
type SQLiteRepositoryManager struct{}

func (m *SQLiteRepositoryManager) Dialect() Dialect { return DialectSQLite }

func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return gooseUp(ctx, goose.DialectSQLite3, db, migrations.SQLite())
}

// SQLiteDSN turns a configured URL into a modernc DSN: the "sqlite:" and
// "sqlite://" prefixes are dropped, "file:" URIs and plain paths are kept.
func SQLiteDSN(databaseURL string) string {
	dsn := strings.TrimSpace(databaseURL)
	for _, prefix := range []string{"sqlite://", "sqlite:"} {
		if strings.HasPrefix(dsn, prefix) {
			return strings.TrimPrefix(dsn, prefix)
		}
	}
	return dsn
}

// openSQLite uses a single connection: an in-memory database lives only as
// long as its connection, and SQLite allows one writer at a time anyway.
func openSQLite(databaseURL string) (*sql.DB, error) {
	dsn := SQLiteDSN(databaseURL)
	if dsn == "" {
		return nil, fmt.Errorf("db open error: empty sqlite path")
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
