package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/userauth/internal/server/models"
	"github.com/dmitrijs2005/userauth/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectOf(t *testing.T) {
	tests := map[string]Dialect{
		"postgres://u:p@localhost:5432/app":   DialectPostgres,
		"POSTGRESQL://localhost/app":          DialectPostgres,
		"file:local.db":                       DialectSQLite,
		"sqlite://data/app.db":                DialectSQLite,
		":memory:":                            DialectSQLite,
		"/var/lib/app/users.db":               DialectSQLite,
		"  postgres://padded.example.com/db ": DialectPostgres,
	}
	for in, want := range tests {
		assert.Equal(t, want, DialectOf(in), in)
	}
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "data/app.db", SQLiteDSN("sqlite://data/app.db"))
	assert.Equal(t, "app.db", SQLiteDSN("sqlite:app.db"))
	assert.Equal(t, "file:local.db", SQLiteDSN("file:local.db"))
	assert.Equal(t, ":memory:", SQLiteDSN(":memory:"))
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	assert.IsType(t, &users.PostgresRepository{}, (&PostgresRepositoryManager{}).Users(db))
	assert.IsType(t, &users.SQLiteRepository{}, (&SQLiteRepositoryManager{}).Users(db))
	assert.Equal(t, DialectPostgres, (&PostgresRepositoryManager{}).Dialect())
	assert.Equal(t, DialectSQLite, (&SQLiteRepositoryManager{}).Dialect())
}

func TestOpen_SQLiteMigratesAndWorks(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "app.db")

	db, m, err := Open(ctx, "file:"+path, "ignored-token")
	require.NoError(t, err)
	defer db.Close()
	assert.Equal(t, DialectSQLite, m.Dialect())

	repo := m.Users(db)
	_, err = repo.Create(ctx, &models.User{Name: "T", Email: "t@e.com", PasswordHash: "h"})
	require.NoError(t, err)

	// reopening applies no new migrations and keeps data
	require.NoError(t, db.Close())
	db2, m2, err := Open(ctx, "sqlite:"+path, "")
	require.NoError(t, err)
	defer db2.Close()

	list, err := m2.Users(db2).List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestOpen_InMemory(t *testing.T) {
	db, m, err := Open(context.Background(), ":memory:", "")
	require.NoError(t, err)
	defer db.Close()

	list, err := m.Users(db).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestOpen_Errors(t *testing.T) {
	_, _, err := Open(context.Background(), "postgres://bad host:port/db", "")
	assert.ErrorContains(t, err, "db config error")

	_, _, err = Open(context.Background(), "sqlite:", "")
	assert.ErrorContains(t, err, "empty sqlite path")
}

func TestRunMigrations_PropagatesGooseError(t *testing.T) {
	orig := gooseUp
	t.Cleanup(func() { gooseUp = orig })

	var gotDialect goose.Dialect
	gooseUp = func(ctx context.Context, dialect goose.Dialect, db *sql.DB, fsys fs.FS) error {
		gotDialect = dialect
		return errors.New("boom")
	}

	err := (&PostgresRepositoryManager{}).RunMigrations(context.Background(), nil)
	assert.EqualError(t, err, "boom")
	assert.Equal(t, goose.DialectPostgres, gotDialect)
}
