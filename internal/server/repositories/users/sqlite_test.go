package users

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/userauth/internal/common"
	"github.com/dmitrijs2005/userauth/internal/server/migrations"
	"github.com/dmitrijs2005/userauth/internal/server/models"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	p, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.SQLite())
	require.NoError(t, err)
	_, err = p.Up(context.Background())
	require.NoError(t, err)
	return db
}

func TestSQLiteCreateAndGet(t *testing.T) {
	repo := NewSQLiteRepository(setupSQLite(t))
	ctx := context.Background()
	before := time.Now().Add(-2 * time.Second)

	u, err := repo.Create(ctx, &models.User{Name: "T", Email: "t@e.com", PasswordHash: "h"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.True(t, u.CreatedAt.After(before), "created_at set by the store")

	got, err := repo.GetUserByEmail(ctx, "t@e.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "T", got.Name)
	assert.Equal(t, "h", got.PasswordHash)
	assert.Equal(t, u.CreatedAt, got.CreatedAt)
}

func TestSQLiteGetUserByEmail_NotFound(t *testing.T) {
	repo := NewSQLiteRepository(setupSQLite(t))

	_, err := repo.GetUserByEmail(context.Background(), "ghost@e.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLiteCreate_DuplicateEmail(t *testing.T) {
	repo := NewSQLiteRepository(setupSQLite(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.User{Name: "A", Email: "dup@e.com", PasswordHash: "h"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.User{Name: "B", Email: "dup@e.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, common.ErrEmailTaken)
}

func TestSQLiteList_InsertionOrder(t *testing.T) {
	repo := NewSQLiteRepository(setupSQLite(t))
	ctx := context.Background()

	empty, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, name := range []string{"Alice", "Bob", "Charlie"} {
		_, err := repo.Create(ctx, &models.User{Name: name, Email: name + "@example.com", PasswordHash: "h"})
		require.NoError(t, err)
	}

	got, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Alice", got[0].Name)
	assert.Equal(t, "Charlie", got[2].Name)
}

func TestSQLite_ClosedDB(t *testing.T) {
	db := setupSQLite(t)
	repo := NewSQLiteRepository(db)
	require.NoError(t, db.Close())

	_, err := repo.List(context.Background())
	assert.ErrorContains(t, err, "db error")

	_, err = repo.GetUserByEmail(context.Background(), "x@e.com")
	assert.ErrorContains(t, err, "db error")
}
