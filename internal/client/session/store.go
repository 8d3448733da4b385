package session

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/userauth/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/userauth/internal/dbx"
)

const tokenKey = "token"

// SQLiteStore keeps the token in the local metadata table.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Load(ctx context.Context) (string, error) {
	v, err := metadata.NewSQLiteRepository(s.db).Get(ctx, tokenKey)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *SQLiteStore) Save(ctx context.Context, token string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Set(ctx, tokenKey, []byte(token))
	})
}

// Clear wipes all session metadata, not only the token.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	return metadata.NewSQLiteRepository(s.db).Clear(ctx)
}
