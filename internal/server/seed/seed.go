// Package seed fills an empty credential store with demo accounts.
package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/userauth/internal/common"
	"github.com/dmitrijs2005/userauth/internal/cryptox"
	"github.com/dmitrijs2005/userauth/internal/dbx"
	"github.com/dmitrijs2005/userauth/internal/logging"
	"github.com/dmitrijs2005/userauth/internal/schema"
	"github.com/dmitrijs2005/userauth/internal/server/models"
	"github.com/dmitrijs2005/userauth/internal/server/repositories/repomanager"
)

// SampleUsers all share the password "password123".
var SampleUsers = []schema.CreateUser{
	{Name: "Alice Johnson", Email: "alice@example.com", Password: "password123"},
	{Name: "Bob Smith", Email: "bob@example.com", Password: "password123"},
	{Name: "Charlie Brown", Email: "charlie@example.com", Password: "password123"},
	{Name: "Diana Prince", Email: "diana@example.com", Password: "password123"},
	{Name: "Evan Wright", Email: "evan@example.com", Password: "password123"},
}

// Seed inserts users in a single transaction and returns how many rows were
// added. Emails that already exist are skipped, so re-running is harmless.
// Any other failure rolls the whole batch back.
func Seed(ctx context.Context, db *sql.DB, m repomanager.RepositoryManager, hasher cryptox.PasswordHasher,
	l logging.Logger, users []schema.CreateUser) (int, error) {

	for _, u := range users {
		if err := u.Validate(); err != nil {
			return 0, fmt.Errorf("seed user %q: %w", u.Email, err)
		}
	}

	inserted := 0
	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := m.Users(tx)
		for _, u := range users {
			_, err := repo.GetUserByEmail(ctx, u.Email)
			if err == nil {
				l.Info(ctx, "user exists, skipping", "email", u.Email)
				continue
			}
			if !errors.Is(err, common.ErrorNotFound) {
				return err
			}

			hash, err := hasher.Hash(u.Password)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			if _, err := repo.Create(ctx, &models.User{Name: u.Name, Email: u.Email, PasswordHash: hash}); err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	l.Info(ctx, "database seeded", "inserted", inserted, "skipped", len(users)-inserted)
	return inserted, nil
}
