// Package users is the credential store: persistence of user records for
// PostgreSQL and SQLite.
//
// Lookups return common.ErrorNotFound when no row matches. Create returns
// common.ErrEmailTaken when the store's unique constraint on email rejects
// the insert; all other failures are wrapped as "db error: ...".
package users

import (
	"context"

	"github.com/dmitrijs2005/userauth/internal/server/models"
)

type Repository interface {
	// Create inserts the user and fills in the generated ID and CreatedAt.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// List returns every user in store-native order.
	List(ctx context.Context) ([]*models.User, error)
}
