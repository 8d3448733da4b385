// Package models holds the server-side persisted entities.
package models

import (
	"time"

	"github.com/dmitrijs2005/userauth/internal/schema"
)

// User is a row of the users table. PasswordHash never leaves the server:
// handlers only ever encode Profile().
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Profile projects the user without secret fields.
func (u *User) Profile() schema.Profile {
	return schema.Profile{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// Profiles projects a slice of users. The result is never nil.
func Profiles(users []*User) []schema.Profile {
	out := make([]schema.Profile, 0, len(users))
	for _, u := range users {
		out = append(out, u.Profile())
	}
	return out
}
