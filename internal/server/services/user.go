// Package services contains server-side business logic. UserService handles
// registration, login, session-token verification and the user directory.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/userauth/internal/common"
	"github.com/dmitrijs2005/userauth/internal/cryptox"
	"github.com/dmitrijs2005/userauth/internal/schema"
	"github.com/dmitrijs2005/userauth/internal/server/auth"
	"github.com/dmitrijs2005/userauth/internal/server/config"
	"github.com/dmitrijs2005/userauth/internal/server/models"
	"github.com/dmitrijs2005/userauth/internal/server/repositories/repomanager"
)

// AuthResult is what register and login hand back to the caller.
type AuthResult struct {
	User  schema.Profile
	Token string
}

// UserService provides authentication-related operations:
// - Register / CreateUser: create users with a unique email
// - Login: verify credentials and mint a session token
// - Me: resolve a session token to the current profile
// - ListUsers: public directory of profiles
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      cryptox.PasswordHasher
	jwtSecret   []byte
	tokenTTL    time.Duration

	dummyOnce sync.Once
	dummyHash string
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher cryptox.PasswordHasher, cfg *config.Config) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		jwtSecret:   []byte(cfg.SecretKey),
		tokenTTL:    cfg.TokenTTL,
	}
}

// Register validates the payload, rejects a taken email and stores the new
// user. The returned token is already valid for Me.
func (s *UserService) Register(ctx context.Context, req schema.Register) (*AuthResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.createUser(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	return s.issue(user)
}

// CreateUser stores a user without issuing a token. With no password the
// account gets the hash of a random secret and cannot log in.
func (s *UserService) CreateUser(ctx context.Context, req schema.CreateUser) (*schema.Profile, error) {
	if err := req.ValidateOptionalPassword(); err != nil {
		return nil, err
	}

	password := req.Password
	if password == "" {
		secret, err := common.MakeRandHexString(32)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
		}
		password = secret
	}

	user, err := s.createUser(ctx, req.Name, req.Email, password)
	if err != nil {
		return nil, err
	}
	p := user.Profile()
	return &p, nil
}

// Login verifies the credentials. An unknown email and a wrong password are
// indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, req schema.Login) (*AuthResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// burn one hash computation so response time does not reveal the miss
			_, _ = s.hasher.Verify(req.Password, s.dummy())
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}

	ok, err := s.hasher.Verify(req.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}
	if !ok {
		return nil, common.ErrInvalidCredentials
	}

	return s.issue(user)
}

// Me resolves a session token to the profile of its owner. The user is
// looked up by the email claim.
func (s *UserService) Me(ctx context.Context, token string) (*schema.Profile, error) {
	if token == "" {
		return nil, common.ErrorUnauthorized
	}
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}

	p := user.Profile()
	return &p, nil
}

// ListUsers returns every profile in store order; never nil.
func (s *UserService) ListUsers(ctx context.Context) ([]schema.Profile, error) {
	repo := s.repomanager.Users(s.db)
	list, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}
	return models.Profiles(list), nil
}

// --- helpers below ---

func (s *UserService) createUser(ctx context.Context, name, email, password string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	_, err := repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, common.ErrEmailTaken
	case !errors.Is(err, common.ErrorNotFound):
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}

	user, err := repo.Create(ctx, &models.User{Name: name, Email: email, PasswordHash: hash})
	if err != nil {
		// a concurrent insert can still win the race; the unique index reports it
		if errors.Is(err, common.ErrEmailTaken) {
			return nil, common.ErrEmailTaken
		}
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}
	return user, nil
}

func (s *UserService) issue(user *models.User) (*AuthResult, error) {
	token, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}
	return &AuthResult{User: user.Profile(), Token: token}, nil
}

func (s *UserService) dummy() string {
	s.dummyOnce.Do(func() {
		secret, _ := common.MakeRandHexString(16)
		s.dummyHash, _ = s.hasher.Hash(secret)
	})
	return s.dummyHash
}
