// Package session tracks who the CLI is signed in as. The bearer token is
// persisted locally; on start-up it is re-validated against the server
// before the user is considered authenticated.
//
// State machine:
//
//	Anonymous --Init/SetToken(token)--> Loading --Me ok--> Authenticated
//	                                    Loading --Me failed--> Anonymous (storage cleared)
//	any --Login--> Authenticated
//	any --Logout--> Anonymous
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/userauth/internal/common"
	"github.com/dmitrijs2005/userauth/internal/logging"
	"github.com/dmitrijs2005/userauth/internal/schema"
)

type State int

const (
	Anonymous State = iota
	Loading
	Authenticated
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Loading:
		return "loading"
	case Authenticated:
		return "authenticated"
	}
	return "unknown"
}

// Store persists the bearer token between runs.
type Store interface {
	// Load returns common.ErrorNotFound when no token is stored.
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// API resolves a token to its owner.
type API interface {
	Me(ctx context.Context, token string) (*schema.Profile, error)
}

// Session is safe for concurrent use.
type Session struct {
	store  Store
	api    API
	logger logging.Logger

	mu    sync.RWMutex
	state State
	token string
	user  *schema.Profile
}

func New(store Store, api API, l logging.Logger) *Session {
	return &Session{store: store, api: api, logger: l.With("module", "session"), state: Anonymous}
}

// Init restores a persisted token, if any, and validates it.
func (s *Session) Init(ctx context.Context) error {
	token, err := s.store.Load(ctx)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return err
	}
	if token == "" {
		s.set(Anonymous, "", nil)
		return nil
	}
	return s.rehydrate(ctx, token)
}

// Login records a token the server just issued together with its owner.
func (s *Session) Login(ctx context.Context, token string, user schema.Profile) error {
	if err := s.store.Save(ctx, token); err != nil {
		return err
	}
	s.set(Authenticated, token, &user)
	return nil
}

// Logout forgets the session. The in-memory state is Anonymous afterwards
// even if clearing storage fails.
func (s *Session) Logout(ctx context.Context) error {
	s.set(Anonymous, "", nil)
	return s.store.Clear(ctx)
}

// SetToken replaces the token and re-validates it. Setting the current
// token again does nothing; an empty token logs out.
func (s *Session) SetToken(ctx context.Context, token string) error {
	s.mu.RLock()
	same := token == s.token
	s.mu.RUnlock()
	if same {
		return nil
	}
	if token == "" {
		return s.Logout(ctx)
	}
	if err := s.store.Save(ctx, token); err != nil {
		return err
	}
	return s.rehydrate(ctx, token)
}

func (s *Session) rehydrate(ctx context.Context, token string) error {
	s.set(Loading, token, nil)

	user, err := s.api.Me(ctx, token)
	if err != nil {
		s.logger.Info(ctx, "stored token rejected", "error", err)
		s.mu.Lock()
		// a newer token may have been set while Me was in flight
		stale := s.token != token
		if !stale {
			s.state, s.token, s.user = Anonymous, "", nil
		}
		s.mu.Unlock()
		if stale {
			return nil
		}
		return s.store.Clear(ctx)
	}

	s.mu.Lock()
	if s.token == token {
		s.state, s.user = Authenticated, user
	}
	s.mu.Unlock()
	return nil
}

func (s *Session) set(state State, token string, user *schema.Profile) {
	s.mu.Lock()
	s.state, s.token, s.user = state, token, user
	s.mu.Unlock()
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the signed-in profile, or nil.
func (s *Session) User() *schema.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) IsAuthenticated() bool {
	return s.State() == Authenticated
}
