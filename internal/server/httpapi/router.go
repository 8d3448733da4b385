// Package httpapi is the JSON/HTTP surface of the user/auth API.
package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/userauth/internal/logging"
	"github.com/dmitrijs2005/userauth/internal/schema"
	"github.com/dmitrijs2005/userauth/internal/server/services"
	"github.com/go-chi/chi/v5"
)

// UserService is the business logic the handlers delegate to.
type UserService interface {
	Register(ctx context.Context, req schema.Register) (*services.AuthResult, error)
	Login(ctx context.Context, req schema.Login) (*services.AuthResult, error)
	Me(ctx context.Context, token string) (*schema.Profile, error)
	CreateUser(ctx context.Context, req schema.CreateUser) (*schema.Profile, error)
	ListUsers(ctx context.Context) ([]schema.Profile, error)
}

// Pinger reports whether the credential store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	users  UserService
	store  Pinger
	logger logging.Logger
}

// NewRouter wires middleware and routes. store may be nil, in which case
// /healthz always reports ok.
func NewRouter(users UserService, store Pinger, l logging.Logger) http.Handler {
	h := &Handler{users: users, store: store, logger: l.With("module", "http_server")}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(h.requestLogger)
	r.Use(h.recoverer)
	r.Use(cors)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/", h.root)
	r.Get("/healthz", h.healthz)

	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.listUsers)
		r.Post("/", h.createUser)
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/login", h.login)
		r.Get("/me", h.me)
	})

	return r
}
