package httpapi

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/userauth/internal/common"
	"github.com/dmitrijs2005/userauth/internal/schema"
)

func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Hello Hono!"})
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	if h.store != nil {
		if err := h.store.PingContext(r.Context()); err != nil {
			h.logger.Warn(r.Context(), "store ping failed", "error", err)
			writeError(w, http.StatusServiceUnavailable, "Service unavailable")
			return
		}
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	list, err := h.users.ListUsers(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req schema.CreateUser
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := h.users.CreateUser(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req schema.Register
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.users.Register(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, schema.AuthResponse{User: res.User, Token: res.Token})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req schema.Login
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.users.Login(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, schema.AuthResponse{User: res.User, Token: res.Token})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get(common.AuthorizationHeaderName)
	if header == "" {
		h.fail(w, r, common.ErrorUnauthorized)
		return
	}

	p, err := h.users.Me(r.Context(), bearerToken(header))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, schema.MeResponse{User: *p})
}

// bearerToken returns the second space-separated part of the header, or ""
// when there is none. The scheme word itself is not checked.
func bearerToken(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
