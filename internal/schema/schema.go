// Package schema holds the request/response contracts shared by the API
// server and the client: registration, login, user creation and the public
// user profile. Each input contract validates itself and reports problems as
// FieldErrors keyed by JSON field name.
package schema

import (
	"net/mail"
	"sort"
	"strings"
	"time"
	"unicode/utf16"
)

const (
	MinPasswordLen = 8

	msgNameRequired     = "Name is required"
	msgInvalidEmail     = "Invalid email address"
	msgPasswordTooShort = "Password must be at least 8 characters"
	msgPasswordRequired = "Password is required"
)

// FieldErrors maps a JSON field name to its validation messages.
type FieldErrors map[string][]string

func (f FieldErrors) add(field, msg string) {
	f[field] = append(f[field], msg)
}

func (f FieldErrors) Error() string {
	fields := make([]string, 0, len(f))
	for k := range f {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

// orNil keeps callers from receiving a non-nil error wrapping an empty map.
func (f FieldErrors) orNil() error {
	if len(f) == 0 {
		return nil
	}
	return f
}

// CreateUser is the payload for POST /users and, with a mandatory password,
// for POST /auth/register.
type CreateUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

// Register is the registration payload; it is CreateUser with the password
// required.
type Register = CreateUser

// Validate checks the registration contract: password required.
func (c CreateUser) Validate() error {
	return c.validate(true)
}

// ValidateOptionalPassword checks the user-creation contract: a password, if
// given, must still satisfy the length rule.
func (c CreateUser) ValidateOptionalPassword() error {
	return c.validate(c.Password != "")
}

func (c CreateUser) validate(requirePassword bool) error {
	errs := FieldErrors{}
	if textLen(c.Name) < 1 {
		errs.add("name", msgNameRequired)
	}
	if !ValidEmail(c.Email) {
		errs.add("email", msgInvalidEmail)
	}
	if requirePassword && textLen(c.Password) < MinPasswordLen {
		errs.add("password", msgPasswordTooShort)
	}
	return errs.orNil()
}

// textLen measures s in UTF-16 code units, the unit JavaScript clients count
// in, so a character outside the BMP counts as two.
func textLen(s string) int {
	n := 0
	for _, r := range s {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}

// Login is the payload for POST /auth/login.
type Login struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (l Login) Validate() error {
	errs := FieldErrors{}
	if !ValidEmail(l.Email) {
		errs.add("email", msgInvalidEmail)
	}
	if l.Password == "" {
		errs.add("password", msgPasswordRequired)
	}
	return errs.orNil()
}

// Profile is a user record without secrets. It is the only user shape that
// ever leaves the server.
type Profile struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User  Profile `json:"user"`
	Token string  `json:"token"`
}

// MeResponse is returned by GET /auth/me.
type MeResponse struct {
	User Profile `json:"user"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error  string      `json:"error"`
	Fields FieldErrors `json:"fields,omitempty"`
}

// ValidEmail reports whether s is a bare addr-spec ("a@b.c") with a dotted
// domain. Display-name forms such as "A <a@b.c>" are rejected.
func ValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || addr.Name != "" {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	if at <= 0 {
		return false
	}
	domain := s[at+1:]
	dot := strings.LastIndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1 && !strings.Contains(domain, "..")
}
