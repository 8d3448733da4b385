package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	failMe   bool
	calls    []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	f.calls = append(f.calls, "register")
	return nil
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Me(ctx context.Context) error {
	f.calls = append(f.calls, "me")
	if f.failMe {
		return errors.New("boom")
	}
	return nil
}
func (f *fakeExec) Users(ctx context.Context) error { f.calls = append(f.calls, "users"); return nil }
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}

func capturePrints(t *testing.T) *[]string {
	t.Helper()
	var out []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		out = append(out, strings.TrimSpace(fmt.Sprintln(a...)))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &out
}

func lines(s ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(s, "\n")))
}

func TestRunREPL_Dispatch(t *testing.T) {
	out := capturePrints(t)
	f := &fakeExec{failMe: true}

	runREPL(context.Background(), f, func() string { return "(st)" }, lines(
		"help",
		"register",
		"login",
		"help",
		"",
		"me",
		"u",
		"users",
		"logout",
		"foobar",
		"exit",
		"login",
	))

	assert.Equal(t, []string{"register", "login", "me", "users", "users", "logout"}, f.calls)
	assert.Contains(t, *out, "Available commands: register, login, users, exit")
	assert.Contains(t, *out, "Available commands: me, users, logout, exit")
	assert.Contains(t, *out, "Error: boom")
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Contains(t, *out, "ua (st)>")
	assert.Equal(t, "Bye!", (*out)[len(*out)-1])
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	capturePrints(t)
	f := &fakeExec{}

	runREPL(context.Background(), f, func() string { return "" }, lines("users"))
	assert.Equal(t, []string{"users"}, f.calls)
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	capturePrints(t)
	f := &fakeExec{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runREPL(ctx, f, func() string { return "" }, lines("users", "users"))
	assert.Empty(t, f.calls)
}
