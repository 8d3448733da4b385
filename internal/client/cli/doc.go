// Package cli provides the interactive userauth command-line client.
//
// It wires configuration, the local session database, the HTTP API client
// and an interactive REPL. On start the persisted session is restored and
// re-validated; a background watcher keeps the online/offline indicator in
// the prompt current.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher and runREPL for details.
package cli
