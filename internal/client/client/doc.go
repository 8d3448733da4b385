// Package client contains client-side building blocks for the userauth CLI.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) to talk
//     to the userauth server: Register, Login, Me, ListUsers, CreateUser and Ping.
//  2. A concrete JSON/HTTP implementation (see HTTPClient) that attaches the
//     bearer token and maps non-2xx answers to *APIError.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) for the CLI's
//     SQLite session database.
//
// # Error Handling
//
// Conditions callers branch on are sentinels matched with errors.Is:
// ErrUnavailable (transport failure) and ErrUnauthorized (HTTP 401). Every
// other non-2xx answer is an *APIError carrying the status and the server's
// error message.
package client
