// Package common contains shared constants and sentinel errors used by both
// the API server and the CLI client.
package common

// AuthorizationHeaderName carries the bearer credential on HTTP requests.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the authorization scheme prefix expected by /auth/me.
const BearerScheme = "Bearer"
