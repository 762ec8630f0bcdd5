// Package credentials persists the bearer token obtained at login.
//
// The token is an opaque string kept under a single fixed key. It is written
// by login (set) and by logout or an authorization failure (clear), and read
// by the HTTP transport on every outbound request.
package credentials

import "context"

// TokenKey is the fixed storage key the credential lives under.
const TokenKey = "access_token"

// Store holds the persisted bearer credential.
//
// Get returns an empty string (and no error) when no credential is stored.
type Store interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
