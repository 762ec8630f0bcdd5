package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"useradmin-cli/internal/client/credentials"
	"useradmin-cli/internal/client/models"
)

// AuthAPI exposes the authentication endpoints.
type AuthAPI struct {
	client *Client
	creds  credentials.Store
}

// NewAuthAPI builds the auth facade. It shares the credential store with the
// transport: login writes the token, logout clears it.
func NewAuthAPI(client *Client, creds credentials.Store) *AuthAPI {
	return &AuthAPI{client: client, creds: creds}
}

// Login exchanges credentials for a bearer token. The upstream endpoint
// speaks OAuth2 password-grant form encoding and binds the email to the
// "username" field. The token is persisted before Login returns.
func (a *AuthAPI) Login(ctx context.Context, email, password string) (models.Token, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var token models.Token
	if err := a.client.LoginForm(ctx, "/auth/login", form, &token); err != nil {
		return models.Token{}, err
	}

	if token.AccessToken == "" {
		return models.Token{}, &AuthError{Detail: "login response carried no access token"}
	}

	if err := a.creds.Set(ctx, token.AccessToken); err != nil {
		return models.Token{}, fmt.Errorf("failed to persist credential: %w", err)
	}
	return token, nil
}

// GetCurrentUser resolves the identity bound to the stored credential.
func (a *AuthAPI) GetCurrentUser(ctx context.Context) (models.User, error) {
	var user models.User
	if err := a.client.Request(ctx, http.MethodGet, "/users/me", nil, nil, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Register creates an account. It does not authenticate the caller; the
// expected follow-up is the login flow.
func (a *AuthAPI) Register(ctx context.Context, data models.CreateUser) (models.User, error) {
	var user models.User
	if err := a.client.Request(ctx, http.MethodPost, "/auth/register", data, nil, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Logout discards the persisted credential. Purely local, no network call.
func (a *AuthAPI) Logout(ctx context.Context) error {
	return a.creds.Clear(ctx)
}
