// Package models defines the wire types exchanged with the user-management API.
package models

import "time"

// User is an account record as returned by the server. The password is
// write-only and never present in responses; ID and CreatedAt are assigned
// by the server and never sent by the client.
type User struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateUser is the payload for registration and admin user creation.
type CreateUser struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"full_name,omitempty"`
	Password string `json:"password"`
	IsActive bool   `json:"is_active"`
}

// UpdateUser is a partial update payload. Nil fields are omitted from the
// request body and leave the stored value untouched; in particular a nil
// Password keeps the current credential.
type UpdateUser struct {
	Email    *string `json:"email,omitempty"`
	Username *string `json:"username,omitempty"`
	FullName *string `json:"full_name,omitempty"`
	Password *string `json:"password,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// Token is the login exchange response.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

// Active-status filter values accepted by UserFilter.IsActive.
const (
	FilterActiveAny  = ""
	FilterActiveOnly = "true"
	FilterInactive   = "false"
)

// UserFilter narrows a user list query. IsActive is ternary: empty means no
// constraint, "true" selects active accounts, "false" inactive ones.
// Unrecognized values behave as empty.
type UserFilter struct {
	IsActive string
}
