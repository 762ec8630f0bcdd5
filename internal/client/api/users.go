package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"useradmin-cli/internal/client/models"
)

// UserAPI exposes CRUD and search over the user collection. The server
// enforces authentication; an expired credential surfaces as an AuthError
// plus the transport's global 401 reaction.
type UserAPI struct {
	client *Client
}

func NewUserAPI(client *Client) *UserAPI {
	return &UserAPI{client: client}
}

// GetUsers lists users matching the search term and filter. The search
// parameter is always sent, even when empty; the is_active parameter is only
// sent for the two recognized filter values.
func (u *UserAPI) GetUsers(ctx context.Context, search string, filter models.UserFilter) ([]models.User, error) {
	query := url.Values{}
	query.Set("search", search)

	switch filter.IsActive {
	case models.FilterActiveOnly:
		query.Set("is_active", "true")
	case models.FilterInactive:
		query.Set("is_active", "false")
	}

	var users []models.User
	if err := u.client.Request(ctx, http.MethodGet, "/users", nil, query, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser fetches one user by id.
func (u *UserAPI) GetUser(ctx context.Context, id int) (models.User, error) {
	var user models.User
	if err := u.client.Request(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), nil, nil, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// CreateUser creates a user record.
func (u *UserAPI) CreateUser(ctx context.Context, data models.CreateUser) (models.User, error) {
	var user models.User
	if err := u.client.Request(ctx, http.MethodPost, "/users", data, nil, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// UpdateUser applies a partial update; omitted fields keep their stored
// values.
func (u *UserAPI) UpdateUser(ctx context.Context, id int, data models.UpdateUser) (models.User, error) {
	var user models.User
	if err := u.client.Request(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), data, nil, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// DeleteUser removes a user record. The server answers 204 on success.
func (u *UserAPI) DeleteUser(ctx context.Context, id int) error {
	return u.client.Request(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil, nil)
}
