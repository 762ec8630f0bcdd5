package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"useradmin-cli/internal/client/credentials"
	"useradmin-cli/internal/logging"
)

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) (*Client, *credentials.MemoryStore, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := credentials.NewMemoryStore()
	return New(srv.URL, store, logging.Nop(), opts...), store, srv
}

func TestClient_AttachesBearerWhenStored(t *testing.T) {
	var gotAuth string
	c, store, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "T"))
	require.NoError(t, c.Request(ctx, http.MethodGet, "/users/me", nil, nil, nil))
	require.Equal(t, "Bearer T", gotAuth)
}

func TestClient_NoBearerWhenAbsent(t *testing.T) {
	var gotAuth string
	c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))

	require.NoError(t, c.Request(context.Background(), http.MethodGet, "/users", nil, nil, nil))
	require.Empty(t, gotAuth)
}

func TestClient_Unauthorized_ClearsCredentialAndFiresHook(t *testing.T) {
	hookFired := 0
	c, store, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Could not validate credentials"}`, http.StatusUnauthorized)
	}), WithUnauthorizedHook(func() { hookFired++ }))

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "stale"))

	err := c.Request(ctx, http.MethodGet, "/users", nil, nil, nil)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, "Could not validate credentials", authErr.Detail)
	require.Equal(t, 1, hookFired)

	tok, err := store.Get(ctx)
	require.NoError(t, err)
	require.Empty(t, tok)
}

func TestClient_LoginExchange_ExemptFromGlobalReaction(t *testing.T) {
	hookFired := 0
	c, store, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Incorrect email or password"}`, http.StatusUnauthorized)
	}), WithUnauthorizedHook(func() { hookFired++ }))

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "existing"))

	form := url.Values{"username": {"a@b.com"}, "password": {"bad"}}
	err := c.LoginForm(ctx, "/auth/login", form, nil)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	require.Zero(t, hookFired)

	// a rejected login must not discard an unrelated stored credential
	tok, err := store.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "existing", tok)
}

func TestClient_LoginForm_Encoding(t *testing.T) {
	var gotContentType, gotUsername, gotPassword, gotAuth string
	c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, r.ParseForm())
		gotUsername = r.PostFormValue("username")
		gotPassword = r.PostFormValue("password")
		w.Write([]byte(`{"access_token":"T"}`))
	}))

	form := url.Values{"username": {"a@b.com"}, "password": {"validpass1"}}
	require.NoError(t, c.LoginForm(context.Background(), "/auth/login", form, nil))

	require.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	require.Equal(t, "a@b.com", gotUsername)
	require.Equal(t, "validpass1", gotPassword)
	require.Empty(t, gotAuth)
}

func TestClient_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := New(srv.URL, credentials.NewMemoryStore(), logging.Nop())
	err := c.Request(context.Background(), http.MethodGet, "/users", nil, nil, nil)

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	require.Error(t, errors.Unwrap(netErr))
}

func TestClient_QueryParams_PreserveEmptyValues(t *testing.T) {
	var gotRawQuery string
	c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRawQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	}))

	query := url.Values{}
	query.Set("search", "")
	query.Set("is_active", "true")
	require.NoError(t, c.Request(context.Background(), http.MethodGet, "/users", nil, query, nil))
	require.Equal(t, "is_active=true&search=", gotRawQuery)
}

func TestErrorFromResponse_Taxonomy(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "404 maps to NotFoundError",
			status: http.StatusNotFound,
			body:   `{"detail":"User not found"}`,
			check: func(t *testing.T, err error) {
				var e *NotFoundError
				require.ErrorAs(t, err, &e)
				require.Equal(t, "User not found", e.Detail)
			},
		},
		{
			name:   "409 maps to ConflictError",
			status: http.StatusConflict,
			body:   `{"detail":"duplicate"}`,
			check: func(t *testing.T, err error) {
				var e *ConflictError
				require.ErrorAs(t, err, &e)
			},
		},
		{
			name:   "400 duplicate email maps to ConflictError",
			status: http.StatusBadRequest,
			body:   `{"detail":"Email already registered"}`,
			check: func(t *testing.T, err error) {
				var e *ConflictError
				require.ErrorAs(t, err, &e)
				require.Equal(t, "Email already registered", e.Detail)
			},
		},
		{
			name:   "400 duplicate username maps to ConflictError",
			status: http.StatusBadRequest,
			body:   `{"detail":"Username already taken"}`,
			check: func(t *testing.T, err error) {
				var e *ConflictError
				require.ErrorAs(t, err, &e)
			},
		},
		{
			name:   "400 without duplicate detail maps to ValidationError",
			status: http.StatusBadRequest,
			body:   `{"detail":"malformed payload"}`,
			check: func(t *testing.T, err error) {
				var e *ValidationError
				require.ErrorAs(t, err, &e)
			},
		},
		{
			name:   "422 carries field-level detail",
			status: http.StatusUnprocessableEntity,
			body:   `{"detail":[{"loc":["body","email"],"msg":"value is not a valid email address","type":"value_error"}]}`,
			check: func(t *testing.T, err error) {
				var e *ValidationError
				require.ErrorAs(t, err, &e)
				require.Equal(t, "value is not a valid email address", e.Fields["email"])
			},
		},
		{
			name:   "unknown status maps to HTTPError",
			status: http.StatusBadGateway,
			body:   "",
			check: func(t *testing.T, err error) {
				var e *HTTPError
				require.ErrorAs(t, err, &e)
				require.Equal(t, http.StatusBadGateway, e.Status)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.check(t, errorFromResponse(tc.status, []byte(tc.body)))
		})
	}
}
