// Package session holds the client's authentication state: who is logged in,
// whether an auth operation is in flight, and the last auth error. It owns
// the credential lifecycle through the auth facade.
package session

import (
	"context"
	"errors"
	"sync"

	"useradmin-cli/internal/client/api"
	"useradmin-cli/internal/client/credentials"
	"useradmin-cli/internal/client/models"
	"useradmin-cli/internal/logging"
)

// State is the session's position in the auth lifecycle.
type State string

const (
	StateInitializing    State = "initializing"
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticating  State = "authenticating"
	StateAuthenticated   State = "authenticated"

	// StateAuthFailed is the logical transition a rejected login passes
	// through: the error message is retained for display and the session
	// settles unauthenticated, so readers only ever observe the settled
	// state.
	StateAuthFailed State = "auth_failed"
)

// AuthAPI is the slice of the auth facade the manager needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (models.Token, error)
	GetCurrentUser(ctx context.Context) (models.User, error)
	Register(ctx context.Context, data models.CreateUser) (models.User, error)
	Logout(ctx context.Context) error
}

// Manager is the session state holder. It is constructed once by the
// application root and injected into consumers; there is no ambient
// singleton. Actions are invoked one at a time by the UI; the mutex only
// guards field access and is never held across a network call, because the
// transport's unauthorized hook re-enters HandleUnauthorized on the same
// goroutine while the call is still in flight.
//
// Invariant: the user is non-nil exactly while the state is Authenticated,
// which in turn requires a stored credential the server has accepted.
type Manager struct {
	mu    sync.Mutex
	auth  AuthAPI
	creds credentials.Store
	log   logging.Logger

	state   State
	user    *models.User
	loading bool
	lastErr string
}

// NewManager builds a Manager in the Initializing state.
func NewManager(auth AuthAPI, creds credentials.Store, log logging.Logger) *Manager {
	return &Manager{
		auth:  auth,
		creds: creds,
		log:   log.With("component", "session"),
		state: StateInitializing,
	}
}

// Init performs the startup check: if a persisted credential exists, resolve
// the current user; otherwise settle unauthenticated. A credential the
// server rejects is discarded.
func (m *Manager) Init(ctx context.Context) {
	m.mu.Lock()
	m.loading = true
	m.mu.Unlock()

	token, err := m.creds.Get(ctx)
	if err != nil {
		m.log.Error("failed to read persisted credential", "error", err)
	}
	if err != nil || token == "" {
		m.finishUnauthenticated()
		return
	}

	user, err := m.auth.GetCurrentUser(ctx)
	if err != nil {
		m.log.Warn("stored credential did not resolve, clearing it", "error", err)
		if cerr := m.auth.Logout(ctx); cerr != nil {
			m.log.Error("failed to clear credential", "error", cerr)
		}
		m.finishUnauthenticated()
		return
	}

	m.finishAuthenticated(&user)
	m.log.Info("session restored", "user_id", user.ID, "username", user.Username)
}

// Login runs the two-step flow: exchange credentials for a token, then
// resolve the full user record. On rejection the state passes through
// AuthFailed and settles unauthenticated with the error message retained.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	m.mu.Lock()
	m.lastErr = ""
	m.loading = true
	m.state = StateAuthenticating
	m.mu.Unlock()

	if _, err := m.auth.Login(ctx, email, password); err != nil {
		m.failAuth(messageFor(err, "Login failed. Please try again."))
		m.log.Warn("login rejected", "error", err)
		return err
	}

	user, err := m.auth.GetCurrentUser(ctx)
	if err != nil {
		// token obtained but identity resolution failed; drop the token
		if cerr := m.auth.Logout(ctx); cerr != nil {
			m.log.Error("failed to clear credential", "error", cerr)
		}
		m.failAuth(messageFor(err, "Login failed. Please try again."))
		return err
	}

	m.finishAuthenticated(&user)
	m.log.Info("login successful", "user_id", user.ID)
	return nil
}

// Register creates an account. It never transitions the session to
// Authenticated; the caller is expected to hand off to the login flow.
func (m *Manager) Register(ctx context.Context, data models.CreateUser) (models.User, error) {
	m.mu.Lock()
	m.lastErr = ""
	m.loading = true
	m.mu.Unlock()

	user, err := m.auth.Register(ctx, data)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = false
	if err != nil {
		m.lastErr = messageFor(err, "Registration failed. Please try again.")
		m.log.Warn("registration rejected", "error", err)
		return models.User{}, err
	}
	return user, nil
}

// Logout clears the credential and settles unauthenticated. The facade's
// logout is purely local, so no unauthorized signal can re-enter here.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.auth.Logout(ctx); err != nil {
		m.log.Error("failed to clear credential on logout", "error", err)
	}
	m.lastErr = ""
	m.settle(StateUnauthenticated, nil)
	m.log.Info("logged out")
}

// HandleUnauthorized reacts to the transport's global 401 signal. The
// transport has already cleared the credential; the session collapses to
// the unauthenticated state. It may be called synchronously from inside a
// network call issued by Init or Login, which is safe because neither holds
// the mutex at that point.
func (m *Manager) HandleUnauthorized() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateAuthenticated || m.state == StateInitializing {
		m.lastErr = "Session expired. Please log in again."
	}
	m.settle(StateUnauthenticated, nil)
	m.log.Warn("authorization failure, session torn down")
}

// finishUnauthenticated settles an action in the unauthenticated state,
// leaving any error message recorded along the way intact.
func (m *Manager) finishUnauthenticated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = false
	m.settle(StateUnauthenticated, nil)
}

func (m *Manager) finishAuthenticated(user *models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = false
	m.settle(StateAuthenticated, user)
}

// failAuth records a rejected auth attempt: the AuthFailed transition with
// its message, settled to unauthenticated.
func (m *Manager) failAuth(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = false
	m.lastErr = msg
	m.settle(StateUnauthenticated, nil)
}

func (m *Manager) settle(s State, user *models.User) {
	m.state = s
	m.user = user
}

// State reports the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// CurrentUser returns a copy of the authenticated user, or false when
// unauthenticated.
func (m *Manager) CurrentUser() (models.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return models.User{}, false
	}
	return *m.user, true
}

// IsAuthenticated reports whether a user is logged in.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == StateAuthenticated
}

// Loading reports whether an auth operation is in flight.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// Err returns the last auth error message, empty when none.
func (m *Manager) Err() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// messageFor prefers the server-provided detail for auth errors and falls
// back to generic per-operation text for everything else.
func messageFor(err error, fallback string) string {
	var authErr *api.AuthError
	if errors.As(err, &authErr) && authErr.Detail != "" {
		return authErr.Detail
	}
	var conflictErr *api.ConflictError
	if errors.As(err, &conflictErr) && conflictErr.Detail != "" {
		return conflictErr.Detail
	}
	return fallback
}
