package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"useradmin-cli/internal/client/api"
	"useradmin-cli/internal/client/credentials"
	"useradmin-cli/internal/client/models"
	"useradmin-cli/internal/logging"
)

// fakeAuthAPI implements AuthAPI for manager tests.
type fakeAuthAPI struct {
	store *credentials.MemoryStore

	loginToken models.Token
	loginErr   error

	currentUser    models.User
	currentUserErr error

	registered  models.User
	registerErr error

	loginCalls    int
	registerCalls int
	logoutCalls   int
}

func (f *fakeAuthAPI) Login(ctx context.Context, email, password string) (models.Token, error) {
	f.loginCalls++
	if f.loginErr != nil {
		return models.Token{}, f.loginErr
	}
	_ = f.store.Set(ctx, f.loginToken.AccessToken)
	return f.loginToken, nil
}

func (f *fakeAuthAPI) GetCurrentUser(ctx context.Context) (models.User, error) {
	return f.currentUser, f.currentUserErr
}

func (f *fakeAuthAPI) Register(ctx context.Context, data models.CreateUser) (models.User, error) {
	f.registerCalls++
	return f.registered, f.registerErr
}

func (f *fakeAuthAPI) Logout(ctx context.Context) error {
	f.logoutCalls++
	return f.store.Clear(ctx)
}

func newTestManager(t *testing.T) (*Manager, *fakeAuthAPI, *credentials.MemoryStore) {
	t.Helper()
	store := credentials.NewMemoryStore()
	auth := &fakeAuthAPI{store: store}
	return NewManager(auth, store, logging.Nop()), auth, store
}

func TestManager_StartsInitializing(t *testing.T) {
	m, _, _ := newTestManager(t)
	require.Equal(t, StateInitializing, m.State())
	require.False(t, m.IsAuthenticated())
}

func TestManager_Init_NoCredential(t *testing.T) {
	m, _, _ := newTestManager(t)

	m.Init(context.Background())

	require.Equal(t, StateUnauthenticated, m.State())
	_, ok := m.CurrentUser()
	require.False(t, ok)
}

func TestManager_Init_CredentialResolves(t *testing.T) {
	m, auth, store := newTestManager(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "T"))
	auth.currentUser = models.User{ID: 1, Username: "a"}

	m.Init(ctx)

	require.Equal(t, StateAuthenticated, m.State())
	user, ok := m.CurrentUser()
	require.True(t, ok)
	require.Equal(t, 1, user.ID)
}

func TestManager_Init_ResolutionFailureClearsCredential(t *testing.T) {
	m, auth, store := newTestManager(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "stale"))
	auth.currentUserErr = &api.AuthError{Detail: "Could not validate credentials"}

	m.Init(ctx)

	require.Equal(t, StateUnauthenticated, m.State())
	require.Equal(t, 1, auth.logoutCalls)
	tok, err := store.Get(ctx)
	require.NoError(t, err)
	require.Empty(t, tok)
}

func TestManager_Login_Success(t *testing.T) {
	m, auth, _ := newTestManager(t)
	m.Init(context.Background())

	auth.loginToken = models.Token{AccessToken: "T"}
	auth.currentUser = models.User{ID: 1, Username: "a"}

	err := m.Login(context.Background(), "a@b.com", "validpass1")
	require.NoError(t, err)

	require.Equal(t, StateAuthenticated, m.State())
	user, ok := m.CurrentUser()
	require.True(t, ok)
	require.Equal(t, 1, user.ID)
	require.Empty(t, m.Err())
	require.False(t, m.Loading())
}

func TestManager_Login_Rejected_SettlesUnauthenticatedWithDetail(t *testing.T) {
	m, auth, _ := newTestManager(t)
	m.Init(context.Background())

	auth.loginErr = &api.AuthError{Detail: "Incorrect email or password"}

	err := m.Login(context.Background(), "a@b.com", "wrong")
	require.Error(t, err)

	require.Equal(t, StateUnauthenticated, m.State())
	require.Equal(t, "Incorrect email or password", m.Err())
	require.False(t, m.IsAuthenticated())
}

func TestManager_Login_NetworkFailure_GenericMessage(t *testing.T) {
	m, auth, _ := newTestManager(t)
	m.Init(context.Background())

	auth.loginErr = &api.NetworkError{}

	err := m.Login(context.Background(), "a@b.com", "validpass1")
	require.Error(t, err)
	require.Equal(t, "Login failed. Please try again.", m.Err())
}

func TestManager_Login_ResolutionFailureDropsToken(t *testing.T) {
	m, auth, store := newTestManager(t)
	ctx := context.Background()
	m.Init(ctx)

	auth.loginToken = models.Token{AccessToken: "T"}
	auth.currentUserErr = &api.AuthError{}

	err := m.Login(ctx, "a@b.com", "validpass1")
	require.Error(t, err)

	require.Equal(t, StateUnauthenticated, m.State())
	tok, err := store.Get(ctx)
	require.NoError(t, err)
	require.Empty(t, tok)
}

func TestManager_Register_DoesNotAuthenticate(t *testing.T) {
	m, auth, _ := newTestManager(t)
	m.Init(context.Background())

	auth.registered = models.User{ID: 7, Username: "newbie"}

	user, err := m.Register(context.Background(), models.CreateUser{
		Email:    "n@b.com",
		Username: "newbie",
		Password: "validpass1",
	})
	require.NoError(t, err)
	require.Equal(t, 7, user.ID)

	require.Equal(t, StateUnauthenticated, m.State())
	require.False(t, m.IsAuthenticated())
}

func TestManager_Register_ConflictSurfacesDetail(t *testing.T) {
	m, auth, _ := newTestManager(t)
	m.Init(context.Background())

	auth.registerErr = &api.ConflictError{Detail: "Email already registered"}

	_, err := m.Register(context.Background(), models.CreateUser{})
	require.Error(t, err)
	require.Equal(t, "Email already registered", m.Err())
}

func TestManager_Logout(t *testing.T) {
	m, auth, store := newTestManager(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "T"))
	auth.currentUser = models.User{ID: 1}
	m.Init(ctx)
	require.True(t, m.IsAuthenticated())

	m.Logout(ctx)

	require.Equal(t, StateUnauthenticated, m.State())
	_, ok := m.CurrentUser()
	require.False(t, ok)
	tok, err := store.Get(ctx)
	require.NoError(t, err)
	require.Empty(t, tok)
}

func TestManager_HandleUnauthorized_TearsDownSession(t *testing.T) {
	m, auth, store := newTestManager(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "T"))
	auth.currentUser = models.User{ID: 1}
	m.Init(ctx)
	require.True(t, m.IsAuthenticated())

	// the transport clears the credential before signalling
	require.NoError(t, store.Clear(ctx))
	m.HandleUnauthorized()

	require.Equal(t, StateUnauthenticated, m.State())
	require.Equal(t, "Session expired. Please log in again.", m.Err())
	_, ok := m.CurrentUser()
	require.False(t, ok)
}
