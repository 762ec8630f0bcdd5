// Package cli is the terminal front end: a read–eval–print loop over the
// session and user-collection state holders.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"useradmin-cli/internal/client/api"
	"useradmin-cli/internal/client/config"
	"useradmin-cli/internal/client/credentials"
	"useradmin-cli/internal/client/session"
	"useradmin-cli/internal/client/users"
	"useradmin-cli/internal/logging"
)

// App wires the transport, facades and state holders together and implements
// the REPL commands. Everything is constructed here and passed by reference;
// no package-level state.
type App struct {
	cfg     *config.Config
	log     logging.Logger
	session *session.Manager
	users   *users.Store
	userAPI *api.UserAPI
	creds   *credentials.SQLiteStore
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp builds the application root from configuration.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	creds, err := credentials.OpenSQLite(ctx, cfg.CredentialsPath)
	if err != nil {
		return nil, err
	}

	app := &App{
		cfg:    cfg,
		log:    log,
		creds:  creds,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	client := api.New(cfg.APIBaseURL, creds, log,
		api.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
		api.WithUnauthorizedHook(app.onUnauthorized),
	)

	authAPI := api.NewAuthAPI(client, creds)
	app.session = session.NewManager(authAPI, creds, log)
	app.userAPI = api.NewUserAPI(client)
	app.users = users.NewStore(app.userAPI, log)

	return app, nil
}

// onUnauthorized is the application root's reaction to the transport's 401
// signal: tear down the session and tell the user. The transport itself has
// already discarded the credential.
func (a *App) onUnauthorized() {
	a.session.HandleUnauthorized()
	fmt.Fprintln(a.out, "Session expired. Please log in again.")
}

// Run restores a persisted session, then hands control to the REPL.
func (a *App) Run(ctx context.Context) {
	defer a.creds.Close()

	a.session.Init(ctx)
	if user, ok := a.session.CurrentUser(); ok {
		fmt.Fprintf(a.out, "Welcome back, %s!\n", user.Username)
	}
	fmt.Fprintln(a.out, "useradmin CLI (type 'help' for commands)")

	runREPL(ctx, a, a.status, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) status() string {
	if user, ok := a.session.CurrentUser(); ok {
		return fmt.Sprintf("(%s)", user.Username)
	}
	return ""
}

// banner prints a single error line near the "table", the CLI's stand-in for
// the web UI's banner message.
func (a *App) banner(msg string) {
	fmt.Fprintf(a.out, "Error: %s\n", msg)
}
