// Package cli is the interactive front of the eTuitionBD client: a REPL
// that drives the router, the session service and the page services.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"sync"

	"github.com/etuitionbd/etuition-cli/internal/api"
	"github.com/etuitionbd/etuition-cli/internal/config"
	"github.com/etuitionbd/etuition-cli/internal/identity"
	"github.com/etuitionbd/etuition-cli/internal/logging"
	"github.com/etuitionbd/etuition-cli/internal/pages"
	"github.com/etuitionbd/etuition-cli/internal/router"
	"github.com/etuitionbd/etuition-cli/internal/session"
	"github.com/etuitionbd/etuition-cli/internal/storage"

	_ "modernc.org/sqlite"
)

type App struct {
	config   *config.Config
	session  *session.Service
	provider identity.Provider
	router   *router.Router
	registry *pages.Registry
	themes   *storage.ThemeStore
	log      logging.Logger
	reader   *bufio.Reader
	out      io.Writer

	pollMu     sync.Mutex
	activePoll *pages.Poll
	activeConv string
}

// NewApp wires the full client: local sqlite storage, identity provider,
// authenticated HTTP client, session service, page services and router.
// The session-expired hook of the HTTP client is pointed at the router.
func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := storage.InitDatabase(ctx, c.StorageDSN)
	if err != nil {
		log.Error(ctx, "error initializing local storage", "error", err)
		return nil, err
	}
	repo := storage.NewSQLiteRepository(db)
	tokens := storage.NewTokenStore(repo)
	roles := storage.NewRoleStore(repo)
	themes := storage.NewThemeStore(repo)

	provider := identity.NewRESTProvider(c.IdentityBaseURL, c.IdentityAPIKey, c.FederatedListenAddr, tokens, log)
	apiClient := api.NewHTTPClient(c.BackendBaseURL, tokens, log)
	sess := session.NewService(provider, roles, log)

	gateway := pages.NewCardGateway(c.GatewayBaseURL)
	registry := pages.NewRegistry(apiClient, sess, gateway, themes, c.PollInterval, log)

	r := router.New(sess, tokens, os.Stdout, c.RedirectDelay, log)
	r.Register(router.Table(registry)...)
	apiClient.SetSessionExpiredHandler(r.SessionExpired)

	return &App{
		config:   c,
		session:  sess,
		provider: provider,
		router:   r,
		registry: registry,
		themes:   themes,
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

// Run restores any persisted session, opens the home page and hands
// control to the REPL. Returns when the user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	defer a.session.Close()
	defer a.stopPoll()

	if err := a.provider.Start(ctx); err != nil {
		a.log.Warn(ctx, "session restore failed, starting signed out", "error", err)
	}

	_ = a.router.Navigate(ctx, "/")

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.session.Current().Authenticated()
}

func (a *App) status() string {
	snap := a.session.Current()
	switch {
	case snap.Loading:
		return "(...)"
	case snap.Profile == nil:
		return "(guest)"
	default:
		return "(" + snap.Profile.Email + " " + snap.Role.Resolve().String() + ")"
	}
}

// Open navigates to a page, stopping any live conversation first so a
// backgrounded poller never outlives its view.
func (a *App) Open(ctx context.Context, path string) error {
	a.stopPoll()
	return a.router.Navigate(ctx, path)
}

func (a *App) stopPoll() {
	a.pollMu.Lock()
	defer a.pollMu.Unlock()
	if a.activePoll != nil {
		a.activePoll.Stop()
		a.activePoll = nil
		a.activeConv = ""
	}
}
