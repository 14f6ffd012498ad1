// Package router maps URL-style paths onto page renderers under two layout
// shells, applies the route guard to the dashboard subtree, and owns the
// session-expiry hook fired by the HTTP client.
package router

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/etuitionbd/etuition-cli/internal/common"
	"github.com/etuitionbd/etuition-cli/internal/guard"
	"github.com/etuitionbd/etuition-cli/internal/logging"
	"github.com/etuitionbd/etuition-cli/internal/models"
	"github.com/etuitionbd/etuition-cli/internal/session"
)

// PageFunc renders one page for the given session snapshot.
type PageFunc func(ctx context.Context, w io.Writer, snap session.Snapshot) error

// Shell selects the chrome a page renders under.
type Shell int

const (
	PublicShell Shell = iota
	DashboardShell
)

// Route binds a path to a page. A non-empty Roles list further restricts
// a dashboard page to those roles.
type Route struct {
	Path   string
	Shell  Shell
	Render PageFunc
	Roles  []models.Role
}

// TokenReader is the slice of the token store the guard check needs.
type TokenReader interface {
	Load(ctx context.Context) (string, error)
}

const dashboardPrefix = "/dashboard"

type Router struct {
	session       *session.Service
	tokens        TokenReader
	log           logging.Logger
	out           io.Writer
	redirectDelay time.Duration
	sleep         func(time.Duration) // test seam

	mu      sync.Mutex
	routes  map[string]Route
	current string
}

func New(sess *session.Service, tokens TokenReader, out io.Writer, redirectDelay time.Duration, log logging.Logger) *Router {
	return &Router{
		session:       sess,
		tokens:        tokens,
		log:           log,
		out:           out,
		redirectDelay: redirectDelay,
		sleep:         time.Sleep,
		routes:        make(map[string]Route),
		current:       "/",
	}
}

func (r *Router) Register(routes ...Route) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rt := range routes {
		r.routes[rt.Path] = rt
	}
}

// Current returns the path of the page rendered last.
func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Paths lists every registered route path, sorted.
func (r *Router) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	paths := make([]string, 0, len(r.routes))
	for p := range r.routes {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Navigate resolves path against the route table and renders the page.
// Dashboard routes pass through the guard first: while the session is
// loading only a placeholder is shown and the subtree is never rendered;
// unauthenticated visitors are redirected to the login page.
func (r *Router) Navigate(ctx context.Context, path string) error {
	r.mu.Lock()
	route, ok := r.routes[path]
	r.mu.Unlock()

	if !ok {
		fmt.Fprintf(r.out, "No page at %s. Try 'routes' to list pages.\n", path)
		return fmt.Errorf("route %s: %w", path, common.ErrNotFound)
	}

	if strings.HasPrefix(path, dashboardPrefix) {
		snap := r.session.Current()

		token, err := r.tokens.Load(ctx)
		if err != nil {
			r.log.Warn(ctx, "token read failed during guard check", "error", err)
			token = ""
		}

		switch guard.Decide(snap, token != "") {
		case guard.Wait:
			fmt.Fprintln(r.out, "Loading session...")
			return nil
		case guard.Redirect:
			return r.Navigate(ctx, guard.LoginPath)
		}

		if len(route.Roles) > 0 && !roleAllowed(route.Roles, snap.Role.Resolve()) {
			fmt.Fprintln(r.out, "You do not have access to this page.")
			return r.Navigate(ctx, dashboardPrefix)
		}
	}

	r.mu.Lock()
	r.current = path
	r.mu.Unlock()

	snap := r.session.Current()
	r.renderShell(route, snap)

	if err := route.Render(ctx, r.out, snap); err != nil {
		fmt.Fprintf(r.out, "! %s\n", userMessage(err))
		return err
	}
	return nil
}

func roleAllowed(allowed []models.Role, role models.Role) bool {
	for _, a := range allowed {
		if a == role {
			return true
		}
	}
	return false
}

func (r *Router) renderShell(route Route, snap session.Snapshot) {
	switch route.Shell {
	case DashboardShell:
		who := ""
		if snap.Profile != nil {
			who = fmt.Sprintf(" — %s (%s)", snap.Profile.Email, snap.Role.Resolve())
		}
		fmt.Fprintf(r.out, "== eTuitionBD %s%s ==\n", route.Path, who)
	default:
		fmt.Fprintf(r.out, "== eTuitionBD %s ==\n", route.Path)
	}
}

// SessionExpired implements the HTTP client's expiry hook. The token is
// already gone by the time this runs; all that is left is the user notice
// and the delayed redirect, skipped when an auth page is already current.
func (r *Router) SessionExpired() {
	cur := r.Current()
	if cur == "/login" || cur == "/register" {
		return
	}

	fmt.Fprintln(r.out, "Your session has expired. Please log in again.")
	r.sleep(r.redirectDelay)
	_ = r.Navigate(context.Background(), guard.LoginPath)
}

// userMessage turns a taxonomy error into the toast-style line shown to
// the user.
func userMessage(err error) string {
	switch {
	case errors.Is(err, common.ErrUnavailable):
		return "Could not reach the server. Please try again."
	case errors.Is(err, common.ErrSessionExpired):
		return "Your session has expired."
	case errors.Is(err, common.ErrValidation),
		errors.Is(err, common.ErrCredential),
		errors.Is(err, common.ErrNotFound):
		return err.Error()
	default:
		return "Something went wrong: " + err.Error()
	}
}
