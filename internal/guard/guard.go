// Package guard implements the route guard gating access to protected
// UI subtrees pending session resolution.
package guard

import "github.com/etuitionbd/etuition-cli/internal/session"

// Decision is the guard's verdict for a navigation into a protected
// subtree.
type Decision int

const (
	// Wait: the session is still loading; render a placeholder only.
	Wait Decision = iota
	// Allow: render the protected subtree.
	Allow
	// Redirect: send the visitor to the login page.
	Redirect
)

// LoginPath is where unauthenticated visitors are redirected.
const LoginPath = "/login"

// Decide makes the synchronous, once-per-navigation guard decision.
//
// Identity presence and token presence are deliberately OR'd: on a
// just-restarted process the provider callback may not have fired yet
// while a valid token is still on disk.
func Decide(snap session.Snapshot, tokenPresent bool) Decision {
	if snap.Loading {
		return Wait
	}
	if snap.Authenticated() || tokenPresent {
		return Allow
	}
	return Redirect
}
