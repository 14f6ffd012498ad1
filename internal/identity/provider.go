// Package identity implements the client for the external identity
// provider: email/password sign-up and sign-in, federated (Google)
// sign-in via a loopback redirect, sign-out, and a subscribe-to-auth-
// state-changes primitive that the session service treats as its sole
// source of truth for identity presence.
package identity

import (
	"context"

	"github.com/etuitionbd/etuition-cli/internal/models"
)

// Provider is the identity-provider surface consumed by the session
// service. Auth-state listeners receive the current profile, or nil when
// no user is signed in. Start restores state from the persisted token and
// fires the initial auth-state callback; until it runs, no callback has
// been delivered and the session remains in its loading state.
type Provider interface {
	Start(ctx context.Context) error
	SignUp(ctx context.Context, email, password, displayName string) (*models.Profile, error)
	SignIn(ctx context.Context, email, password string) (*models.Profile, error)
	SignOut(ctx context.Context) error
	FederatedSignIn(ctx context.Context) (*models.Profile, error)
	UpdateDisplayName(ctx context.Context, displayName string) error
	UpdatePassword(ctx context.Context, email, currentPassword, newPassword string) error
	OnAuthStateChanged(cb func(*models.Profile)) *ListenerHandle
}

// TokenStore is the subset of the persisted storage the provider needs to
// restore and maintain the bearer credential.
type TokenStore interface {
	Save(ctx context.Context, token string) error
	Load(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

// ListenerHandle is a cancellable auth-state subscription. Cancel is
// idempotent and detaches the listener deterministically.
type ListenerHandle struct {
	cancel func()
}

// NewListenerHandle wraps a cancel function. Provider implementations use
// it to hand out subscriptions.
func NewListenerHandle(cancel func()) *ListenerHandle {
	return &ListenerHandle{cancel: cancel}
}

func (h *ListenerHandle) Cancel() {
	if h != nil && h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
}
