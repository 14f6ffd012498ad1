// Package session implements the client-side session service: it tracks
// the signed-in identity reported by the identity provider, resolves and
// persists the per-identity role, and exposes the sign-up, login, logout,
// federated sign-in, and role-update operations consumed by the UI.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/etuitionbd/etuition-cli/internal/common"
	"github.com/etuitionbd/etuition-cli/internal/identity"
	"github.com/etuitionbd/etuition-cli/internal/logging"
	"github.com/etuitionbd/etuition-cli/internal/models"
)

// Snapshot is the in-memory session aggregate. Loading stays true until
// the identity provider's first auth-state callback fires; it never
// returns to true for the remainder of the process lifetime.
type Snapshot struct {
	Profile *models.Profile
	Role    models.Role
	Loading bool
}

// Authenticated reports whether an identity is present.
func (s Snapshot) Authenticated() bool {
	return s.Profile != nil
}

// RoleStore is the subset of the persisted storage the service needs for
// per-identity role selections.
type RoleStore interface {
	Save(ctx context.Context, identityID string, role models.Role) error
	Load(ctx context.Context, identityID string) (models.Role, error)
}

// Subscription is a cancellable handle for session-change notifications.
type Subscription struct {
	cancel func()
}

func (s *Subscription) Cancel() {
	if s != nil && s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Service is the explicit, constructor-injected session store. It holds
// the single auth-state subscription for the lifetime of the application;
// Close releases it deterministically.
type Service struct {
	provider identity.Provider
	roles    RoleStore
	log      logging.Logger

	mu       sync.Mutex
	snap     Snapshot
	listener *identity.ListenerHandle
	subs     map[int]func(Snapshot)
	nextSub  int
}

// NewService constructs the session service and acquires the auth-state
// subscription. The session starts in the loading state; call
// provider.Start afterwards to restore persisted state and resolve it.
func NewService(provider identity.Provider, roles RoleStore, log logging.Logger) *Service {
	s := &Service{
		provider: provider,
		roles:    roles,
		log:      log,
		snap:     Snapshot{Loading: true},
		subs:     make(map[int]func(Snapshot)),
	}
	s.listener = provider.OnAuthStateChanged(s.handleAuthState)
	return s
}

// handleAuthState applies an identity-provider state change. Loading
// becomes false and the profile and role are resolved within the same
// synchronous tick of the callback.
func (s *Service) handleAuthState(u *models.Profile) {
	ctx := context.Background()

	s.mu.Lock()
	s.snap.Loading = false
	if u == nil {
		s.snap.Profile = nil
		s.snap.Role = models.RoleUnset
	} else {
		cp := *u
		s.snap.Profile = &cp
		s.snap.Role = s.resolveRole(ctx, u.ID)
	}
	snap := s.snap
	cbs := s.subscribers()
	s.mu.Unlock()

	s.notify(cbs, snap)
}

// resolveRole reads the persisted role for the identity. A missing or
// invalid value resolves to the default (student) and that default is
// persisted, so later reads of the same identity see the same answer.
// Called with s.mu held.
func (s *Service) resolveRole(ctx context.Context, identityID string) models.Role {
	stored, err := s.roles.Load(ctx, identityID)
	if err != nil {
		s.log.Error(ctx, "role load failed, using default", "identity", identityID, "error", err)
		return models.RoleStudent
	}
	if stored.Valid() {
		return stored
	}

	resolved := stored.Resolve()
	if err := s.roles.Save(ctx, identityID, resolved); err != nil {
		s.log.Error(ctx, "failed to persist default role", "identity", identityID, "error", err)
	}
	return resolved
}

// Current returns a copy of the session snapshot.
func (s *Service) Current() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snap
	if snap.Profile != nil {
		cp := *snap.Profile
		snap.Profile = &cp
	}
	return snap
}

// Subscribe registers cb for session-change notifications and returns a
// cancellable handle.
func (s *Service) Subscribe(cb func(Snapshot)) *Subscription {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = cb
	s.mu.Unlock()

	return &Subscription{cancel: func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}}
}

func (s *Service) subscribers() []func(Snapshot) {
	cbs := make([]func(Snapshot), 0, len(s.subs))
	for _, cb := range s.subs {
		cbs = append(cbs, cb)
	}
	return cbs
}

func (s *Service) notify(cbs []func(Snapshot), snap Snapshot) {
	for _, cb := range cbs {
		cb(snap)
	}
}

// SignUp creates a new identity, persists the chosen role keyed by the new
// identity id, and returns the created profile. Provider rejections
// (duplicate email, weak password) surface as common.ErrCredential.
func (s *Service) SignUp(ctx context.Context, email, password, displayName string, role models.Role) (*models.Profile, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required: %w", common.ErrValidation)
	}
	if displayName == "" {
		return nil, fmt.Errorf("display name is required: %w", common.ErrValidation)
	}

	profile, err := s.provider.SignUp(ctx, email, password, displayName)
	if err != nil {
		return nil, err
	}

	s.applyRole(ctx, profile.ID, role.Resolve())
	return profile, nil
}

// Login authenticates with email and password. Invalid credentials surface
// as common.ErrCredential.
func (s *Service) Login(ctx context.Context, email, password string) (*models.Profile, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required: %w", common.ErrValidation)
	}
	return s.provider.SignIn(ctx, email, password)
}

// Logout ends the session. Idempotent: logging out while anonymous is a
// no-op. The in-memory role clears via the auth-state callback.
func (s *Service) Logout(ctx context.Context) error {
	return s.provider.SignOut(ctx)
}

// FederatedSignIn runs the provider's Google sign-in flow. A valid role
// argument is persisted for the resulting identity id exactly as SignUp
// does; an Unset role leaves the stored role alone, so a returning user
// keeps their earlier choice (first-timers get the default through the
// auth-state callback's role resolution).
func (s *Service) FederatedSignIn(ctx context.Context, role models.Role) (*models.Profile, error) {
	profile, err := s.provider.FederatedSignIn(ctx)
	if err != nil {
		return nil, err
	}

	if role.Valid() {
		s.applyRole(ctx, profile.ID, role)
	}
	return profile, nil
}

// UpdateRole persists a new role for the currently authenticated identity.
// Silent no-op when no identity is authenticated.
func (s *Service) UpdateRole(ctx context.Context, role models.Role) error {
	s.mu.Lock()
	profile := s.snap.Profile
	s.mu.Unlock()
	if profile == nil {
		return nil
	}

	s.applyRole(ctx, profile.ID, role.Resolve())
	return nil
}

// applyRole persists the role for the identity and, when that identity is
// the current one, updates the snapshot and notifies subscribers.
func (s *Service) applyRole(ctx context.Context, identityID string, role models.Role) {
	if err := s.roles.Save(ctx, identityID, role); err != nil {
		s.log.Error(ctx, "failed to persist role", "identity", identityID, "error", err)
		return
	}

	s.mu.Lock()
	if s.snap.Profile == nil || s.snap.Profile.ID != identityID {
		s.mu.Unlock()
		return
	}
	s.snap.Role = role
	snap := s.snap
	cbs := s.subscribers()
	s.mu.Unlock()

	s.notify(cbs, snap)
}

// UpdateDisplayName pushes a new display name to the identity provider and
// reflects it in the snapshot. No-op when anonymous.
func (s *Service) UpdateDisplayName(ctx context.Context, displayName string) error {
	if displayName == "" {
		return fmt.Errorf("display name is required: %w", common.ErrValidation)
	}

	s.mu.Lock()
	signedIn := s.snap.Profile != nil
	s.mu.Unlock()
	if !signedIn {
		return nil
	}

	if err := s.provider.UpdateDisplayName(ctx, displayName); err != nil {
		return err
	}
	s.SetProfile(models.ProfilePatch{DisplayName: &displayName})
	return nil
}

// SetProfile merges backend-supplied profile fields into the in-memory
// identity without a provider round-trip, so the UI reflects a profile
// edit immediately. No-op when anonymous.
func (s *Service) SetProfile(patch models.ProfilePatch) {
	s.mu.Lock()
	if s.snap.Profile == nil {
		s.mu.Unlock()
		return
	}
	merged := models.MergeProfile(*s.snap.Profile, patch)
	s.snap.Profile = &merged
	snap := s.snap
	cbs := s.subscribers()
	s.mu.Unlock()

	s.notify(cbs, snap)
}

// Close releases the auth-state subscription and drops all session
// subscribers.
func (s *Service) Close() {
	s.listener.Cancel()
	s.mu.Lock()
	s.subs = make(map[int]func(Snapshot))
	s.mu.Unlock()
}
