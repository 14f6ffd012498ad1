package storage

import (
	"context"

	"github.com/etuitionbd/etuition-cli/internal/common"
	"github.com/etuitionbd/etuition-cli/internal/models"
)

// TokenStore persists the opaque bearer credential under a fixed key.
type TokenStore struct {
	repo Repository
}

func NewTokenStore(repo Repository) *TokenStore {
	return &TokenStore{repo: repo}
}

func (s *TokenStore) Save(ctx context.Context, token string) error {
	return s.repo.Set(ctx, common.TokenKey, token)
}

// Load returns the persisted token, or ("", nil) when none is stored.
func (s *TokenStore) Load(ctx context.Context) (string, error) {
	v, ok, err := s.repo.Get(ctx, common.TokenKey)
	if err != nil || !ok {
		return "", err
	}
	return v, nil
}

func (s *TokenStore) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, common.TokenKey)
}

// RoleStore persists role selections keyed per identity id. Role data for
// one identity must never be visible when resolving another.
type RoleStore struct {
	repo Repository
}

func NewRoleStore(repo Repository) *RoleStore {
	return &RoleStore{repo: repo}
}

func roleKey(identityID string) string {
	return common.RoleKeyPrefix + identityID
}

func (s *RoleStore) Save(ctx context.Context, identityID string, role models.Role) error {
	return s.repo.Set(ctx, roleKey(identityID), role.String())
}

// Load returns the persisted role for the identity. Absent or unreadable
// values parse as models.RoleUnset; the caller decides how to resolve it.
func (s *RoleStore) Load(ctx context.Context, identityID string) (models.Role, error) {
	v, ok, err := s.repo.Get(ctx, roleKey(identityID))
	if err != nil {
		return models.RoleUnset, err
	}
	if !ok {
		return models.RoleUnset, nil
	}
	return models.ParseRole(v), nil
}

// Theme values accepted by the UI.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// ThemeStore persists the UI theme under a fixed key.
type ThemeStore struct {
	repo Repository
}

func NewThemeStore(repo Repository) *ThemeStore {
	return &ThemeStore{repo: repo}
}

func (s *ThemeStore) Save(ctx context.Context, theme string) error {
	if theme != ThemeDark && theme != ThemeLight {
		theme = ThemeLight
	}
	return s.repo.Set(ctx, common.ThemeKey, theme)
}

// Load returns the persisted theme, defaulting to light.
func (s *ThemeStore) Load(ctx context.Context) (string, error) {
	v, ok, err := s.repo.Get(ctx, common.ThemeKey)
	if err != nil {
		return ThemeLight, err
	}
	if !ok || (v != ThemeDark && v != ThemeLight) {
		return ThemeLight, nil
	}
	return v, nil
}
