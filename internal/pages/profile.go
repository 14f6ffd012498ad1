package pages

import (
	"context"

	"github.com/etuitionbd/etuition-cli/internal/api"
	"github.com/etuitionbd/etuition-cli/internal/models"
	"github.com/etuitionbd/etuition-cli/internal/session"
)

// Profile loads and edits the signed-in user's backend profile. A
// successful edit is merged into the session in-memory so the UI reflects
// it immediately, without waiting for the identity provider.
type Profile struct {
	api     api.Client
	session *session.Service
}

func NewProfile(client api.Client, sess *session.Service) *Profile {
	return &Profile{api: client, session: sess}
}

// Me fetches the merged backend view of the current user.
func (p *Profile) Me(ctx context.Context) (*models.Profile, error) {
	var out models.Profile
	if err := p.api.Get(ctx, "/auth/me", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update submits the patch to the backend and, on success, merges it into
// the session snapshot.
func (p *Profile) Update(ctx context.Context, patch models.ProfilePatch) error {
	if err := p.api.Put(ctx, "/users/me", patch, nil); err != nil {
		return err
	}
	p.session.SetProfile(patch)
	return nil
}
