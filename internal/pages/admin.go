package pages

import (
	"context"

	"github.com/etuitionbd/etuition-cli/internal/api"
)

type AdminUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role,omitempty"`
}

// Admin backs the moderation pages shown to admin-role users.
type Admin struct {
	api api.Client
}

func NewAdmin(client api.Client) *Admin {
	return &Admin{api: client}
}

func (a *Admin) Users(ctx context.Context) ([]AdminUser, error) {
	var out []AdminUser
	if err := a.api.Get(ctx, "/admin/users", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *Admin) DeleteUser(ctx context.Context, id string) error {
	return a.api.Delete(ctx, "/admin/users/"+id)
}

func (a *Admin) Tuitions(ctx context.Context) ([]Tuition, error) {
	var out []Tuition
	if err := a.api.Get(ctx, "/admin/tuitions", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *Admin) ApproveTuition(ctx context.Context, id string) error {
	return a.api.Put(ctx, "/admin/tuitions/"+id+"/approve", nil, nil)
}

func (a *Admin) RejectTuition(ctx context.Context, id string) error {
	return a.api.Put(ctx, "/admin/tuitions/"+id+"/reject", nil, nil)
}
