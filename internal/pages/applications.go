package pages

import (
	"context"
	"fmt"

	"github.com/etuitionbd/etuition-cli/internal/api"
	"github.com/etuitionbd/etuition-cli/internal/common"
)

type Application struct {
	ID        string `json:"id,omitempty"`
	TuitionID string `json:"tuitionId"`
	TutorID   string `json:"tutorId,omitempty"`
	CoverNote string `json:"coverNote,omitempty"`
	Status    string `json:"status,omitempty"`
}

type Applications struct {
	api api.Client
}

func NewApplications(client api.Client) *Applications {
	return &Applications{api: client}
}

// Apply submits a tutor's application for a tuition.
func (a *Applications) Apply(ctx context.Context, tuitionID, coverNote string) error {
	if tuitionID == "" {
		return fmt.Errorf("tuition id is required: %w", common.ErrValidation)
	}
	body := Application{TuitionID: tuitionID, CoverNote: coverNote}
	return a.api.Post(ctx, "/applications", body, nil)
}

// Mine lists the current tutor's applications.
func (a *Applications) Mine(ctx context.Context) ([]Application, error) {
	var out []Application
	if err := a.api.Get(ctx, "/applications/mine", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ForTuition lists applications received for a tuition the current user
// posted.
func (a *Applications) ForTuition(ctx context.Context, tuitionID string) ([]Application, error) {
	var out []Application
	if err := a.api.Get(ctx, "/applications?tuitionId="+tuitionID, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetStatus accepts or rejects an application.
func (a *Applications) SetStatus(ctx context.Context, id, status string) error {
	if status != "accepted" && status != "rejected" {
		return fmt.Errorf("status must be accepted or rejected: %w", common.ErrValidation)
	}
	return a.api.Put(ctx, "/applications/"+id, map[string]string{"status": status}, nil)
}
