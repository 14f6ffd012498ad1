// Package pages implements the page-level services behind the routed UI.
// Each service owns one backend endpoint family; payloads beyond the
// fields shown here are owned by the backend. Call sites catch errors and
// turn them into user notices.
package pages

import (
	"context"
	"fmt"

	"github.com/etuitionbd/etuition-cli/internal/api"
	"github.com/etuitionbd/etuition-cli/internal/common"
)

type Tuition struct {
	ID         string `json:"id,omitempty"`
	Title      string `json:"title"`
	Subject    string `json:"subject"`
	ClassLevel string `json:"classLevel"`
	Location   string `json:"location"`
	Salary     string `json:"salary"`
	Status     string `json:"status,omitempty"`
	PostedBy   string `json:"postedBy,omitempty"`
}

type Tuitions struct {
	api api.Client
}

func NewTuitions(client api.Client) *Tuitions {
	return &Tuitions{api: client}
}

func (t *Tuitions) Browse(ctx context.Context) ([]Tuition, error) {
	var out []Tuition
	if err := t.api.Get(ctx, "/tuitions", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (t *Tuitions) Get(ctx context.Context, id string) (*Tuition, error) {
	var out Tuition
	if err := t.api.Get(ctx, "/tuitions/"+id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Mine lists tuitions posted by the current user.
func (t *Tuitions) Mine(ctx context.Context) ([]Tuition, error) {
	var out []Tuition
	if err := t.api.Get(ctx, "/tuitions/mine", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Post submits a new tuition. Required fields are checked client-side and
// block the request entirely when missing.
func (t *Tuitions) Post(ctx context.Context, tn Tuition) error {
	if err := validateTuition(tn); err != nil {
		return err
	}
	return t.api.Post(ctx, "/tuitions", tn, nil)
}

func (t *Tuitions) Update(ctx context.Context, id string, tn Tuition) error {
	if err := validateTuition(tn); err != nil {
		return err
	}
	return t.api.Put(ctx, "/tuitions/"+id, tn, nil)
}

func (t *Tuitions) Delete(ctx context.Context, id string) error {
	return t.api.Delete(ctx, "/tuitions/"+id)
}

func validateTuition(tn Tuition) error {
	if tn.Title == "" || tn.Subject == "" || tn.Location == "" {
		return fmt.Errorf("title, subject and location are required: %w", common.ErrValidation)
	}
	return nil
}
