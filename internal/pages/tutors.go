package pages

import (
	"context"

	"github.com/etuitionbd/etuition-cli/internal/api"
)

type Tutor struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Subjects []string `json:"subjects,omitempty"`
	Location string   `json:"location,omitempty"`
	Bio      string   `json:"bio,omitempty"`
	Rating   float64  `json:"rating,omitempty"`
}

type Tutors struct {
	api api.Client
}

func NewTutors(client api.Client) *Tutors {
	return &Tutors{api: client}
}

func (t *Tutors) Browse(ctx context.Context) ([]Tutor, error) {
	var out []Tutor
	if err := t.api.Get(ctx, "/users/tutors", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (t *Tutors) Get(ctx context.Context, id string) (*Tutor, error) {
	var out Tutor
	if err := t.api.Get(ctx, "/users/tutors/"+id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
