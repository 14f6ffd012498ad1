package pages

import (
	"context"
	"fmt"

	"github.com/etuitionbd/etuition-cli/internal/api"
	"github.com/etuitionbd/etuition-cli/internal/common"
)

type Schedule struct {
	ID        string `json:"id,omitempty"`
	TuitionID string `json:"tuitionId"`
	Day       string `json:"day"`
	Time      string `json:"time"`
	Note      string `json:"note,omitempty"`
}

type Schedules struct {
	api api.Client
}

func NewSchedules(client api.Client) *Schedules {
	return &Schedules{api: client}
}

func (s *Schedules) List(ctx context.Context) ([]Schedule, error) {
	var out []Schedule
	if err := s.api.Get(ctx, "/schedules", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Schedules) Create(ctx context.Context, sc Schedule) error {
	if sc.TuitionID == "" || sc.Day == "" || sc.Time == "" {
		return fmt.Errorf("tuition, day and time are required: %w", common.ErrValidation)
	}
	return s.api.Post(ctx, "/schedules", sc, nil)
}

func (s *Schedules) Delete(ctx context.Context, id string) error {
	return s.api.Delete(ctx, "/schedules/"+id)
}
