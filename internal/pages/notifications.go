package pages

import (
	"context"

	"github.com/etuitionbd/etuition-cli/internal/api"
)

type Notification struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type Notifications struct {
	api api.Client
}

func NewNotifications(client api.Client) *Notifications {
	return &Notifications{api: client}
}

func (n *Notifications) List(ctx context.Context) ([]Notification, error) {
	var out []Notification
	if err := n.api.Get(ctx, "/notifications", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (n *Notifications) MarkRead(ctx context.Context, id string) error {
	return n.api.Put(ctx, "/notifications/"+id+"/read", nil, nil)
}
