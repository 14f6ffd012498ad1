package pages

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/etuitionbd/etuition-cli/internal/api"
	"github.com/etuitionbd/etuition-cli/internal/common"
)

type Contact struct {
	api api.Client
}

func NewContact(client api.Client) *Contact {
	return &Contact{api: client}
}

// Send submits a contact-form message. The client assigns the ticket id
// so a resubmission after a flaky response can be de-duplicated.
func (c *Contact) Send(ctx context.Context, name, email, message string) (string, error) {
	if name == "" || email == "" || message == "" {
		return "", fmt.Errorf("name, email and message are required: %w", common.ErrValidation)
	}

	ticketID := uuid.NewString()
	err := c.api.Post(ctx, "/contact", map[string]string{
		"ticketId": ticketID,
		"name":     name,
		"email":    email,
		"message":  message,
	}, nil)
	if err != nil {
		return "", err
	}
	return ticketID, nil
}
