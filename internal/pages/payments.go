package pages

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/etuitionbd/etuition-cli/internal/api"
	"github.com/etuitionbd/etuition-cli/internal/common"
)

// Gateway is the opaque payment collaborator: the embedded card-entry
// widget plus its client-side confirmation call.
type Gateway interface {
	Confirm(ctx context.Context, clientSecret string, card CardDetails) error
}

type CardDetails struct {
	Number   string
	ExpMonth int
	ExpYear  int
	CVC      string
}

type PaymentRecord struct {
	ID        string `json:"id"`
	IntentID  string `json:"intentId"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

// Payments orchestrates create intent -> confirm -> notify backend,
// treating the gateway as an opaque boundary.
type Payments struct {
	api     api.Client
	gateway Gateway
}

func NewPayments(client api.Client, gateway Gateway) *Payments {
	return &Payments{api: client, gateway: gateway}
}

type intentResponse struct {
	IntentID     string `json:"intentId"`
	ClientSecret string `json:"clientSecret"`
}

// Pay runs the full payment flow for an accepted application. The
// idempotency key guards against double-charging on retries.
func (p *Payments) Pay(ctx context.Context, applicationID string, amount int64, card CardDetails) error {
	if applicationID == "" || amount <= 0 {
		return fmt.Errorf("application id and a positive amount are required: %w", common.ErrValidation)
	}

	var intent intentResponse
	err := p.api.Post(ctx, "/payments/create-intent", map[string]any{
		"applicationId":  applicationID,
		"amount":         amount,
		"idempotencyKey": uuid.NewString(),
	}, &intent)
	if err != nil {
		return err
	}

	if err := p.gateway.Confirm(ctx, intent.ClientSecret, card); err != nil {
		return fmt.Errorf("payment confirmation failed: %w", err)
	}

	return p.api.Post(ctx, "/payments/record", map[string]string{"intentId": intent.IntentID}, nil)
}

// History lists the current user's payments.
func (p *Payments) History(ctx context.Context) ([]PaymentRecord, error) {
	var out []PaymentRecord
	if err := p.api.Get(ctx, "/payments", &out); err != nil {
		return nil, err
	}
	return out, nil
}
