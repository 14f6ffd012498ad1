package pages

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/etuitionbd/etuition-cli/internal/common"
)

// CardGateway talks to the external card processor directly, the way the
// processor's embedded widget would. The backend never sees card details;
// only the client secret ties the confirmation to the created intent.
type CardGateway struct {
	baseURL string
	http    *http.Client
}

func NewCardGateway(baseURL string) *CardGateway {
	return &CardGateway{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type confirmRequest struct {
	ClientSecret string `json:"clientSecret"`
	Number       string `json:"number"`
	ExpMonth     int    `json:"expMonth"`
	ExpYear      int    `json:"expYear"`
	CVC          string `json:"cvc"`
}

func (g *CardGateway) Confirm(ctx context.Context, clientSecret string, card CardDetails) error {
	body, err := json.Marshal(confirmRequest{
		ClientSecret: clientSecret,
		Number:       card.Number,
		ExpMonth:     card.ExpMonth,
		ExpYear:      card.ExpYear,
		CVC:          card.CVC,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/confirm", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		return fmt.Errorf("gateway: %w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("gateway declined the card (status %d)", resp.StatusCode)
	}
	return nil
}
