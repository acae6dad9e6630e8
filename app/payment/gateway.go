// Package payment wraps the external card-charge API behind a narrow
// interface. The resolver layer never sees card data: the client tokenises
// the card in the browser and the server only ever handles the opaque
// token.
package payment

import (
	"context"
	"fmt"
	"time"

	apperr "github.com/shashiranjanraj/storefront/app/errors"
	"github.com/shashiranjanraj/storefront/config"
	httpclient "github.com/shashiranjanraj/storefront/pkg/http"
)

// ChargeRequest describes one charge attempt. Amount is in minor currency
// units and is always the server-computed trusted total.
type ChargeRequest struct {
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Token       string `json:"source"`
	Description string `json:"description,omitempty"`
}

// Charge is the gateway's confirmation of a successful charge.
type Charge struct {
	ID     string `json:"id"`
	Amount int64  `json:"amount"`
	Status string `json:"status"`
}

// Gateway is the payment collaborator consumed by the checkout service.
type Gateway interface {
	// CreateCharge submits one charge. Implementations must not retry
	// internally — a failed attempt surfaces immediately so the caller
	// can decide, and no charge is ever submitted twice per checkout.
	CreateCharge(ctx context.Context, req ChargeRequest) (Charge, error)
}

// HTTPGateway talks to the real charge API over HTTPS.
type HTTPGateway struct {
	apiURL    string
	secretKey string
	timeout   time.Duration
}

// NewHTTPGateway builds a gateway from config.
func NewHTTPGateway() *HTTPGateway {
	return &HTTPGateway{
		apiURL:    config.PaymentAPIURL(),
		secretKey: config.PaymentSecretKey(),
		timeout:   15 * time.Second,
	}
}

// FromConfig picks the gateway for this environment: the real HTTP gateway
// when a secret key is configured, otherwise the fake so local development
// can check out without a payment account.
func FromConfig() Gateway {
	if config.PaymentSecretKey() == "" {
		return NewFakeGateway()
	}
	return NewHTTPGateway()
}

// chargeResponse mirrors the gateway's wire format: either a charge object
// or an embedded error.
type chargeResponse struct {
	Charge
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// CreateCharge submits the charge once. Every failure mode maps to
// PaymentFailed; nothing has been written locally when this returns.
func (g *HTTPGateway) CreateCharge(ctx context.Context, req ChargeRequest) (Charge, error) {
	if g.secretKey == "" {
		return Charge{}, apperr.New(apperr.PaymentFailed, "payment gateway not configured")
	}

	resp, err := httpclient.Post(g.apiURL).
		Bearer(g.secretKey).
		Body(req).
		Timeout(g.timeout).
		WithContext(ctx).
		Send()
	if err != nil {
		return Charge{}, apperr.Wrap(apperr.PaymentFailed, "payment gateway unreachable", err)
	}

	var out chargeResponse
	if err := resp.JSON(&out); err != nil {
		return Charge{}, apperr.Wrap(apperr.PaymentFailed, "payment gateway returned an unreadable response", err)
	}

	if out.Error != nil {
		return Charge{}, apperr.New(apperr.PaymentFailed,
			fmt.Sprintf("payment declined: %s", out.Error.Message))
	}
	if !resp.OK() || out.ID == "" {
		return Charge{}, apperr.New(apperr.PaymentFailed,
			fmt.Sprintf("payment failed with status %d", resp.StatusCode))
	}

	return out.Charge, nil
}
