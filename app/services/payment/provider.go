// Package payment creates payments with a gateway and reads back their
// status. The active provider is chosen once at startup.
package payment

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/trinetrasoft/cloud-kitchen/app/models"
)

var ErrUnknownReference = errors.New("payment reference not found at provider")

type Customer struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

type Request struct {
	// Reference is our id for the payment: an order number or a
	// subscription reference.
	Reference   string
	Amount      decimal.Decimal
	Description string
	Customer    Customer
}

type Intent struct {
	Reference   string `json:"reference"`
	IntentID    string `json:"intentId"`
	Token       string `json:"clientSecret,omitempty"`
	RedirectURL string `json:"redirectUrl,omitempty"`
	// Settled is true when the money was collected during CreatePayment.
	Settled bool `json:"settled"`
}

type Result struct {
	Reference string
	Status    models.PaymentStatus
	Method    string
}

type Provider interface {
	Name() string
	CreatePayment(ctx context.Context, req Request) (*Intent, error)
	CheckStatus(ctx context.Context, reference string) (*Result, error)
}

// MinorUnits converts an amount to cents, rounding half away from zero.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Round(2).Shift(2).IntPart()
}
