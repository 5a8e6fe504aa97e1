package payment

import (
	"context"
	"os"

	stripe "github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"github.com/stripe/stripe-go/v74/refund"
)

// StripeGateway charges and refunds through stripe-go PaymentIntents.
// Amounts are converted to the smallest currency unit.
type StripeGateway struct {
	Currency string
}

// NewStripeGateway initializes the stripe client with the STRIPE_API_KEY
// env var.
func NewStripeGateway(currency string) *StripeGateway {
	stripe.Key = os.Getenv("STRIPE_API_KEY")
	if currency == "" {
		currency = "usd"
	}
	return &StripeGateway{Currency: currency}
}

func (g *StripeGateway) Charge(ctx context.Context, amount float64, description string) error {
	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(toMinorUnits(amount)),
		Currency:    stripe.String(g.Currency),
		Description: stripe.String(description),
		Confirm:     stripe.Bool(true),
	}
	params.Context = ctx
	_, err := paymentintent.New(params)
	return err
}

func (g *StripeGateway) Refund(ctx context.Context, amount float64, description string) error {
	params := &stripe.RefundParams{
		Amount: stripe.Int64(toMinorUnits(amount)),
	}
	params.Context = ctx
	_, err := refund.New(params)
	return err
}

func toMinorUnits(amount float64) int64 {
	return int64(amount*100 + 0.5)
}
