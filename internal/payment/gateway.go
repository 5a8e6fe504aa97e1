package payment

import (
	"context"
	"errors"
	"math/rand"
)

// ErrPaymentDeclined is a transient processing failure. It is surfaced to
// the caller as-is; nothing retries automatically.
var ErrPaymentDeclined = errors.New("payment declined")

// Gateway abstracts the card processor so the default simulated processor
// and the Stripe-backed one are interchangeable.
type Gateway interface {
	Charge(ctx context.Context, amount float64, description string) error
	Refund(ctx context.Context, amount float64, description string) error
}

// SimulatedGateway approves charges except for an independent random
// failure draw. The draw source is injectable so tests are deterministic.
type SimulatedGateway struct {
	FailureRate float64
	Draw        func() float64
}

// NewSimulatedGateway returns a gateway with the stock 5% failure rate.
func NewSimulatedGateway() *SimulatedGateway {
	return &SimulatedGateway{FailureRate: 0.05, Draw: rand.Float64}
}

func (g *SimulatedGateway) Charge(ctx context.Context, amount float64, description string) error {
	_ = ctx
	if g.Draw != nil && g.Draw() < g.FailureRate {
		return ErrPaymentDeclined
	}
	return nil
}

func (g *SimulatedGateway) Refund(ctx context.Context, amount float64, description string) error {
	_ = ctx
	return nil
}
