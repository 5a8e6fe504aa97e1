// Package payment covers payment methods, fare computation and the
// transaction ledger.
package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/ride-booking/internal/clock"
	"github.com/example/ride-booking/internal/events"
	"github.com/example/ride-booking/internal/models"
	"github.com/example/ride-booking/internal/storage"
)

// ErrInvalidPaymentMethod is returned when a payment references a method
// id that does not resolve. It is checked before any gateway call.
var ErrInvalidPaymentMethod = errors.New("invalid payment method")

const defaultBaseFare = 15.00

// Request describes a payment to process against a stored method.
type Request struct {
	BookingID       int                    `json:"booking_id"`
	Amount          float64                `json:"amount"`
	PaymentMethodID int                    `json:"payment_method_id"`
	Type            models.TransactionType `json:"type"`
	Description     string                 `json:"description"`
}

type Service struct {
	methods  *storage.MethodStore
	ledger   storage.Ledger
	gateway  Gateway
	clock    clock.Clock
	producer *events.Producer

	Latency time.Duration
}

func NewService(methods *storage.MethodStore, ledger storage.Ledger, gateway Gateway, clk clock.Clock, producer *events.Producer) *Service {
	return &Service{methods: methods, ledger: ledger, gateway: gateway, clock: clk, producer: producer}
}

func (s *Service) PaymentMethods(ctx context.Context) ([]models.PaymentMethod, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}
	return s.methods.List(), nil
}

func (s *Service) Transactions(ctx context.Context) ([]models.Transaction, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}
	return s.ledger.ListDescending(ctx)
}

// CardInput is the add-card form payload.
type CardInput struct {
	CardNumber     string `json:"card_number"`
	ExpiryDate     string `json:"expiry_date"`
	CardholderName string `json:"cardholder_name"`
}

func (s *Service) AddPaymentMethod(ctx context.Context, card CardInput) (models.PaymentMethod, error) {
	if err := s.simulate(ctx); err != nil {
		return models.PaymentMethod{}, err
	}
	m := models.PaymentMethod{
		CardNumber:     card.CardNumber,
		ExpiryDate:     card.ExpiryDate,
		CardholderName: card.CardholderName,
		Brand:          DetectBrand(card.CardNumber),
		CreatedAt:      s.clock.Now(),
	}
	return s.methods.Add(m), nil
}

func (s *Service) RemovePaymentMethod(ctx context.Context, id int) error {
	if err := s.simulate(ctx); err != nil {
		return err
	}
	if err := s.methods.Remove(id); err != nil {
		return fmt.Errorf("remove payment method %d: %w", id, err)
	}
	return nil
}

func (s *Service) SetDefaultPaymentMethod(ctx context.Context, id int) (models.PaymentMethod, error) {
	if err := s.simulate(ctx); err != nil {
		return models.PaymentMethod{}, err
	}
	m, err := s.methods.SetDefault(id)
	if err != nil {
		return models.PaymentMethod{}, fmt.Errorf("set default payment method %d: %w", id, err)
	}
	return m, nil
}

// CalculateFare is a pure function of the booking request. Base fare comes
// from the selected vehicle's price, falling back to the request's
// estimated fare, then to a flat default. No rounding is applied.
func CalculateFare(req models.BookingRequest) models.FareBreakdown {
	base := defaultBaseFare
	switch {
	case req.Vehicle != nil && req.Vehicle.Price > 0:
		base = req.Vehicle.Price
	case req.EstimatedFare > 0:
		base = req.EstimatedFare
	}
	serviceFee := 0.10 * base
	tax := 0.08 * (base + serviceFee)
	return models.FareBreakdown{
		BaseFare:   base,
		ServiceFee: serviceFee,
		Tax:        tax,
		Total:      base + serviceFee + tax,
	}
}

// ProcessPayment charges the referenced method and appends a completed
// transaction snapshotting the card details. The method lookup happens
// before the gateway call, so an unknown method never reaches the
// processor.
func (s *Service) ProcessPayment(ctx context.Context, req Request) (models.Transaction, error) {
	if err := s.simulate(ctx); err != nil {
		return models.Transaction{}, err
	}
	method, err := s.methods.Get(req.PaymentMethodID)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("process payment: %w", ErrInvalidPaymentMethod)
	}
	if err := s.gateway.Charge(ctx, req.Amount, req.Description); err != nil {
		return models.Transaction{}, fmt.Errorf("process payment: %w", err)
	}

	txType := req.Type
	if txType == "" {
		txType = models.TxRide
	}
	tx := models.Transaction{
		Type:        txType,
		Amount:      req.Amount,
		Description: req.Description,
		Status:      "completed",
		BookingID:   req.BookingID,
		PaymentMethod: models.MethodSnapshot{
			CardNumber:     method.CardNumber,
			Brand:          method.Brand,
			CardholderName: method.CardholderName,
		},
		Timestamp: s.clock.Now(),
	}
	tx, err = s.ledger.Append(ctx, tx)
	if err != nil {
		return models.Transaction{}, err
	}
	_ = s.producer.Publish(events.Envelope{
		Type:      events.TypePaymentCompleted,
		BookingID: tx.BookingID,
		Amount:    tx.Amount,
		Status:    tx.Status,
		At:        tx.Timestamp,
	})
	return tx, nil
}

// RefundPayment appends a refund transaction referencing the original by
// description text only; the original entry is never edited.
func (s *Service) RefundPayment(ctx context.Context, transactionID int, amount float64) (models.Transaction, error) {
	if err := s.simulate(ctx); err != nil {
		return models.Transaction{}, err
	}
	orig, err := s.ledger.Get(ctx, transactionID)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("refund transaction %d: %w", transactionID, err)
	}
	desc := fmt.Sprintf("Refund for transaction #%d", transactionID)
	if err := s.gateway.Refund(ctx, amount, desc); err != nil {
		return models.Transaction{}, fmt.Errorf("refund transaction %d: %w", transactionID, err)
	}
	tx := models.Transaction{
		Type:          models.TxRefund,
		Amount:        amount,
		Description:   desc,
		Status:        "completed",
		BookingID:     orig.BookingID,
		PaymentMethod: orig.PaymentMethod,
		Timestamp:     s.clock.Now(),
	}
	tx, err = s.ledger.Append(ctx, tx)
	if err != nil {
		return models.Transaction{}, err
	}
	_ = s.producer.Publish(events.Envelope{
		Type:      events.TypePaymentRefunded,
		BookingID: tx.BookingID,
		Amount:    tx.Amount,
		Status:    tx.Status,
		At:        tx.Timestamp,
	})
	return tx, nil
}

// DetectBrand derives the card brand from the leading digit.
func DetectBrand(cardNumber string) string {
	number := strings.ReplaceAll(cardNumber, " ", "")
	switch {
	case strings.HasPrefix(number, "4"):
		return "visa"
	case strings.HasPrefix(number, "5"), strings.HasPrefix(number, "2"):
		return "mastercard"
	case strings.HasPrefix(number, "3"):
		return "amex"
	case strings.HasPrefix(number, "6"):
		return "discover"
	default:
		return "unknown"
	}
}

func (s *Service) simulate(ctx context.Context) error {
	if s.Latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.Latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
