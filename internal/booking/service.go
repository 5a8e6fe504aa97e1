// Package booking implements booking CRUD and the cancellation-fee policy.
package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/example/ride-booking/internal/clock"
	"github.com/example/ride-booking/internal/events"
	"github.com/example/ride-booking/internal/fixtures"
	"github.com/example/ride-booking/internal/models"
	"github.com/example/ride-booking/internal/storage"
)

const (
	// FreeCancellationWindow is how long after creation a booking can be
	// cancelled without charge.
	FreeCancellationWindow = 15 * time.Minute
	// CancellationFee is the flat fee charged past the free window.
	CancellationFee = 5.00
)

// CancelResult is the outcome of a cancellation attempt. When a fee applies
// and the caller has not confirmed, RequiresConfirmation is true and the
// stored booking is left untouched.
type CancelResult struct {
	RequiresConfirmation bool           `json:"requires_confirmation"`
	CancellationFee      float64        `json:"cancellation_fee"`
	Booking              models.Booking `json:"booking"`
}

type Service struct {
	store    *storage.BookingStore
	clock    clock.Clock
	producer *events.Producer

	// Latency simulates upstream call delay. Zero in tests.
	Latency time.Duration
}

func NewService(store *storage.BookingStore, clk clock.Clock, producer *events.Producer) *Service {
	return &Service{store: store, clock: clk, producer: producer}
}

// UpcomingBookings returns bookings that are confirmed or pending, in
// underlying store order.
func (s *Service) UpcomingBookings(ctx context.Context) ([]models.Booking, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}
	var out []models.Booking
	for _, b := range s.store.List() {
		if b.Status == models.BookingConfirmed || b.Status == models.BookingPending {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *Service) MonthlyBookings(ctx context.Context) ([]models.MonthlyBooking, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}
	return s.store.ListMonthly(), nil
}

// CreateBooking confirms the request immediately and attaches the demo
// driver; real matching runs in the ride machine afterwards.
func (s *Service) CreateBooking(ctx context.Context, req models.BookingRequest) (models.Booking, error) {
	if err := s.simulate(ctx); err != nil {
		return models.Booking{}, err
	}
	driver := fixtures.MockDriver()
	b := models.Booking{
		PickupLocation: req.PickupLocation,
		DropLocation:   req.DropLocation,
		VehicleType:    req.VehicleType,
		ScheduledTime:  req.ScheduledTime,
		Status:         models.BookingConfirmed,
		EstimatedFare:  req.EstimatedFare,
		PaymentID:      req.PaymentID,
		Driver:         &driver,
		CreatedAt:      s.clock.Now(),
	}
	b = s.store.Append(b)
	_ = s.producer.Publish(events.Envelope{
		Type:      events.TypeBookingCreated,
		BookingID: b.ID,
		Amount:    b.EstimatedFare,
		Status:    string(b.Status),
		At:        b.CreatedAt,
	})
	return b, nil
}

// CancelBooking applies the two-phase cancellation policy. Within the free
// window, or when force is set, the booking is cancelled and the fee
// recorded. Past the window without force, the fee is quoted and nothing
// is mutated.
func (s *Service) CancelBooking(ctx context.Context, id int, force bool) (CancelResult, error) {
	if err := s.simulate(ctx); err != nil {
		return CancelResult{}, err
	}
	b, err := s.store.Get(id)
	if err != nil {
		return CancelResult{}, fmt.Errorf("cancel booking %d: %w", id, err)
	}

	fee := s.feeFor(b)
	if fee > 0 && !force {
		return CancelResult{RequiresConfirmation: true, CancellationFee: fee, Booking: b}, nil
	}

	now := s.clock.Now()
	b.Status = models.BookingCancelled
	b.CancelledAt = &now
	b.CancellationFee = fee
	if err := s.store.Update(b); err != nil {
		return CancelResult{}, err
	}
	_ = s.producer.Publish(events.Envelope{
		Type:      events.TypeBookingCancelled,
		BookingID: b.ID,
		Amount:    fee,
		Status:    string(b.Status),
		At:        now,
	})
	return CancelResult{CancellationFee: fee, Booking: b}, nil
}

func (s *Service) feeFor(b models.Booking) float64 {
	if s.clock.Now().Sub(b.CreatedAt) < FreeCancellationWindow {
		return 0
	}
	return CancellationFee
}

func (s *Service) ModifyBooking(ctx context.Context, id int, patch models.BookingPatch) (models.Booking, error) {
	if err := s.simulate(ctx); err != nil {
		return models.Booking{}, err
	}
	b, err := s.store.Get(id)
	if err != nil {
		return models.Booking{}, fmt.Errorf("modify booking %d: %w", id, err)
	}
	if patch.PickupLocation != nil {
		b.PickupLocation = *patch.PickupLocation
	}
	if patch.DropLocation != nil {
		b.DropLocation = *patch.DropLocation
	}
	if patch.VehicleType != nil {
		b.VehicleType = *patch.VehicleType
	}
	if patch.ScheduledTime != nil {
		b.ScheduledTime = *patch.ScheduledTime
	}
	if patch.EstimatedFare != nil {
		b.EstimatedFare = *patch.EstimatedFare
	}
	now := s.clock.Now()
	b.ModifiedAt = &now
	if err := s.store.Update(b); err != nil {
		return models.Booking{}, err
	}
	return b, nil
}

// CompleteBooking marks a booking completed once its ride has finished.
func (s *Service) CompleteBooking(ctx context.Context, id int) (models.Booking, error) {
	if err := s.simulate(ctx); err != nil {
		return models.Booking{}, err
	}
	b, err := s.store.Get(id)
	if err != nil {
		return models.Booking{}, fmt.Errorf("complete booking %d: %w", id, err)
	}
	b.Status = models.BookingCompleted
	now := s.clock.Now()
	b.ModifiedAt = &now
	if err := s.store.Update(b); err != nil {
		return models.Booking{}, err
	}
	return b, nil
}

func (s *Service) CreateMonthlyBooking(ctx context.Context, m models.MonthlyBooking) (models.MonthlyBooking, error) {
	if err := s.simulate(ctx); err != nil {
		return models.MonthlyBooking{}, err
	}
	m.IsActive = true
	m.CreatedAt = s.clock.Now()
	m.ModifiedAt = nil
	return s.store.AppendMonthly(m), nil
}

// PauseMonthlyBooking toggles the active flag; calling it on a paused plan
// resumes it.
func (s *Service) PauseMonthlyBooking(ctx context.Context, id int) (models.MonthlyBooking, error) {
	if err := s.simulate(ctx); err != nil {
		return models.MonthlyBooking{}, err
	}
	m, err := s.store.GetMonthly(id)
	if err != nil {
		return models.MonthlyBooking{}, fmt.Errorf("pause monthly booking %d: %w", id, err)
	}
	m.IsActive = !m.IsActive
	if err := s.store.UpdateMonthly(m); err != nil {
		return models.MonthlyBooking{}, err
	}
	return m, nil
}

func (s *Service) ModifyMonthlyBooking(ctx context.Context, id int, patch models.MonthlyBookingPatch) (models.MonthlyBooking, error) {
	if err := s.simulate(ctx); err != nil {
		return models.MonthlyBooking{}, err
	}
	m, err := s.store.GetMonthly(id)
	if err != nil {
		return models.MonthlyBooking{}, fmt.Errorf("modify monthly booking %d: %w", id, err)
	}
	if patch.Title != nil {
		m.Title = *patch.Title
	}
	if patch.Pickup != nil {
		m.Pickup = *patch.Pickup
	}
	if patch.Drop != nil {
		m.Drop = *patch.Drop
	}
	if patch.Schedule != nil {
		m.Schedule = *patch.Schedule
	}
	if patch.Frequency != nil {
		m.Frequency = *patch.Frequency
	}
	if patch.Rate != nil {
		m.Rate = *patch.Rate
	}
	now := s.clock.Now()
	m.ModifiedAt = &now
	if err := s.store.UpdateMonthly(m); err != nil {
		return models.MonthlyBooking{}, err
	}
	return m, nil
}

// simulate sleeps for the configured artificial latency, honoring ctx.
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
