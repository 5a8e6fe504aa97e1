// Package history reads and filters completed rides.
package history

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/example/ride-booking/internal/clock"
	"github.com/example/ride-booking/internal/models"
	"github.com/example/ride-booking/internal/storage"
)

type Service struct {
	store *storage.RideStore
	clock clock.Clock

	Latency time.Duration
}

func NewService(store *storage.RideStore, clk clock.Clock) *Service {
	return &Service{store: store, clock: clk}
}

// RideHistory returns rides completed within the requested period, newest
// first. Unrecognized periods (and "all") apply no cutoff.
func (s *Service) RideHistory(ctx context.Context, period string) ([]models.Ride, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}
	rides := s.store.List()

	now := s.clock.Now()
	var cutoff time.Time
	switch period {
	case "week":
		cutoff = now.AddDate(0, 0, -7)
	case "month":
		cutoff = now.AddDate(0, -1, 0)
	case "year":
		cutoff = now.AddDate(-1, 0, 0)
	}
	if !cutoff.IsZero() {
		filtered := rides[:0]
		for _, r := range rides {
			if !r.CompletedAt.Before(cutoff) {
				filtered = append(filtered, r)
			}
		}
		rides = filtered
	}

	sort.Slice(rides, func(i, j int) bool { return rides[i].CompletedAt.After(rides[j].CompletedAt) })
	return rides, nil
}

func (s *Service) RideByID(ctx context.Context, id int) (models.Ride, error) {
	if err := s.simulate(ctx); err != nil {
		return models.Ride{}, err
	}
	r, err := s.store.Get(id)
	if err != nil {
		return models.Ride{}, fmt.Errorf("ride %d: %w", id, err)
	}
	return r, nil
}

// RebookRide returns a skeletal booking request for a past ride. Nothing is
// created; the caller submits the request explicitly.
func (s *Service) RebookRide(ctx context.Context, id int) (models.BookingRequest, error) {
	if err := s.simulate(ctx); err != nil {
		return models.BookingRequest{}, err
	}
	r, err := s.store.Get(id)
	if err != nil {
		return models.BookingRequest{}, fmt.Errorf("rebook ride %d: %w", id, err)
	}
	return models.BookingRequest{
		PickupLocation: r.PickupLocation,
		DropLocation:   r.DropLocation,
		VehicleType:    r.VehicleType,
	}, nil
}

// Receipt is the acknowledgment payload for a receipt download. No
// artifact is produced.
type Receipt struct {
	RideID      int       `json:"ride_id"`
	Fare        float64   `json:"fare"`
	CompletedAt time.Time `json:"completed_at"`
	Message     string    `json:"message"`
}

func (s *Service) DownloadReceipt(ctx context.Context, id int) (Receipt, error) {
	if err := s.simulate(ctx); err != nil {
		return Receipt{}, err
	}
	r, err := s.store.Get(id)
	if err != nil {
		return Receipt{}, fmt.Errorf("receipt for ride %d: %w", id, err)
	}
	return Receipt{RideID: r.ID, Fare: r.Fare, CompletedAt: r.CompletedAt, Message: "Receipt downloaded"}, nil
}

// RecordRide appends a finished trip to the history. The completion flow
// is the only writer; everything else treats rides as read-only.
func (s *Service) RecordRide(ctx context.Context, r models.Ride) (models.Ride, error) {
	if err := s.simulate(ctx); err != nil {
		return models.Ride{}, err
	}
	if r.CompletedAt.IsZero() {
		r.CompletedAt = s.clock.Now()
	}
	return s.store.Append(r), nil
}

func (s *Service) RateRide(ctx context.Context, id, rating int, feedback string) (models.Ride, error) {
	if err := s.simulate(ctx); err != nil {
		return models.Ride{}, err
	}
	r, err := s.store.Get(id)
	if err != nil {
		return models.Ride{}, fmt.Errorf("rate ride %d: %w", id, err)
	}
	r.Rating = rating
	r.Feedback = feedback
	now := s.clock.Now()
	r.RatedAt = &now
	if err := s.store.Update(r); err != nil {
		return models.Ride{}, err
	}
	return r, nil
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
