package storage

import (
	"sync"

	"github.com/example/ride-booking/internal/models"
)

// RideStore holds the completed-ride history. Rides are immutable once
// created except for rating and feedback.
type RideStore struct {
	mu    sync.RWMutex
	rides []models.Ride
}

func NewRideStore(rides []models.Ride) *RideStore {
	return &RideStore{rides: append([]models.Ride(nil), rides...)}
}

func (s *RideStore) List() []models.Ride {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Ride, 0, len(s.rides))
	for _, r := range s.rides {
		out = append(out, cloneRide(r))
	}
	return out
}

func (s *RideStore) Get(id int) (models.Ride, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.rides {
		if r.ID == id {
			return cloneRide(r), nil
		}
	}
	return models.Ride{}, ErrNotFound
}

func (s *RideStore) Append(r models.Ride) models.Ride {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := 0
	for _, e := range s.rides {
		if e.ID > id {
			id = e.ID
		}
	}
	r.ID = id + 1
	s.rides = append(s.rides, cloneRide(r))
	return r
}

func (s *RideStore) Update(r models.Ride) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rides {
		if s.rides[i].ID == r.ID {
			s.rides[i] = cloneRide(r)
			return nil
		}
	}
	return ErrNotFound
}

func cloneRide(r models.Ride) models.Ride {
	cp := r
	if r.Driver != nil {
		d := *r.Driver
		cp.Driver = &d
	}
	if r.RatedAt != nil {
		t := *r.RatedAt
		cp.RatedAt = &t
	}
	return cp
}
