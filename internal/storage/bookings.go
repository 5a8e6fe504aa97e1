package storage

import (
	"sync"

	"github.com/example/ride-booking/internal/models"
)

// BookingStore holds bookings and monthly bookings in memory. Entities are
// never physically deleted; cancellation is a status change. All methods
// return copies so callers cannot mutate stored state directly.
type BookingStore struct {
	mu       sync.RWMutex
	bookings []models.Booking
	monthly  []models.MonthlyBooking
}

func NewBookingStore(bookings []models.Booking, monthly []models.MonthlyBooking) *BookingStore {
	return &BookingStore{
		bookings: append([]models.Booking(nil), bookings...),
		monthly:  append([]models.MonthlyBooking(nil), monthly...),
	}
}

func (s *BookingStore) List() []models.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		out = append(out, cloneBooking(b))
	}
	return out
}

func (s *BookingStore) Get(id int) (models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.bookings {
		if b.ID == id {
			return cloneBooking(b), nil
		}
	}
	return models.Booking{}, ErrNotFound
}

// Append assigns the next id (max+1) and stores the booking.
func (s *BookingStore) Append(b models.Booking) models.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = nextBookingID(s.bookings)
	s.bookings = append(s.bookings, cloneBooking(b))
	return b
}

// Update replaces the stored booking with the same id.
func (s *BookingStore) Update(b models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bookings {
		if s.bookings[i].ID == b.ID {
			s.bookings[i] = cloneBooking(b)
			return nil
		}
	}
	return ErrNotFound
}

func (s *BookingStore) ListMonthly() []models.MonthlyBooking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.MonthlyBooking, len(s.monthly))
	copy(out, s.monthly)
	return out
}

func (s *BookingStore) GetMonthly(id int) (models.MonthlyBooking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.monthly {
		if m.ID == id {
			return m, nil
		}
	}
	return models.MonthlyBooking{}, ErrNotFound
}

func (s *BookingStore) AppendMonthly(m models.MonthlyBooking) models.MonthlyBooking {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := 0
	for _, e := range s.monthly {
		if e.ID > id {
			id = e.ID
		}
	}
	m.ID = id + 1
	s.monthly = append(s.monthly, m)
	return m
}

func (s *BookingStore) UpdateMonthly(m models.MonthlyBooking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.monthly {
		if s.monthly[i].ID == m.ID {
			s.monthly[i] = m
			return nil
		}
	}
	return ErrNotFound
}

func nextBookingID(bookings []models.Booking) int {
	id := 0
	for _, b := range bookings {
		if b.ID > id {
			id = b.ID
		}
	}
	return id + 1
}

func cloneBooking(b models.Booking) models.Booking {
	cp := b
	if b.Driver != nil {
		d := *b.Driver
		cp.Driver = &d
	}
	if b.ModifiedAt != nil {
		t := *b.ModifiedAt
		cp.ModifiedAt = &t
	}
	if b.CancelledAt != nil {
		t := *b.CancelledAt
		cp.CancelledAt = &t
	}
	return cp
}
