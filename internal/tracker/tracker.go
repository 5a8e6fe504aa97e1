// Package tracker owns the machines for rides currently in progress and
// pushes their state changes to subscribed WebSocket clients.
package tracker

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/example/ride-booking/internal/booking"
	"github.com/example/ride-booking/internal/clock"
	"github.com/example/ride-booking/internal/models"
	"github.com/example/ride-booking/internal/observability"
	"github.com/example/ride-booking/internal/ride"
)

// session is one connected tracker client.
type session struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *session) send(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(v)
}

type entry struct {
	machine *ride.Machine
	stop    context.CancelFunc
}

type Tracker struct {
	mu       sync.RWMutex
	active   map[int]*entry
	sessions map[int]*session

	clock  clock.Clock
	cancel ride.CancelFunc
	driver models.Driver
	logger *slog.Logger
}

func New(clk clock.Clock, driver models.Driver, cancel ride.CancelFunc, logger *slog.Logger) *Tracker {
	return &Tracker{
		active:   make(map[int]*entry),
		sessions: make(map[int]*session),
		clock:    clk,
		cancel:   cancel,
		driver:   driver,
		logger:   logger,
	}
}

// Start creates and runs a machine for the booking. An existing machine
// for the same booking is returned untouched.
func (t *Tracker) Start(bookingID int) *ride.Machine {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e, ok := t.active[bookingID]; ok {
		return e.machine
	}
	m := ride.NewMachine(bookingID, t.driver, t.clock, t, t.cancel)
	ctx, stop := context.WithCancel(context.Background())
	t.active[bookingID] = &entry{machine: m, stop: stop}
	observability.ActiveRides.Inc()
	go m.Run(ctx)
	return m
}

// Machine returns the active machine for a booking, if any.
func (t *Tracker) Machine(bookingID int) (*ride.Machine, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.active[bookingID]
	if !ok {
		return nil, false
	}
	return e.machine, true
}

// Subscribe attaches a WebSocket connection to a booking's updates and
// immediately pushes the current snapshot.
func (t *Tracker) Subscribe(bookingID int, conn *websocket.Conn) {
	sess := &session{conn: conn}
	t.mu.Lock()
	t.sessions[bookingID] = sess
	e, ok := t.active[bookingID]
	t.mu.Unlock()
	if ok {
		_ = sess.send(e.machine.Snapshot())
	}
}

// Notify implements ride.Notifier: forward the snapshot to the subscriber
// and drop finished machines from the registry. Machine state itself is
// process-local and is lost on teardown.
func (t *Tracker) Notify(s ride.Snapshot) {
	t.mu.RLock()
	sess := t.sessions[s.BookingID]
	t.mu.RUnlock()
	if sess != nil {
		if err := sess.send(s); err != nil && t.logger != nil {
			t.logger.Warn("tracker push failed", "booking_id", s.BookingID, "error", err)
		}
	}
	if s.State == ride.StateCompleted || s.State == ride.StateCancelled {
		t.remove(s.BookingID)
	}
}

func (t *Tracker) remove(bookingID int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e, ok := t.active[bookingID]; ok {
		e.stop()
		delete(t.active, bookingID)
		observability.ActiveRides.Dec()
	}
}

// Stop tears down one machine without a state change notification.
func (t *Tracker) Stop(bookingID int) { t.remove(bookingID) }

// Close stops every machine; called on server shutdown.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for id, e := range t.active {
		e.stop()
		delete(t.active, id)
		observability.ActiveRides.Dec()
	}
}

var _ ride.Notifier = (*Tracker)(nil)

// CancelViaService builds the machine's cancel delegate from the booking
// service.
func CancelViaService(svc *booking.Service) ride.CancelFunc {
	return func(ctx context.Context, bookingID int, force bool) (booking.CancelResult, error) {
		return svc.CancelBooking(ctx, bookingID, force)
	}
}
