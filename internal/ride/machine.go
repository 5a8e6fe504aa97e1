// Package ride implements the active-ride lifecycle state machine. The
// machine is framework-independent: transitions are explicit methods, the
// timers that drive them live in Run, and time comes from an injected
// clock so the flow is unit-testable.
package ride

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/example/ride-booking/internal/booking"
	"github.com/example/ride-booking/internal/clock"
	"github.com/example/ride-booking/internal/models"
)

type State string

const (
	StateSearching      State = "searching"
	StateDriverAssigned State = "driver_assigned"
	StateDriverArrived  State = "driver_arrived"
	StateInRide         State = "in_ride"
	StateCompleted      State = "completed"
	StateCancelled      State = "cancelled"
)

const (
	// SearchDuration is how long driver matching takes before the mock
	// driver is assigned.
	SearchDuration = 3 * time.Second
	// ETATickInterval is the cadence of the arrival countdown.
	ETATickInterval = time.Minute
	// AssignedETAMinutes is the driver's ETA at assignment time.
	AssignedETAMinutes = 3
)

var ErrInvalidTransition = errors.New("invalid ride state transition")

// allowedTransitions encodes the lifecycle flow as data.
var allowedTransitions = map[State][]State{
	StateSearching:      {StateDriverAssigned, StateCancelled},
	StateDriverAssigned: {StateDriverArrived, StateCancelled},
	StateDriverArrived:  {StateInRide, StateCancelled},
	StateInRide:         {StateCompleted},
}

func canTransition(from, to State) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Snapshot is the externally visible machine state, pushed to subscribers
// on every change.
type Snapshot struct {
	BookingID  int            `json:"booking_id"`
	State      State          `json:"state"`
	Driver     *models.Driver `json:"driver,omitempty"`
	ETAMinutes int            `json:"eta_minutes"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// Notifier receives state change snapshots.
type Notifier interface {
	Notify(Snapshot)
}

// CancelFunc delegates a cancellation to the booking service's two-phase
// fee policy.
type CancelFunc func(ctx context.Context, bookingID int, force bool) (booking.CancelResult, error)

type Machine struct {
	mu         sync.Mutex
	bookingID  int
	state      State
	driver     *models.Driver
	etaMinutes int

	clock    clock.Clock
	notifier Notifier
	cancel   CancelFunc
	matched  models.Driver // driver to assign when matching completes
}

func NewMachine(bookingID int, matched models.Driver, clk clock.Clock, notifier Notifier, cancel CancelFunc) *Machine {
	return &Machine{
		bookingID: bookingID,
		state:     StateSearching,
		clock:     clk,
		notifier:  notifier,
		cancel:    cancel,
		matched:   matched,
	}
}

func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Machine) snapshotLocked() Snapshot {
	return Snapshot{
		BookingID:  m.bookingID,
		State:      m.state,
		Driver:     m.driver,
		ETAMinutes: m.etaMinutes,
		UpdatedAt:  m.clock.Now(),
	}
}

// AssignDriver completes the matching phase: the matched driver is attached
// with the stock ETA.
func (m *Machine) AssignDriver() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !canTransition(m.state, StateDriverAssigned) {
		return ErrInvalidTransition
	}
	d := m.matched
	m.state = StateDriverAssigned
	m.driver = &d
	m.etaMinutes = AssignedETAMinutes
	m.notifyLocked()
	return nil
}

// TickETA decrements the arrival countdown by one interval; at zero the
// driver has arrived. Ticks outside driver_assigned are ignored, which
// covers timers that outlive a cancellation.
func (m *Machine) TickETA() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateDriverAssigned {
		return
	}
	m.etaMinutes--
	if m.etaMinutes <= 0 {
		m.etaMinutes = 0
		m.state = StateDriverArrived
	}
	m.notifyLocked()
}

// StartRide is the explicit user action once the driver has arrived.
func (m *Machine) StartRide() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateDriverArrived || !canTransition(m.state, StateInRide) {
		return ErrInvalidTransition
	}
	m.state = StateInRide
	m.etaMinutes = 0
	m.notifyLocked()
	return nil
}

// CompleteRide ends an in-progress ride and signals completion outward.
func (m *Machine) CompleteRide() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !canTransition(m.state, StateCompleted) {
		return ErrInvalidTransition
	}
	m.state = StateCompleted
	m.notifyLocked()
	return nil
}

// Cancel applies the booking service's two-phase policy. From in_ride (or
// any terminal state) cancellation is refused. When the policy requires
// confirmation the machine state is left untouched.
func (m *Machine) Cancel(ctx context.Context, force bool) (booking.CancelResult, error) {
	m.mu.Lock()
	if !canTransition(m.state, StateCancelled) {
		m.mu.Unlock()
		return booking.CancelResult{}, ErrInvalidTransition
	}
	m.mu.Unlock()

	res, err := m.cancel(ctx, m.bookingID, force)
	if err != nil {
		return booking.CancelResult{}, err
	}
	if res.RequiresConfirmation {
		return res, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if canTransition(m.state, StateCancelled) {
		m.state = StateCancelled
		m.notifyLocked()
	}
	return res, nil
}

func (m *Machine) notifyLocked() {
	if m.notifier != nil {
		m.notifier.Notify(m.snapshotLocked())
	}
}

// Run drives the machine with real timers until ctx is cancelled. Timers
// are cleared only on teardown, not on logical state change; stale firings
// are no-ops inside the transition methods.
func (m *Machine) Run(ctx context.Context) {
	search := time.NewTimer(SearchDuration)
	defer search.Stop()
	tick := time.NewTicker(ETATickInterval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-search.C:
			_ = m.AssignDriver()
		case <-tick.C:
			m.TickETA()
		}
	}
}
