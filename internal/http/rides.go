package httpapi

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/example/ride-booking/internal/models"
	"github.com/example/ride-booking/internal/observability"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func (s *Server) handleRideState(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	m, ok := s.Tracker.Machine(id)
	if !ok {
		http.Error(w, "no active ride", http.StatusNotFound)
		return
	}
	s.respond(w, http.StatusOK, m.Snapshot())
}

func (s *Server) handleStartRide(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	m, ok := s.Tracker.Machine(id)
	if !ok {
		http.Error(w, "no active ride", http.StatusNotFound)
		return
	}
	if err := m.StartRide(); err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, m.Snapshot())
}

// handleCompleteRide finishes the trip: the machine transitions to
// completed, the booking is marked done and the trip lands in history.
func (s *Server) handleCompleteRide(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	m, ok := s.Tracker.Machine(id)
	if !ok {
		http.Error(w, "no active ride", http.StatusNotFound)
		return
	}
	if err := m.CompleteRide(); err != nil {
		s.respondError(w, err)
		return
	}
	snap := m.Snapshot()
	b, err := s.Bookings.CompleteBooking(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	trip, err := s.History.RecordRide(r.Context(), models.Ride{
		PickupLocation: b.PickupLocation,
		DropLocation:   b.DropLocation,
		VehicleType:    b.VehicleType,
		Fare:           b.EstimatedFare,
		Driver:         snap.Driver,
		Status:         models.RideCompleted,
		CompletedAt:    snap.UpdatedAt,
	})
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, trip)
}

func (s *Server) handleCancelRide(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var body struct {
		Force bool `json:"force"`
	}
	if r.ContentLength > 0 {
		if err := decodeStrict(r, &body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	m, ok := s.Tracker.Machine(id)
	if !ok {
		http.Error(w, "no active ride", http.StatusNotFound)
		return
	}
	res, err := m.Cancel(r.Context(), body.Force)
	if err != nil {
		s.respondError(w, err)
		return
	}
	if !res.RequiresConfirmation {
		observability.BookingsCancelled.Inc()
	}
	s.respond(w, http.StatusOK, res)
}

func (s *Server) handleRideWS(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	s.Tracker.Subscribe(id, conn)
}
