package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/example/ride-booking/internal/fixtures"
	"github.com/example/ride-booking/internal/models"
	"github.com/example/ride-booking/internal/observability"
)

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	return id, err == nil
}

// handleVehicles lists the bookable vehicle catalog.
func (s *Server) handleVehicles(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, fixtures.Vehicles())
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var req models.BookingRequest
	if err := decodeStrict(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	b, err := s.Bookings.CreateBooking(r.Context(), req)
	if err != nil {
		s.respondError(w, err)
		return
	}
	observability.BookingsCreated.Inc()
	// Matching starts as soon as the booking exists.
	s.Tracker.Start(b.ID)
	s.respond(w, http.StatusCreated, b)
}

func (s *Server) handleUpcomingBookings(w http.ResponseWriter, r *http.Request) {
	out, err := s.Bookings.UpcomingBookings(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	if out == nil {
		out = []models.Booking{}
	}
	s.respond(w, http.StatusOK, out)
}

func (s *Server) handleCancelBooking(w http.ResponseWriter, r *http.Request) {
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
	res, err := s.Bookings.CancelBooking(r.Context(), id, body.Force)
	if err != nil {
		s.respondError(w, err)
		return
	}
	if !res.RequiresConfirmation {
		observability.BookingsCancelled.Inc()
		s.Tracker.Stop(id)
	}
	s.respond(w, http.StatusOK, res)
}

func (s *Server) handleModifyBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var patch models.BookingPatch
	if err := decodeStrict(r, &patch); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	b, err := s.Bookings.ModifyBooking(r.Context(), id, patch)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, b)
}

func (s *Server) handleMonthlyBookings(w http.ResponseWriter, r *http.Request) {
	out, err := s.Bookings.MonthlyBookings(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, out)
}

func (s *Server) handleCreateMonthlyBooking(w http.ResponseWriter, r *http.Request) {
	var m models.MonthlyBooking
	if err := decodeStrict(r, &m); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	created, err := s.Bookings.CreateMonthlyBooking(r.Context(), m)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusCreated, created)
}

func (s *Server) handlePauseMonthlyBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	m, err := s.Bookings.PauseMonthlyBooking(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, m)
}

func (s *Server) handleModifyMonthlyBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var patch models.MonthlyBookingPatch
	if err := decodeStrict(r, &patch); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	m, err := s.Bookings.ModifyMonthlyBooking(r.Context(), id, patch)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, m)
}
