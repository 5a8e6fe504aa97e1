package httpapi

import (
	"net/http"

	"github.com/example/ride-booking/internal/models"
)

func (s *Server) handleRideHistory(w http.ResponseWriter, r *http.Request) {
	out, err := s.History.RideHistory(r.Context(), r.URL.Query().Get("period"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	if out == nil {
		out = []models.Ride{}
	}
	s.respond(w, http.StatusOK, out)
}

func (s *Server) handleRideByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	ride, err := s.History.RideByID(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, ride)
}

// handleRebookRide returns a booking request prefilled from a past trip.
// The client reviews it and posts to /bookings; nothing is created here.
func (s *Server) handleRebookRide(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	req, err := s.History.RebookRide(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, req)
}

func (s *Server) handleRateRide(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var body struct {
		Rating   int    `json:"rating"`
		Feedback string `json:"feedback"`
	}
	if err := decodeStrict(r, &body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ride, err := s.History.RateRide(r.Context(), id, body.Rating, body.Feedback)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, ride)
}

func (s *Server) handleDownloadReceipt(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	receipt, err := s.History.DownloadReceipt(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, receipt)
}
