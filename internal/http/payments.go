package httpapi

import (
	"errors"
	"net/http"

	"github.com/example/ride-booking/internal/models"
	"github.com/example/ride-booking/internal/observability"
	"github.com/example/ride-booking/internal/payment"
)

func (s *Server) handlePaymentMethods(w http.ResponseWriter, r *http.Request) {
	out, err := s.Payments.PaymentMethods(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, out)
}

func (s *Server) handleAddPaymentMethod(w http.ResponseWriter, r *http.Request) {
	var card payment.CardInput
	if err := decodeStrict(r, &card); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	m, err := s.Payments.AddPaymentMethod(r.Context(), card)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusCreated, m)
}

func (s *Server) handleRemovePaymentMethod(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := s.Payments.RemovePaymentMethod(r.Context(), id); err != nil {
		s.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetDefaultPaymentMethod(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	m, err := s.Payments.SetDefaultPaymentMethod(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, m)
}

func (s *Server) handleProcessPayment(w http.ResponseWriter, r *http.Request) {
	var req payment.Request
	if err := decodeStrict(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	tx, err := s.Payments.ProcessPayment(r.Context(), req)
	if err != nil {
		if errors.Is(err, payment.ErrPaymentDeclined) {
			observability.PaymentsDeclined.Inc()
		}
		s.respondError(w, err)
		return
	}
	observability.PaymentsProcessed.Inc()
	s.respond(w, http.StatusCreated, tx)
}

func (s *Server) handleRefundPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var body struct {
		Amount float64 `json:"amount"`
	}
	if err := decodeStrict(r, &body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	tx, err := s.Payments.RefundPayment(r.Context(), id, body.Amount)
	if err != nil {
		s.respondError(w, err)
		return
	}
	observability.RefundsIssued.Inc()
	s.respond(w, http.StatusCreated, tx)
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	out, err := s.Payments.Transactions(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, out)
}

func (s *Server) handleFareEstimate(w http.ResponseWriter, r *http.Request) {
	var req models.BookingRequest
	if err := decodeStrict(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.respond(w, http.StatusOK, payment.CalculateFare(req))
}
