package httpapi

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/example/ride-booking/internal/booking"
	"github.com/example/ride-booking/internal/clock"
	"github.com/example/ride-booking/internal/config"
	"github.com/example/ride-booking/internal/events"
	"github.com/example/ride-booking/internal/fixtures"
	"github.com/example/ride-booking/internal/history"
	"github.com/example/ride-booking/internal/logging"
	"github.com/example/ride-booking/internal/payment"
	"github.com/example/ride-booking/internal/ride"
	"github.com/example/ride-booking/internal/storage"
	"github.com/example/ride-booking/internal/tracker"
)

type Server struct {
	Bookings *booking.Service
	Payments *payment.Service
	History  *history.Service
	Tracker  *tracker.Tracker

	mux    *mux.Router
	logger *slog.Logger
}

// NewServer wires stores, services and the tracker from config. Stores are
// seeded from fixtures; the Postgres ledger, Kafka producer and Stripe
// gateway are attached only when their env settings are present.
func NewServer(cfg config.ServerConfig) *Server {
	logger := logging.NewLogger(cfg.LogLevel)
	clk := clock.NewSystem()
	now := clk.Now()

	bookingStore := storage.NewBookingStore(fixtures.Bookings(now), fixtures.MonthlyBookings(now))
	rideStore := storage.NewRideStore(fixtures.Rides(now))
	methodStore := storage.NewMethodStore(fixtures.PaymentMethods(now))

	var ledger storage.Ledger
	if cfg.PGDSN != "" {
		if pl, err := storage.NewPostgresLedger(cfg.PGDSN); err == nil {
			ledger = pl
		} else {
			logger.Warn("postgres ledger unavailable, using memory", "error", err)
		}
	}
	if ledger == nil {
		ledger = storage.NewMemoryLedger(fixtures.Transactions(now))
	}

	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	}

	var gateway payment.Gateway
	if cfg.StripeAPIKey != "" {
		gateway = payment.NewStripeGateway("usd")
	} else {
		sim := payment.NewSimulatedGateway()
		sim.FailureRate = cfg.GatewayFailureRate
		gateway = sim
	}

	bookings := booking.NewService(bookingStore, clk, producer)
	bookings.Latency = cfg.ServiceLatency
	payments := payment.NewService(methodStore, ledger, gateway, clk, producer)
	payments.Latency = cfg.ServiceLatency
	hist := history.NewService(rideStore, clk)
	hist.Latency = cfg.ServiceLatency

	trk := tracker.New(clk, fixtures.MockDriver(), tracker.CancelViaService(bookings), logger)

	s := &Server{
		Bookings: bookings,
		Payments: payments,
		History:  hist,
		Tracker:  trk,
		mux:      mux.NewRouter(),
		logger:   logger,
	}
	s.registerMiddleware()
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.mux.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/vehicles", s.handleVehicles).Methods("GET")

	api.HandleFunc("/bookings", s.handleCreateBooking).Methods("POST")
	api.HandleFunc("/bookings/upcoming", s.handleUpcomingBookings).Methods("GET")
	api.HandleFunc("/bookings/{id}/cancel", s.handleCancelBooking).Methods("POST")
	api.HandleFunc("/bookings/{id}", s.handleModifyBooking).Methods("PATCH")

	api.HandleFunc("/monthly-bookings", s.handleMonthlyBookings).Methods("GET")
	api.HandleFunc("/monthly-bookings", s.handleCreateMonthlyBooking).Methods("POST")
	api.HandleFunc("/monthly-bookings/{id}/pause", s.handlePauseMonthlyBooking).Methods("POST")
	api.HandleFunc("/monthly-bookings/{id}", s.handleModifyMonthlyBooking).Methods("PATCH")

	api.HandleFunc("/payment-methods", s.handlePaymentMethods).Methods("GET")
	api.HandleFunc("/payment-methods", s.handleAddPaymentMethod).Methods("POST")
	api.HandleFunc("/payment-methods/{id}", s.handleRemovePaymentMethod).Methods("DELETE")
	api.HandleFunc("/payment-methods/{id}/default", s.handleSetDefaultPaymentMethod).Methods("POST")
	api.HandleFunc("/payments", s.handleProcessPayment).Methods("POST")
	api.HandleFunc("/payments/{id}/refund", s.handleRefundPayment).Methods("POST")
	api.HandleFunc("/transactions", s.handleTransactions).Methods("GET")
	api.HandleFunc("/fare/estimate", s.handleFareEstimate).Methods("POST")

	api.HandleFunc("/history", s.handleRideHistory).Methods("GET")
	api.HandleFunc("/history/{id}", s.handleRideByID).Methods("GET")
	api.HandleFunc("/history/{id}/rebook", s.handleRebookRide).Methods("POST")
	api.HandleFunc("/history/{id}/rate", s.handleRateRide).Methods("POST")
	api.HandleFunc("/history/{id}/receipt", s.handleDownloadReceipt).Methods("GET")

	api.HandleFunc("/rides/{id}", s.handleRideState).Methods("GET")
	api.HandleFunc("/rides/{id}/start", s.handleStartRide).Methods("POST")
	api.HandleFunc("/rides/{id}/complete", s.handleCompleteRide).Methods("POST")
	api.HandleFunc("/rides/{id}/cancel", s.handleCancelRide).Methods("POST")

	s.mux.HandleFunc("/ws/rides/{id}", s.handleRideWS)
	s.mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) }).Methods("GET")
	s.mux.Handle("/metrics", promhttp.Handler())
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.mux.ServeHTTP(w, r) }

// Close releases background resources (active ride machines).
func (s *Server) Close() { s.Tracker.Close() }

func (s *Server) respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			s.logger.Error("response encode failed", "error", err)
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, payment.ErrInvalidPaymentMethod):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, payment.ErrPaymentDeclined):
		status = http.StatusBadGateway
	case errors.Is(err, ride.ErrInvalidTransition):
		status = http.StatusConflict
	}
	s.respond(w, status, map[string]string{"error": err.Error()})
}

// decodeStrict decodes a JSON body, rejecting fields the target type does
// not declare. Patch endpoints rely on this to refuse unknown fields.
func decodeStrict(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func newID() string { b := make([]byte, 8); _, _ = rand.Read(b); return hex.EncodeToString(b) }
