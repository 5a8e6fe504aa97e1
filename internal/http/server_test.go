package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/example/ride-booking/internal/config"
	"github.com/example/ride-booking/internal/models"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s := NewServer(config.ServerConfig{LogLevel: "error"})
	t.Cleanup(s.Close)
	return s
}

func doJSON(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestCreateBookingEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, "POST", "/api/v1/bookings", `{"pickup_location":{"address":"Home"},"drop_location":{"address":"Office"},"vehicle_type":"QuickEco"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
	}
	var b models.Booking
	if err := json.Unmarshal(rec.Body.Bytes(), &b); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b.Status != models.BookingConfirmed || b.Driver == nil {
		t.Fatalf("unexpected booking: %+v", b)
	}
	// a matching machine should be live for the new booking
	if _, ok := s.Tracker.Machine(b.ID); !ok {
		t.Fatal("expected an active ride machine")
	}
}

func TestModifyBookingRejectsUnknownFields(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, "PATCH", "/api/v1/bookings/1", `{"vehicle_type":"QuickXL","surge":true}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d: %s", rec.Code, rec.Body)
	}
	rec = doJSON(t, s, "PATCH", "/api/v1/bookings/1", `{"vehicle_type":"QuickXL"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	var b models.Booking
	_ = json.Unmarshal(rec.Body.Bytes(), &b)
	if b.VehicleType != "QuickXL" {
		t.Fatalf("patch not applied: %+v", b)
	}
}

func TestCancelBookingTwoPhase(t *testing.T) {
	s := newTestServer(t)

	// fixture booking 1 was created well outside the free window
	rec := doJSON(t, s, "POST", "/api/v1/bookings/1/cancel", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	var res struct {
		RequiresConfirmation bool    `json:"requires_confirmation"`
		CancellationFee      float64 `json:"cancellation_fee"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !res.RequiresConfirmation || res.CancellationFee != 5.00 {
		t.Fatalf("expected fee confirmation prompt, got %+v", res)
	}

	rec = doJSON(t, s, "POST", "/api/v1/bookings/1/cancel", `{"force":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	var b struct {
		Booking models.Booking `json:"booking"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &b)
	if b.Booking.Status != models.BookingCancelled || b.Booking.CancellationFee != 5.00 {
		t.Fatalf("expected cancelled with fee, got %+v", b.Booking)
	}
}

func TestUnknownBookingIs404(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, "POST", "/api/v1/bookings/999/cancel", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body)
	}
}

func TestFareEstimateEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, "POST", "/api/v1/fare/estimate", `{"vehicle_type":"QuickEco","vehicle":{"price":100}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	var f models.FareBreakdown
	if err := json.Unmarshal(rec.Body.Bytes(), &f); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if f.Total != 118.80 {
		t.Fatalf("expected total 118.80, got %v", f.Total)
	}
}

func TestHistoryPeriodFilter(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, "GET", "/api/v1/history?period=week", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	var week []models.Ride
	_ = json.Unmarshal(rec.Body.Bytes(), &week)

	rec = doJSON(t, s, "GET", "/api/v1/history", "")
	var all []models.Ride
	_ = json.Unmarshal(rec.Body.Bytes(), &all)

	if len(week) >= len(all) {
		t.Fatalf("expected week filter to narrow results: week=%d all=%d", len(week), len(all))
	}
}
