package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/ride-booking/internal/clock"
	"github.com/example/ride-booking/internal/models"
	"github.com/example/ride-booking/internal/storage"
)

func newTestService(now time.Time, bookings []models.Booking, monthly []models.MonthlyBooking) (*Service, *clock.Manual, *storage.BookingStore) {
	clk := clock.NewManual(now)
	store := storage.NewBookingStore(bookings, monthly)
	return NewService(store, clk, nil), clk, store
}

func TestCreateBookingAssignsSequentialIDs(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, _, _ := newTestService(now, []models.Booking{{ID: 7, Status: models.BookingCompleted}}, nil)

	b, err := svc.CreateBooking(context.Background(), models.BookingRequest{VehicleType: "QuickEco"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if b.ID != 8 {
		t.Fatalf("expected id 8, got %d", b.ID)
	}
	if b.Status != models.BookingConfirmed {
		t.Fatalf("expected confirmed, got %s", b.Status)
	}
	if !b.CreatedAt.Equal(now) {
		t.Fatalf("expected createdAt %v, got %v", now, b.CreatedAt)
	}
	if b.Driver == nil {
		t.Fatal("expected a driver assigned at creation")
	}
}

func TestUpcomingBookingsFiltersByStatus(t *testing.T) {
	now := time.Now()
	svc, _, _ := newTestService(now, []models.Booking{
		{ID: 1, Status: models.BookingConfirmed},
		{ID: 2, Status: models.BookingPending},
		{ID: 3, Status: models.BookingCancelled},
		{ID: 4, Status: models.BookingCompleted},
	}, nil)

	got, err := svc.UpcomingBookings(context.Background())
	if err != nil {
		t.Fatalf("upcoming: %v", err)
	}
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestCancelWithinFreeWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, clk, store := newTestService(now, []models.Booking{
		{ID: 1, Status: models.BookingConfirmed, CreatedAt: now},
	}, nil)
	clk.Advance(14 * time.Minute)

	res, err := svc.CancelBooking(context.Background(), 1, false)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if res.RequiresConfirmation {
		t.Fatal("free-window cancel must not require confirmation")
	}
	if res.CancellationFee != 0 {
		t.Fatalf("expected zero fee, got %v", res.CancellationFee)
	}
	b, _ := store.Get(1)
	if b.Status != models.BookingCancelled {
		t.Fatalf("expected cancelled, got %s", b.Status)
	}
	if b.CancelledAt == nil {
		t.Fatal("expected cancelledAt stamp")
	}
}

func TestCancelAfterWindowIsTwoPhase(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, clk, store := newTestService(now, []models.Booking{
		{ID: 1, Status: models.BookingConfirmed, CreatedAt: now},
	}, nil)
	clk.Advance(20 * time.Minute)

	res, err := svc.CancelBooking(context.Background(), 1, false)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if !res.RequiresConfirmation {
		t.Fatal("expected confirmation requirement past the free window")
	}
	if res.CancellationFee != 5.00 {
		t.Fatalf("expected fee 5.00, got %v", res.CancellationFee)
	}
	b, _ := store.Get(1)
	if b.Status != models.BookingConfirmed {
		t.Fatalf("first call must not mutate, got status %s", b.Status)
	}

	res, err = svc.CancelBooking(context.Background(), 1, true)
	if err != nil {
		t.Fatalf("forced cancel: %v", err)
	}
	if res.RequiresConfirmation {
		t.Fatal("forced cancel must commit")
	}
	b, _ = store.Get(1)
	if b.Status != models.BookingCancelled || b.CancellationFee != 5.00 {
		t.Fatalf("expected cancelled with fee, got %+v", b)
	}
}

func TestCancelUnknownBooking(t *testing.T) {
	svc, _, _ := newTestService(time.Now(), nil, nil)
	_, err := svc.CancelBooking(context.Background(), 99, false)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestModifyBookingAppliesOnlyPatchedFields(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, clk, _ := newTestService(now, []models.Booking{
		{ID: 1, Status: models.BookingConfirmed, VehicleType: "QuickEco", EstimatedFare: 15.13, CreatedAt: now},
	}, nil)
	clk.Advance(time.Minute)

	vt := "QuickXL"
	got, err := svc.ModifyBooking(context.Background(), 1, models.BookingPatch{VehicleType: &vt})
	if err != nil {
		t.Fatalf("modify: %v", err)
	}
	if got.VehicleType != "QuickXL" {
		t.Fatalf("patch not applied: %+v", got)
	}
	if got.EstimatedFare != 15.13 {
		t.Fatalf("unpatched field changed: %+v", got)
	}
	if got.ModifiedAt == nil || !got.ModifiedAt.Equal(clk.Now()) {
		t.Fatalf("expected modifiedAt stamp, got %+v", got.ModifiedAt)
	}
}

func TestPauseMonthlyBookingToggles(t *testing.T) {
	now := time.Now()
	svc, _, _ := newTestService(now, nil, []models.MonthlyBooking{
		{ID: 1, Title: "Office commute", IsActive: true},
	})

	m, err := svc.PauseMonthlyBooking(context.Background(), 1)
	if err != nil {
		t.Fatalf("pause: %v", err)
	}
	if m.IsActive {
		t.Fatal("expected paused")
	}
	m, err = svc.PauseMonthlyBooking(context.Background(), 1)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if !m.IsActive {
		t.Fatal("expected resumed")
	}
}

func TestCreateMonthlyBooking(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, _, _ := newTestService(now, nil, []models.MonthlyBooking{{ID: 3}})

	m, err := svc.CreateMonthlyBooking(context.Background(), models.MonthlyBooking{Title: "School run", IsActive: false})
	if err != nil {
		t.Fatalf("create monthly: %v", err)
	}
	if m.ID != 4 {
		t.Fatalf("expected id 4, got %d", m.ID)
	}
	if !m.IsActive {
		t.Fatal("new monthly bookings start active")
	}
	if !m.CreatedAt.Equal(now) {
		t.Fatalf("expected createdAt %v, got %v", now, m.CreatedAt)
	}
}

func TestCompleteBooking(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, _, store := newTestService(now, []models.Booking{
		{ID: 1, Status: models.BookingConfirmed, CreatedAt: now.Add(-time.Hour)},
	}, nil)

	b, err := svc.CompleteBooking(context.Background(), 1)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if b.Status != models.BookingCompleted {
		t.Fatalf("expected completed, got %s", b.Status)
	}
	if b.ModifiedAt == nil || !b.ModifiedAt.Equal(now) {
		t.Fatalf("expected modifiedAt stamp, got %+v", b.ModifiedAt)
	}
	stored, _ := store.Get(1)
	if stored.Status != models.BookingCompleted {
		t.Fatal("completion not persisted")
	}
	if _, err := svc.CompleteBooking(context.Background(), 99); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSimulatedLatencyHonorsContext(t *testing.T) {
	svc, _, _ := newTestService(time.Now(), nil, nil)
	svc.Latency = time.Minute
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.UpcomingBookings(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
