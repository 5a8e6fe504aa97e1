package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/ride-booking/internal/clock"
	"github.com/example/ride-booking/internal/models"
	"github.com/example/ride-booking/internal/storage"
)

func newTestService(now time.Time, rides []models.Ride) (*Service, *storage.RideStore) {
	store := storage.NewRideStore(rides)
	return NewService(store, clock.NewManual(now)), store
}

func seedRides(now time.Time) []models.Ride {
	return []models.Ride{
		{ID: 1, Status: models.RideCompleted, CompletedAt: now.Add(-2 * 24 * time.Hour)},
		{ID: 2, Status: models.RideCompleted, CompletedAt: now.Add(-10 * 24 * time.Hour)},
		{ID: 3, Status: models.RideCompleted, CompletedAt: now.Add(-40 * 24 * time.Hour)},
		{ID: 4, Status: models.RideCompleted, CompletedAt: now.Add(-400 * 24 * time.Hour)},
	}
}

func TestRideHistoryWeek(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestService(now, seedRides(now))

	got, err := svc.RideHistory(context.Background(), "week")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected only the 2-day-old ride, got %+v", got)
	}
}

func TestRideHistoryMonthAndYear(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestService(now, seedRides(now))

	got, _ := svc.RideHistory(context.Background(), "month")
	if len(got) != 2 {
		t.Fatalf("month: expected 2 rides, got %d", len(got))
	}
	got, _ = svc.RideHistory(context.Background(), "year")
	if len(got) != 3 {
		t.Fatalf("year: expected 3 rides, got %d", len(got))
	}
}

func TestRideHistoryUnrecognizedPeriodReturnsAll(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestService(now, seedRides(now))

	for _, period := range []string{"all", "fortnight", ""} {
		got, err := svc.RideHistory(context.Background(), period)
		if err != nil {
			t.Fatalf("history(%q): %v", period, err)
		}
		if len(got) != 4 {
			t.Fatalf("history(%q): expected all 4 rides, got %d", period, len(got))
		}
	}
}

func TestRideHistorySortedDescending(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestService(now, seedRides(now))

	got, _ := svc.RideHistory(context.Background(), "all")
	for i := 1; i < len(got); i++ {
		if got[i].CompletedAt.After(got[i-1].CompletedAt) {
			t.Fatalf("not sorted descending at %d: %+v", i, got)
		}
	}
}

func TestRideByIDNotFound(t *testing.T) {
	svc, _ := newTestService(time.Now(), nil)
	_, err := svc.RideByID(context.Background(), 5)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRebookRideReturnsSkeletonWithoutCreating(t *testing.T) {
	now := time.Now()
	rides := []models.Ride{{
		ID:             1,
		PickupLocation: models.Location{Name: "Home"},
		DropLocation:   models.Location{Name: "Office"},
		VehicleType:    "QuickEco",
		Status:         models.RideCompleted,
		CompletedAt:    now,
	}}
	svc, store := newTestService(now, rides)

	req, err := svc.RebookRide(context.Background(), 1)
	if err != nil {
		t.Fatalf("rebook: %v", err)
	}
	if req.PickupLocation.Name != "Home" || req.DropLocation.Name != "Office" || req.VehicleType != "QuickEco" {
		t.Fatalf("unexpected skeleton: %+v", req)
	}
	if len(store.List()) != 1 {
		t.Fatal("rebook must not create anything")
	}
}

func TestRateRide(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	svc, store := newTestService(now, []models.Ride{
		{ID: 1, Status: models.RideCompleted, CompletedAt: now.Add(-24 * time.Hour)},
	})

	r, err := svc.RateRide(context.Background(), 1, 5, "great driver")
	if err != nil {
		t.Fatalf("rate: %v", err)
	}
	if r.Rating != 5 || r.Feedback != "great driver" {
		t.Fatalf("rating not merged: %+v", r)
	}
	if r.RatedAt == nil || !r.RatedAt.Equal(now) {
		t.Fatalf("expected ratedAt stamp, got %+v", r.RatedAt)
	}
	stored, _ := store.Get(1)
	if stored.Rating != 5 {
		t.Fatal("rating not persisted")
	}
}

func TestRecordRideAppendsAndStampsCompletion(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, store := newTestService(now, []models.Ride{{ID: 4, Status: models.RideCompleted, CompletedAt: now}})

	r, err := svc.RecordRide(context.Background(), models.Ride{VehicleType: "QuickEco", Fare: 18.50, Status: models.RideCompleted})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if r.ID != 5 {
		t.Fatalf("expected id 5, got %d", r.ID)
	}
	if !r.CompletedAt.Equal(now) {
		t.Fatalf("expected completedAt defaulted to now, got %v", r.CompletedAt)
	}
	if _, err := store.Get(5); err != nil {
		t.Fatalf("recorded ride not stored: %v", err)
	}
}

func TestDownloadReceipt(t *testing.T) {
	now := time.Now()
	svc, _ := newTestService(now, []models.Ride{
		{ID: 1, Fare: 14.85, Status: models.RideCompleted, CompletedAt: now},
	})

	rcpt, err := svc.DownloadReceipt(context.Background(), 1)
	if err != nil {
		t.Fatalf("receipt: %v", err)
	}
	if rcpt.RideID != 1 || rcpt.Fare != 14.85 {
		t.Fatalf("unexpected receipt: %+v", rcpt)
	}
	if _, err := svc.DownloadReceipt(context.Background(), 9); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
