// Package fixtures holds the seed data the in-memory stores start from.
// Timestamps are expressed relative to a caller-supplied "now" so that
// time-window queries have data on both sides of their cutoffs.
package fixtures

import (
	"time"

	"github.com/example/ride-booking/internal/models"
)

// Vehicles is the bookable catalog.
func Vehicles() []models.Vehicle {
	return []models.Vehicle{
		{ID: 1, Name: "QuickEco", Type: "economy", Description: "Affordable rides for everyday travel", Price: 12.50, OriginalPrice: 15.00, ETA: 3, Capacity: 4, IsPopular: true},
		{ID: 2, Name: "QuickComfort", Type: "premium", Description: "Premium comfort with extra space", Price: 18.00, ETA: 5, Capacity: 4},
		{ID: 3, Name: "QuickXL", Type: "suv", Description: "Spacious rides for groups", Price: 25.00, ETA: 7, Capacity: 6},
	}
}

// MockDriver is the driver assigned by the matching simulation.
func MockDriver() models.Driver {
	return models.Driver{
		ID:         "driver-1",
		Name:       "Alex Johnson",
		Photo:      "/api/placeholder/64/64",
		Rating:     4.8,
		TotalRides: 1247,
		Phone:      "+1 (555) 123-4567",
		Vehicle: models.DriverVehicle{
			Make:         "Toyota",
			Model:        "Camry",
			Color:        "Silver",
			LicensePlate: "ABC-123",
		},
		ETA:      3,
		Distance: 0.8,
	}
}

func Bookings(now time.Time) []models.Booking {
	return []models.Booking{
		{
			ID:             1,
			PickupLocation: models.Location{Name: "Home", Address: "42 Maple Street"},
			DropLocation:   models.Location{Name: "Downtown Office", Address: "120 Market Street"},
			VehicleType:    "QuickEco",
			ScheduledTime:  now.Add(2 * time.Hour),
			Status:         models.BookingConfirmed,
			EstimatedFare:  15.13,
			CreatedAt:      now.Add(-30 * time.Minute),
		},
		{
			ID:             2,
			PickupLocation: models.Location{Name: "Airport Terminal 2"},
			DropLocation:   models.Location{Name: "Home", Address: "42 Maple Street"},
			VehicleType:    "QuickComfort",
			ScheduledTime:  now.Add(26 * time.Hour),
			Status:         models.BookingPending,
			EstimatedFare:  21.78,
			CreatedAt:      now.Add(-2 * time.Hour),
		},
		{
			ID:             3,
			PickupLocation: models.Location{Name: "Central Mall"},
			DropLocation:   models.Location{Name: "Home", Address: "42 Maple Street"},
			VehicleType:    "QuickEco",
			ScheduledTime:  now.Add(-48 * time.Hour),
			Status:         models.BookingCompleted,
			EstimatedFare:  13.40,
			CreatedAt:      now.Add(-49 * time.Hour),
		},
	}
}

func MonthlyBookings(now time.Time) []models.MonthlyBooking {
	return []models.MonthlyBooking{
		{
			ID:        1,
			Title:     "Office commute",
			Pickup:    models.Location{Name: "Home", Address: "42 Maple Street"},
			Drop:      models.Location{Name: "Downtown Office", Address: "120 Market Street"},
			Schedule:  "Weekdays at 8:30 AM",
			Frequency: "weekdays",
			Rate:      220.00,
			IsActive:  true,
			CreatedAt: now.Add(-45 * 24 * time.Hour),
		},
		{
			ID:        2,
			Title:     "Gym run",
			Pickup:    models.Location{Name: "Home", Address: "42 Maple Street"},
			Drop:      models.Location{Name: "Pulse Fitness"},
			Schedule:  "Mon/Wed/Fri at 6:00 PM",
			Frequency: "custom",
			Rate:      95.00,
			IsActive:  false,
			CreatedAt: now.Add(-20 * 24 * time.Hour),
		},
	}
}

func Rides(now time.Time) []models.Ride {
	driver := MockDriver()
	return []models.Ride{
		{
			ID:             1,
			PickupLocation: models.Location{Name: "Home", Address: "42 Maple Street"},
			DropLocation:   models.Location{Name: "Downtown Office", Address: "120 Market Street"},
			VehicleType:    "QuickEco",
			Distance:       6.2,
			Duration:       18,
			Fare:           14.85,
			Rating:         5,
			Driver:         &driver,
			Status:         models.RideCompleted,
			CompletedAt:    now.Add(-2 * 24 * time.Hour),
		},
		{
			ID:             2,
			PickupLocation: models.Location{Name: "Downtown Office"},
			DropLocation:   models.Location{Name: "Central Mall"},
			VehicleType:    "QuickComfort",
			Distance:       3.1,
			Duration:       11,
			Fare:           19.20,
			Driver:         &driver,
			Status:         models.RideCompleted,
			CompletedAt:    now.Add(-10 * 24 * time.Hour),
		},
		{
			ID:             3,
			PickupLocation: models.Location{Name: "Airport Terminal 2"},
			DropLocation:   models.Location{Name: "Home", Address: "42 Maple Street"},
			VehicleType:    "QuickXL",
			Distance:       22.4,
			Duration:       35,
			Fare:           31.90,
			Rating:         4,
			Feedback:       "Smooth ride, a bit of traffic.",
			Driver:         &driver,
			Status:         models.RideCompleted,
			CompletedAt:    now.Add(-40 * 24 * time.Hour),
		},
		{
			ID:             4,
			PickupLocation: models.Location{Name: "Home", Address: "42 Maple Street"},
			DropLocation:   models.Location{Name: "Riverside Park"},
			VehicleType:    "QuickEco",
			Distance:       4.8,
			Duration:       0,
			Fare:           0,
			Status:         models.RideCancelled,
			CompletedAt:    now.Add(-400 * 24 * time.Hour),
		},
	}
}

func PaymentMethods(now time.Time) []models.PaymentMethod {
	return []models.PaymentMethod{
		{
			ID:             1,
			CardNumber:     "4532 7612 3456 7890",
			ExpiryDate:     "09/27",
			CardholderName: "Jordan Reyes",
			Brand:          "visa",
			IsDefault:      true,
			CreatedAt:      now.Add(-90 * 24 * time.Hour),
		},
		{
			ID:             2,
			CardNumber:     "5412 9834 5678 1234",
			ExpiryDate:     "02/26",
			CardholderName: "Jordan Reyes",
			Brand:          "mastercard",
			IsDefault:      false,
			CreatedAt:      now.Add(-30 * 24 * time.Hour),
		},
	}
}

func Transactions(now time.Time) []models.Transaction {
	return []models.Transaction{
		{
			ID:          1,
			Type:        models.TxRide,
			Amount:      14.85,
			Description: "Ride from Home to Downtown Office",
			Status:      "completed",
			BookingID:   3,
			PaymentMethod: models.MethodSnapshot{
				CardNumber:     "4532 7612 3456 7890",
				Brand:          "visa",
				CardholderName: "Jordan Reyes",
			},
			Timestamp: now.Add(-2 * 24 * time.Hour),
		},
		{
			ID:          2,
			Type:        models.TxMonthly,
			Amount:      220.00,
			Description: "Monthly plan: Office commute",
			Status:      "completed",
			PaymentMethod: models.MethodSnapshot{
				CardNumber:     "4532 7612 3456 7890",
				Brand:          "visa",
				CardholderName: "Jordan Reyes",
			},
			Timestamp: now.Add(-15 * 24 * time.Hour),
		},
	}
}
