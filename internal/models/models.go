package models

import (
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingPendingPayment BookingStatus = "pending_payment"
	BookingPending        BookingStatus = "pending"
	BookingConfirmed      BookingStatus = "confirmed"
	BookingCancelled      BookingStatus = "cancelled"
	BookingCompleted      BookingStatus = "completed"
)

type RideStatus string

const (
	RideCompleted RideStatus = "completed"
	RideCancelled RideStatus = "cancelled"
	RideNoShow    RideStatus = "no_show"
)

type TransactionType string

const (
	TxRide         TransactionType = "ride"
	TxRefund       TransactionType = "refund"
	TxCancellation TransactionType = "cancellation"
	TxMonthly      TransactionType = "monthly"
)

type Location struct {
	Name    string  `json:"name"`
	Address string  `json:"address,omitempty"`
	Lat     float64 `json:"lat,omitempty"`
	Lon     float64 `json:"lon,omitempty"`
}

type Vehicle struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Type          string  `json:"type"` // economy, premium, suv
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"original_price,omitempty"`
	ETA           int     `json:"eta"` // minutes
	Capacity      int     `json:"capacity"`
	IsPopular     bool    `json:"is_popular,omitempty"`
}

type DriverVehicle struct {
	Make         string `json:"make"`
	Model        string `json:"model"`
	Color        string `json:"color"`
	LicensePlate string `json:"license_plate"`
}

type Driver struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Photo      string        `json:"photo"`
	Rating     float64       `json:"rating"`
	TotalRides int           `json:"total_rides"`
	Phone      string        `json:"phone"`
	Vehicle    DriverVehicle `json:"vehicle"`
	ETA        int           `json:"eta"` // minutes to pickup
	Distance   float64       `json:"distance"`
}

type Booking struct {
	ID              int           `json:"id"`
	PickupLocation  Location      `json:"pickup_location"`
	DropLocation    Location      `json:"drop_location"`
	VehicleType     string        `json:"vehicle_type"`
	ScheduledTime   time.Time     `json:"scheduled_time"`
	Status          BookingStatus `json:"status"`
	EstimatedFare   float64       `json:"estimated_fare"`
	PaymentID       int           `json:"payment_id,omitempty"`
	CancellationFee float64       `json:"cancellation_fee,omitempty"`
	Driver          *Driver       `json:"driver,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	ModifiedAt      *time.Time    `json:"modified_at,omitempty"`
	CancelledAt     *time.Time    `json:"cancelled_at,omitempty"`
}

// BookingPatch enumerates the mutable booking fields. Nil means "leave as is".
type BookingPatch struct {
	PickupLocation *Location  `json:"pickup_location,omitempty"`
	DropLocation   *Location  `json:"drop_location,omitempty"`
	VehicleType    *string    `json:"vehicle_type,omitempty"`
	ScheduledTime  *time.Time `json:"scheduled_time,omitempty"`
	EstimatedFare  *float64   `json:"estimated_fare,omitempty"`
}

type MonthlyBooking struct {
	ID         int        `json:"id"`
	Title      string     `json:"title"`
	Pickup     Location   `json:"pickup"`
	Drop       Location   `json:"drop"`
	Schedule   string     `json:"schedule"`
	Frequency  string     `json:"frequency"` // weekdays, daily, weekly, custom
	Rate       float64    `json:"rate"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
	ModifiedAt *time.Time `json:"modified_at,omitempty"`
}

type MonthlyBookingPatch struct {
	Title     *string   `json:"title,omitempty"`
	Pickup    *Location `json:"pickup,omitempty"`
	Drop      *Location `json:"drop,omitempty"`
	Schedule  *string   `json:"schedule,omitempty"`
	Frequency *string   `json:"frequency,omitempty"`
	Rate      *float64  `json:"rate,omitempty"`
}

// Ride is a completed (historical) trip. Immutable except rating/feedback.
type Ride struct {
	ID             int        `json:"id"`
	PickupLocation Location   `json:"pickup_location"`
	DropLocation   Location   `json:"drop_location"`
	VehicleType    string     `json:"vehicle_type"`
	Distance       float64    `json:"distance"` // km
	Duration       int        `json:"duration"` // minutes
	Fare           float64    `json:"fare"`
	Rating         int        `json:"rating,omitempty"`
	Feedback       string     `json:"feedback,omitempty"`
	Driver         *Driver    `json:"driver,omitempty"`
	Status         RideStatus `json:"status"`
	CompletedAt    time.Time  `json:"completed_at"`
	RatedAt        *time.Time `json:"rated_at,omitempty"`
}

type PaymentMethod struct {
	ID             int       `json:"id"`
	CardNumber     string    `json:"card_number"`
	ExpiryDate     string    `json:"expiry_date"`
	CardholderName string    `json:"cardholder_name"`
	Brand          string    `json:"brand"`
	IsDefault      bool      `json:"is_default"`
	CreatedAt      time.Time `json:"created_at"`
}

// Masked returns the display form of the card number, last four digits only.
func (m PaymentMethod) Masked() string {
	digits := strings.ReplaceAll(m.CardNumber, " ", "")
	if len(digits) <= 4 {
		return digits
	}
	return "•••• " + digits[len(digits)-4:]
}

// MethodSnapshot is the payment-method detail frozen into a transaction
// at processing time.
type MethodSnapshot struct {
	CardNumber     string `json:"card_number"`
	Brand          string `json:"brand"`
	CardholderName string `json:"cardholder_name"`
}

type Transaction struct {
	ID            int             `json:"id"`
	Type          TransactionType `json:"type"`
	Amount        float64         `json:"amount"`
	Description   string          `json:"description"`
	Status        string          `json:"status"`
	BookingID     int             `json:"booking_id,omitempty"`
	PaymentMethod MethodSnapshot  `json:"payment_method"`
	Timestamp     time.Time       `json:"timestamp"`
}

// FareBreakdown is derived per request and never stored.
type FareBreakdown struct {
	BaseFare   float64 `json:"base_fare"`
	ServiceFee float64 `json:"service_fee"`
	Tax        float64 `json:"tax"`
	Total      float64 `json:"total"`
}

// BookingRequest is the shape submitted by the booking flow; rebooking a
// historical ride also returns one of these (without creating anything).
type BookingRequest struct {
	PickupLocation Location  `json:"pickup_location"`
	DropLocation   Location  `json:"drop_location"`
	VehicleType    string    `json:"vehicle_type"`
	ScheduledTime  time.Time `json:"scheduled_time,omitempty"`
	EstimatedFare  float64   `json:"estimated_fare,omitempty"`
	PaymentID      int       `json:"payment_id,omitempty"`
	Vehicle        *Vehicle  `json:"vehicle,omitempty"`
}
