package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reservation is immutable once written.
type Reservation struct {
	ID         int64
	CustomerID int64
	ProductID  int64
	CheckIn    time.Time
	CheckOut   time.Time
	TotalCost  decimal.Decimal
	CreatedAt  time.Time
}

type NewReservation struct {
	CustomerID int64
	ProductID  int64
	CheckIn    time.Time
	CheckOut   time.Time
	TotalCost  decimal.Decimal
}

// BookingRequest is what a caller submits after picking a quote.
type BookingRequest struct {
	CustomerID int64
	ProductID  int64
	CheckIn    StayDate
	Nights     int
	TotalCost  decimal.Decimal
}

// ReservationView is the denormalized confirmation composed at read time.
type ReservationView struct {
	ID           int64
	CustomerID   int64
	CustomerName string
	ProductName  string
	CheckIn      time.Time
	CheckOut     time.Time
	TotalCost    decimal.Decimal
}

type CategoryRevenue struct {
	Category Category
	Revenue  decimal.Decimal
}

type Dashboard struct {
	Reservations      []ReservationView
	TotalReservations int64
	TotalRevenue      decimal.Decimal
	RevenueByCategory []CategoryRevenue
}
