package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const BookingStatusConfirmed BookingStatus = "confirmed"

// Booking is the durable receipt of a successful reservation. It is created
// once in status "confirmed" and never mutated afterwards.
type Booking struct {
	ID             string
	SlotID         string
	ExperienceID   string
	UserName       string
	UserEmail      string
	UserPhone      string
	NumberOfGuests int
	BasePrice      decimal.Decimal
	PromoCode      string
	DiscountAmount decimal.Decimal
	TotalPrice     decimal.Decimal
	Status         BookingStatus
	CreatedAt      time.Time
}

// BookingDetail joins a booking with display fields from its experience and slot.
type BookingDetail struct {
	Booking
	ExperienceTitle string
	Date            time.Time
	StartTime       string
}
