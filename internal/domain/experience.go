package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Experience is a bookable offering priced per guest.
type Experience struct {
	ID            string
	Title         string
	Description   string
	ImageURL      string
	Price         decimal.Decimal
	DurationHours int
	Location      string
	Category      string
	Rating        float64
	ReviewsCount  int
	CreatedAt     time.Time
}
