// Package pricing computes reservation amounts. All functions are pure;
// monetary values use decimal arithmetic rounded to 2 decimal places.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/cimillas/experience-booking/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// BasePrice is the undiscounted amount for a party of the given size.
func BasePrice(unitPrice decimal.Decimal, guests int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(guests)))
}

// Discount computes the discount amount a promo grants against a base price.
// A fixed discount is not clamped to the base price, so a fixed value larger
// than the base produces a total below zero. Kept as observed upstream
// behavior pending a policy decision.
func Discount(base decimal.Decimal, discountType domain.DiscountType, value decimal.Decimal) decimal.Decimal {
	switch discountType {
	case domain.DiscountTypePercentage:
		return base.Mul(value).Div(hundred).Round(2)
	case domain.DiscountTypeFixed:
		return value.Round(2)
	default:
		return decimal.Zero
	}
}

// Total is the amount due after the discount is applied.
func Total(base, discount decimal.Decimal) decimal.Decimal {
	return base.Sub(discount)
}
