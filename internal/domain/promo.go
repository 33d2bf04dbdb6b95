package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// PromoCode is a reusable discount token with optional expiry and usage cap.
// Invariant: if MaxUses is set, CurrentUses <= MaxUses at all times.
type PromoCode struct {
	ID            string
	Code          string
	DiscountType  DiscountType
	DiscountValue decimal.Decimal
	MaxUses       *int
	CurrentUses   int
	ValidFrom     *time.Time
	ValidUntil    *time.Time
	IsActive      bool
	CreatedAt     time.Time
}

// Usable reports whether the code can be redeemed at the given instant.
// ValidFrom is stored for reporting but not evaluated here.
func (p PromoCode) Usable(now time.Time) bool {
	if !p.IsActive {
		return false
	}
	if p.ValidUntil != nil && !p.ValidUntil.After(now) {
		return false
	}
	if p.MaxUses != nil && p.CurrentUses >= *p.MaxUses {
		return false
	}
	return true
}

// NormalizePromoCode maps user input to the stored code form. Codes are
// matched case-insensitively and stored upper-cased.
func NormalizePromoCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
