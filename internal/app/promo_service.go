package app

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cimillas/experience-booking/internal/clock"
	"github.com/cimillas/experience-booking/internal/domain"
	"github.com/cimillas/experience-booking/internal/pricing"
)

type PromoRepository interface {
	FindUsableByCode(ctx context.Context, code string, now time.Time) (domain.PromoCode, error)
}

// PromoService answers non-committing discount previews. Redemption only
// happens inside BookingService; this path never touches usage counters.
type PromoService struct {
	repo  PromoRepository
	clock clock.Clock
}

func NewPromoService(repo PromoRepository, clk clock.Clock) *PromoService {
	return &PromoService{
		repo:  repo,
		clock: clk,
	}
}

type PromoQuoteInput struct {
	Code      string
	BasePrice decimal.Decimal
}

type PromoQuote struct {
	Code           string
	DiscountType   domain.DiscountType
	DiscountValue  decimal.Decimal
	DiscountAmount decimal.Decimal
	FinalPrice     decimal.Decimal
}

func (s *PromoService) Quote(ctx context.Context, in PromoQuoteInput) (PromoQuote, error) {
	if in.Code == "" || in.BasePrice.Sign() <= 0 {
		return PromoQuote{}, domain.ErrMissingRequiredField
	}

	promo, err := s.repo.FindUsableByCode(ctx, domain.NormalizePromoCode(in.Code), s.clock.Now())
	if err != nil {
		return PromoQuote{}, err
	}

	discount := pricing.Discount(in.BasePrice, promo.DiscountType, promo.DiscountValue)
	return PromoQuote{
		Code:           promo.Code,
		DiscountType:   promo.DiscountType,
		DiscountValue:  promo.DiscountValue,
		DiscountAmount: discount,
		FinalPrice:     pricing.Total(in.BasePrice, discount),
	}, nil
}
