package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cimillas/experience-booking/internal/clock"
	"github.com/cimillas/experience-booking/internal/domain"
	"github.com/cimillas/experience-booking/internal/pricing"
)

type BookingRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetSlotForUpdate(ctx context.Context, slotID string) (domain.Slot, error)
	GetExperiencePrice(ctx context.Context, experienceID string) (decimal.Decimal, error)
	GetUsablePromoForUpdate(ctx context.Context, code string, now time.Time) (domain.PromoCode, error)
	IncrementPromoUses(ctx context.Context, promoID string, now time.Time) error
	CreateBooking(ctx context.Context, booking domain.Booking) error
	IncrementSlotBooked(ctx context.Context, slotID string, guests int) error
	GetBookingDetail(ctx context.Context, bookingID string) (domain.BookingDetail, error)
}

// BookingService coordinates the atomic reservation sequence: capacity check,
// pricing, booking insert, slot increment and promo redemption run inside a
// single transaction. Row locks are taken in a fixed order (slot, then promo)
// so two coordinators touching the same rows cannot deadlock.
type BookingService struct {
	repo  BookingRepository
	clock clock.Clock
}

func NewBookingService(repo BookingRepository, clk clock.Clock) *BookingService {
	return &BookingService{
		repo:  repo,
		clock: clk,
	}
}

type CreateBookingInput struct {
	SlotID         string
	ExperienceID   string
	UserName       string
	UserEmail      string
	UserPhone      string
	NumberOfGuests int
	PromoCode      string
}

func (s *BookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (domain.Booking, error) {
	if in.SlotID == "" || in.ExperienceID == "" || in.UserName == "" || in.UserEmail == "" {
		return domain.Booking{}, domain.ErrMissingRequiredField
	}
	if in.NumberOfGuests <= 0 {
		return domain.Booking{}, domain.ErrInvalidGuestCount
	}

	now := s.clock.Now()
	var result domain.Booking

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		slot, err := s.repo.GetSlotForUpdate(txCtx, in.SlotID)
		if err != nil {
			return err
		}
		if slot.BookedCount+in.NumberOfGuests > slot.Capacity {
			return domain.ErrCapacityExceeded
		}

		unitPrice, err := s.repo.GetExperiencePrice(txCtx, in.ExperienceID)
		if err != nil {
			return err
		}
		base := pricing.BasePrice(unitPrice, in.NumberOfGuests)

		discount := decimal.Zero
		promoCode := ""
		if in.PromoCode != "" {
			promo, err := s.repo.GetUsablePromoForUpdate(txCtx, domain.NormalizePromoCode(in.PromoCode), now)
			if err != nil {
				return err
			}
			discount = pricing.Discount(base, promo.DiscountType, promo.DiscountValue)
			// Usability is re-checked at increment time so a concurrent
			// redemption of the last remaining use cannot slip through.
			if err := s.repo.IncrementPromoUses(txCtx, promo.ID, now); err != nil {
				return err
			}
			promoCode = promo.Code
		}

		booking := domain.Booking{
			ID:             uuid.NewString(),
			SlotID:         in.SlotID,
			ExperienceID:   in.ExperienceID,
			UserName:       in.UserName,
			UserEmail:      in.UserEmail,
			UserPhone:      in.UserPhone,
			NumberOfGuests: in.NumberOfGuests,
			BasePrice:      base,
			PromoCode:      promoCode,
			DiscountAmount: discount,
			TotalPrice:     pricing.Total(base, discount),
			Status:         domain.BookingStatusConfirmed,
			CreatedAt:      now,
		}

		if err := s.repo.CreateBooking(txCtx, booking); err != nil {
			return err
		}
		if err := s.repo.IncrementSlotBooked(txCtx, in.SlotID, in.NumberOfGuests); err != nil {
			return err
		}

		result = booking
		return nil
	})
	if err != nil {
		return domain.Booking{}, err
	}

	return result, nil
}

func (s *BookingService) GetBooking(ctx context.Context, bookingID string) (domain.BookingDetail, error) {
	if bookingID == "" {
		return domain.BookingDetail{}, domain.ErrInvalidID
	}
	return s.repo.GetBookingDetail(ctx, bookingID)
}
