package domain

import "errors"

var (
	ErrSlotNotFound         = errors.New("slot not found")
	ErrExperienceNotFound   = errors.New("experience not found")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrCapacityExceeded     = errors.New("not enough seats available")
	ErrPromoInvalid         = errors.New("invalid or expired promo code")
	ErrMissingRequiredField = errors.New("missing required fields")
	ErrInvalidGuestCount    = errors.New("invalid number of guests")
	ErrInvalidID            = errors.New("invalid id")
)
