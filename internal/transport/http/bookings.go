package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/cimillas/experience-booking/internal/app"
	"github.com/cimillas/experience-booking/internal/domain"
)

var validate = validator.New()

// BookingCreator is the minimal interface needed to create a booking.
type BookingCreator interface {
	CreateBooking(ctx context.Context, in app.CreateBookingInput) (domain.Booking, error)
}

// BookingGetter is the minimal interface needed to fetch a booking.
type BookingGetter interface {
	GetBooking(ctx context.Context, bookingID string) (domain.BookingDetail, error)
}

// HandleCreateBooking returns an HTTP handler for creating bookings.
func HandleCreateBooking(svc BookingCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req createBookingRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeValidationError(w, err)
			return
		}

		booking, err := svc.CreateBooking(r.Context(), app.CreateBookingInput{
			SlotID:         req.SlotID,
			ExperienceID:   req.ExperienceID,
			UserName:       req.UserName,
			UserEmail:      req.UserEmail,
			UserPhone:      req.UserPhone,
			NumberOfGuests: req.NumberOfGuests,
			PromoCode:      req.PromoCode,
		})
		if err != nil {
			switch err {
			case domain.ErrMissingRequiredField:
				writeError(w, http.StatusBadRequest, codeMissingRequiredField, err.Error())
			case domain.ErrInvalidGuestCount:
				writeError(w, http.StatusBadRequest, codeInvalidGuestCount, err.Error())
			case domain.ErrInvalidID:
				writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
			case domain.ErrSlotNotFound:
				writeError(w, http.StatusNotFound, codeSlotNotFound, err.Error())
			case domain.ErrExperienceNotFound:
				writeError(w, http.StatusNotFound, codeExperienceNotFound, err.Error())
			case domain.ErrCapacityExceeded:
				writeError(w, http.StatusConflict, codeCapacityExceeded, err.Error())
			case domain.ErrPromoInvalid:
				writeError(w, http.StatusBadRequest, codePromoInvalid, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusCreated, createBookingResponse{
			BookingID:      booking.ID,
			UserName:       booking.UserName,
			UserEmail:      booking.UserEmail,
			NumberOfGuests: booking.NumberOfGuests,
			BasePrice:      booking.BasePrice,
			DiscountAmount: booking.DiscountAmount,
			TotalPrice:     booking.TotalPrice,
			Status:         string(booking.Status),
		})
	}
}

// HandleGetBooking returns an HTTP handler for booking confirmation lookups.
func HandleGetBooking(svc BookingGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		bookingID, ok := parseBookingPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		detail, err := svc.GetBooking(r.Context(), bookingID)
		if err != nil {
			switch err {
			case domain.ErrInvalidID:
				writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
			case domain.ErrBookingNotFound:
				writeError(w, http.StatusNotFound, codeBookingNotFound, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusOK, bookingDetailResponse{
			ID:              detail.ID,
			SlotID:          detail.SlotID,
			ExperienceID:    detail.ExperienceID,
			ExperienceTitle: detail.ExperienceTitle,
			Date:            detail.Date.Format("2006-01-02"),
			StartTime:       detail.StartTime,
			UserName:        detail.UserName,
			UserEmail:       detail.UserEmail,
			UserPhone:       detail.UserPhone,
			NumberOfGuests:  detail.NumberOfGuests,
			BasePrice:       detail.BasePrice,
			PromoCode:       detail.PromoCode,
			DiscountAmount:  detail.DiscountAmount,
			TotalPrice:      detail.TotalPrice,
			Status:          string(detail.Status),
			CreatedAt:       detail.CreatedAt,
		})
	}
}

func parseBookingPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 2 || parts[0] != "bookings" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func writeValidationError(w http.ResponseWriter, err error) {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			if fe.Field() == "NumberOfGuests" {
				writeError(w, http.StatusBadRequest, codeInvalidGuestCount, domain.ErrInvalidGuestCount.Error())
				return
			}
		}
	}
	writeError(w, http.StatusBadRequest, codeMissingRequiredField, domain.ErrMissingRequiredField.Error())
}

type createBookingRequest struct {
	SlotID         string `json:"slot_id" validate:"required"`
	ExperienceID   string `json:"experience_id" validate:"required"`
	UserName       string `json:"user_name" validate:"required"`
	UserEmail      string `json:"user_email" validate:"required,email"`
	UserPhone      string `json:"user_phone"`
	NumberOfGuests int    `json:"number_of_guests" validate:"required,gte=1"`
	PromoCode      string `json:"promo_code"`
}

type createBookingResponse struct {
	BookingID      string          `json:"booking_id"`
	UserName       string          `json:"user_name"`
	UserEmail      string          `json:"user_email"`
	NumberOfGuests int             `json:"number_of_guests"`
	BasePrice      decimal.Decimal `json:"base_price"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	Status         string          `json:"status"`
}

type bookingDetailResponse struct {
	ID              string          `json:"id"`
	SlotID          string          `json:"slot_id"`
	ExperienceID    string          `json:"experience_id"`
	ExperienceTitle string          `json:"experience_title"`
	Date            string          `json:"date"`
	StartTime       string          `json:"start_time"`
	UserName        string          `json:"user_name"`
	UserEmail       string          `json:"user_email"`
	UserPhone       string          `json:"user_phone,omitempty"`
	NumberOfGuests  int             `json:"number_of_guests"`
	BasePrice       decimal.Decimal `json:"base_price"`
	PromoCode       string          `json:"promo_code,omitempty"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}
