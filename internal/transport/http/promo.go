package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/cimillas/experience-booking/internal/app"
	"github.com/cimillas/experience-booking/internal/domain"
)

// PromoQuoter is the minimal interface needed for discount previews.
type PromoQuoter interface {
	Quote(ctx context.Context, in app.PromoQuoteInput) (app.PromoQuote, error)
}

// HandleValidatePromo returns an HTTP handler for the non-committing promo
// preview. It never redeems a use.
func HandleValidatePromo(svc PromoQuoter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req validatePromoRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		quote, err := svc.Quote(r.Context(), app.PromoQuoteInput{
			Code:      req.Code,
			BasePrice: req.BasePrice,
		})
		if err != nil {
			switch err {
			case domain.ErrMissingRequiredField:
				writeError(w, http.StatusBadRequest, codeMissingRequiredField, "code and base_price are required")
			case domain.ErrPromoInvalid:
				writeError(w, http.StatusBadRequest, codePromoInvalid, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		writeJSON(w, http.StatusOK, validatePromoResponse{
			Code:           quote.Code,
			DiscountType:   string(quote.DiscountType),
			DiscountValue:  quote.DiscountValue,
			DiscountAmount: quote.DiscountAmount,
			FinalPrice:     quote.FinalPrice,
		})
	}
}

type validatePromoRequest struct {
	Code      string          `json:"code"`
	BasePrice decimal.Decimal `json:"base_price"`
}

type validatePromoResponse struct {
	Code           string          `json:"code"`
	DiscountType   string          `json:"discount_type"`
	DiscountValue  decimal.Decimal `json:"discount_value"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	FinalPrice     decimal.Decimal `json:"final_price"`
}
