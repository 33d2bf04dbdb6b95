package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cimillas/experience-booking/internal/app"
	"github.com/cimillas/experience-booking/internal/domain"
)

// CatalogReader is the minimal interface needed for the listing endpoints.
type CatalogReader interface {
	ListExperiences(ctx context.Context) ([]domain.Experience, error)
	GetExperience(ctx context.Context, experienceID string) (app.ExperienceDetail, error)
}

// HandleListExperiences returns an HTTP handler for the experience catalog.
func HandleListExperiences(svc CatalogReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		experiences, err := svc.ListExperiences(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		resp := make([]experienceResponse, 0, len(experiences))
		for _, experience := range experiences {
			resp = append(resp, newExperienceResponse(experience))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleGetExperience returns an HTTP handler for experience detail plus its
// open slots for the next 30 days.
func HandleGetExperience(svc CatalogReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		experienceID, ok := parseExperiencePath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		detail, err := svc.GetExperience(r.Context(), experienceID)
		if err != nil {
			switch err {
			case domain.ErrInvalidID:
				writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
			case domain.ErrExperienceNotFound:
				writeError(w, http.StatusNotFound, codeExperienceNotFound, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		resp := experienceDetailResponse{
			experienceResponse: newExperienceResponse(detail.Experience),
			Slots:              make([]slotResponse, 0, len(detail.Slots)),
		}
		for _, slot := range detail.Slots {
			resp.Slots = append(resp.Slots, slotResponse{
				ID:             slot.ID,
				Date:           slot.Date.Format("2006-01-02"),
				StartTime:      slot.StartTime,
				EndTime:        slot.EndTime,
				Capacity:       slot.Capacity,
				BookedCount:    slot.BookedCount,
				AvailableSeats: slot.AvailableSeats(),
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func parseExperiencePath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 2 || parts[0] != "experiences" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

type experienceResponse struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	ImageURL      string          `json:"image_url,omitempty"`
	Price         decimal.Decimal `json:"price"`
	DurationHours int             `json:"duration_hours"`
	Location      string          `json:"location"`
	Category      string          `json:"category,omitempty"`
	Rating        float64         `json:"rating"`
	ReviewsCount  int             `json:"reviews_count"`
	CreatedAt     time.Time       `json:"created_at"`
}

func newExperienceResponse(e domain.Experience) experienceResponse {
	return experienceResponse{
		ID:            e.ID,
		Title:         e.Title,
		Description:   e.Description,
		ImageURL:      e.ImageURL,
		Price:         e.Price,
		DurationHours: e.DurationHours,
		Location:      e.Location,
		Category:      e.Category,
		Rating:        e.Rating,
		ReviewsCount:  e.ReviewsCount,
		CreatedAt:     e.CreatedAt,
	}
}

type experienceDetailResponse struct {
	experienceResponse
	Slots []slotResponse `json:"slots"`
}

type slotResponse struct {
	ID             string `json:"id"`
	Date           string `json:"date"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	Capacity       int    `json:"capacity"`
	BookedCount    int    `json:"booked_count"`
	AvailableSeats int    `json:"available_seats"`
}
