package app

import (
	"context"
	"time"

	"github.com/cimillas/experience-booking/internal/clock"
	"github.com/cimillas/experience-booking/internal/domain"
)

type CatalogRepository interface {
	ListExperiences(ctx context.Context) ([]domain.Experience, error)
	GetExperience(ctx context.Context, experienceID string) (domain.Experience, error)
	ListOpenSlots(ctx context.Context, experienceID string, from, to time.Time) ([]domain.Slot, error)
}

// CatalogService serves the read-only listing endpoints. It holds no
// reservation state and never mutates anything.
type CatalogService struct {
	repo  CatalogRepository
	clock clock.Clock
}

const slotLookaheadDays = 30

func NewCatalogService(repo CatalogRepository, clk clock.Clock) *CatalogService {
	return &CatalogService{
		repo:  repo,
		clock: clk,
	}
}

func (s *CatalogService) ListExperiences(ctx context.Context) ([]domain.Experience, error) {
	return s.repo.ListExperiences(ctx)
}

type ExperienceDetail struct {
	Experience domain.Experience
	Slots      []domain.Slot
}

// GetExperience returns an experience together with its open slots for the
// next 30 days. A slot is open while it still has unreserved seats.
func (s *CatalogService) GetExperience(ctx context.Context, experienceID string) (ExperienceDetail, error) {
	if experienceID == "" {
		return ExperienceDetail{}, domain.ErrInvalidID
	}

	experience, err := s.repo.GetExperience(ctx, experienceID)
	if err != nil {
		return ExperienceDetail{}, err
	}

	today := s.clock.Now().Truncate(24 * time.Hour)
	slots, err := s.repo.ListOpenSlots(ctx, experienceID, today, today.AddDate(0, 0, slotLookaheadDays))
	if err != nil {
		return ExperienceDetail{}, err
	}

	return ExperienceDetail{
		Experience: experience,
		Slots:      slots,
	}, nil
}
