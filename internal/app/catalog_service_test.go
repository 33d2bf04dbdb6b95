package app

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cimillas/experience-booking/internal/clock"
	"github.com/cimillas/experience-booking/internal/domain"
)

func TestCatalogService_GetExperience(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 15, 30, 0, 0, time.UTC)

	t.Run("requests a 30 day window starting today", func(t *testing.T) {
		repo := &fakeCatalogRepo{
			experiences: map[string]domain.Experience{
				"exp-1": {ID: "exp-1", Title: "Sunset Kayak Tour", Price: decimal.RequireFromString("89.99")},
			},
		}
		svc := NewCatalogService(repo, clock.NewFixed(now))

		detail, err := svc.GetExperience(context.Background(), "exp-1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if detail.Experience.ID != "exp-1" {
			t.Fatalf("unexpected experience %+v", detail.Experience)
		}

		wantFrom := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		if !repo.from.Equal(wantFrom) {
			t.Fatalf("expected window start %v, got %v", wantFrom, repo.from)
		}
		if !repo.to.Equal(wantFrom.AddDate(0, 0, 30)) {
			t.Fatalf("expected window end %v, got %v", wantFrom.AddDate(0, 0, 30), repo.to)
		}
		if detail.Slots != nil {
			t.Fatalf("expected no slots, got %d", len(detail.Slots))
		}
	})

	t.Run("empty id", func(t *testing.T) {
		svc := NewCatalogService(&fakeCatalogRepo{}, clock.NewFixed(now))
		if _, err := svc.GetExperience(context.Background(), ""); err != domain.ErrInvalidID {
			t.Fatalf("expected ErrInvalidID, got %v", err)
		}
	})

	t.Run("experience not found", func(t *testing.T) {
		svc := NewCatalogService(&fakeCatalogRepo{}, clock.NewFixed(now))
		if _, err := svc.GetExperience(context.Background(), "missing"); err != domain.ErrExperienceNotFound {
			t.Fatalf("expected ErrExperienceNotFound, got %v", err)
		}
	})
}

func TestCatalogService_ListExperiences(t *testing.T) {
	t.Parallel()

	repo := &fakeCatalogRepo{
		list: []domain.Experience{
			{ID: "exp-2", Title: "Wine Tasting"},
			{ID: "exp-1", Title: "Sunset Kayak Tour"},
		},
	}
	svc := NewCatalogService(repo, clock.NewSystem())

	experiences, err := svc.ListExperiences(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(experiences) != 2 || experiences[0].ID != "exp-2" {
		t.Fatalf("unexpected experiences %+v", experiences)
	}
}

type fakeCatalogRepo struct {
	experiences map[string]domain.Experience
	list        []domain.Experience
	slots       []domain.Slot
	from, to    time.Time
}

func (f *fakeCatalogRepo) ListExperiences(_ context.Context) ([]domain.Experience, error) {
	return f.list, nil
}

func (f *fakeCatalogRepo) GetExperience(_ context.Context, experienceID string) (domain.Experience, error) {
	experience, ok := f.experiences[experienceID]
	if !ok {
		return domain.Experience{}, domain.ErrExperienceNotFound
	}
	return experience, nil
}

func (f *fakeCatalogRepo) ListOpenSlots(_ context.Context, _ string, from, to time.Time) ([]domain.Slot, error) {
	f.from, f.to = from, to
	return f.slots, nil
}
