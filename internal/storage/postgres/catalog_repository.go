package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cimillas/experience-booking/internal/domain"
)

type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

func (r *CatalogRepository) ListExperiences(ctx context.Context) ([]domain.Experience, error) {
	const query = `
SELECT id, title, description, COALESCE(image_url, ''), price, duration_hours,
	location, COALESCE(category, ''), rating, reviews_count, created_at
FROM experiences
ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list experiences: %w", err)
	}
	defer rows.Close()

	var experiences []domain.Experience
	for rows.Next() {
		experience, err := scanExperience(rows)
		if err != nil {
			return nil, fmt.Errorf("scan experience: %w", err)
		}
		experiences = append(experiences, experience)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate experiences: %w", rows.Err())
	}
	return experiences, nil
}

func (r *CatalogRepository) GetExperience(ctx context.Context, experienceID string) (domain.Experience, error) {
	const query = `
SELECT id, title, description, COALESCE(image_url, ''), price, duration_hours,
	location, COALESCE(category, ''), rating, reviews_count, created_at
FROM experiences
WHERE id = $1`

	experience, err := scanExperience(r.pool.QueryRow(ctx, query, experienceID))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Experience{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Experience{}, domain.ErrExperienceNotFound
		}
		return domain.Experience{}, fmt.Errorf("get experience: %w", err)
	}
	return experience, nil
}

// ListOpenSlots returns the slots inside [from, to] that still have seats,
// ordered by date then start time.
func (r *CatalogRepository) ListOpenSlots(ctx context.Context, experienceID string, from, to time.Time) ([]domain.Slot, error) {
	const query = `
SELECT id, experience_id, date, start_time, end_time, capacity, booked_count, created_at
FROM slots
WHERE experience_id = $1
  AND date >= $2
  AND date <= $3
  AND booked_count < capacity
ORDER BY date ASC, start_time ASC`

	rows, err := r.pool.Query(ctx, query, experienceID, from, to)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list open slots: %w", err)
	}
	defer rows.Close()

	var slots []domain.Slot
	for rows.Next() {
		var s domain.Slot
		if err := rows.Scan(&s.ID, &s.ExperienceID, &s.Date, &s.StartTime, &s.EndTime, &s.Capacity, &s.BookedCount, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, s)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate slots: %w", rows.Err())
	}
	return slots, nil
}

func scanExperience(row pgx.Row) (domain.Experience, error) {
	var e domain.Experience
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.ImageURL, &e.Price, &e.DurationHours,
		&e.Location, &e.Category, &e.Rating, &e.ReviewsCount, &e.CreatedAt,
	)
	if err != nil {
		return domain.Experience{}, err
	}
	return e, nil
}
