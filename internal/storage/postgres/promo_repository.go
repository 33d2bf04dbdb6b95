package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cimillas/experience-booking/internal/domain"
)

// PromoRepository serves the read-only preview path. It takes no locks and
// never writes; redemption goes through BookingRepository.
type PromoRepository struct {
	pool *pgxpool.Pool
}

func NewPromoRepository(pool *pgxpool.Pool) *PromoRepository {
	return &PromoRepository{pool: pool}
}

func (r *PromoRepository) FindUsableByCode(ctx context.Context, code string, now time.Time) (domain.PromoCode, error) {
	const query = `
SELECT id, code, discount_type, discount_value, max_uses, current_uses, valid_from, valid_until, is_active, created_at
FROM promo_codes
WHERE code = $1
  AND is_active
  AND (valid_until IS NULL OR valid_until > $2)
  AND (max_uses IS NULL OR current_uses < max_uses)`

	promo, err := scanPromo(r.pool.QueryRow(ctx, query, code, now))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.PromoCode{}, domain.ErrPromoInvalid
		}
		return domain.PromoCode{}, fmt.Errorf("find promo: %w", err)
	}
	return promo, nil
}
