package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/cimillas/experience-booking/internal/domain"
)

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

func (r *BookingRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

// GetSlotForUpdate locks the slot row for the rest of the transaction. The
// coordinator always locks the slot before any promo row, keeping lock
// acquisition ordered across concurrent bookings.
func (r *BookingRepository) GetSlotForUpdate(ctx context.Context, slotID string) (domain.Slot, error) {
	const query = `
SELECT id, experience_id, date, start_time, end_time, capacity, booked_count, created_at
FROM slots
WHERE id = $1
FOR UPDATE`

	var s domain.Slot
	err := r.queryRow(ctx, query, slotID).
		Scan(&s.ID, &s.ExperienceID, &s.Date, &s.StartTime, &s.EndTime, &s.Capacity, &s.BookedCount, &s.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Slot{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Slot{}, domain.ErrSlotNotFound
		}
		return domain.Slot{}, fmt.Errorf("get slot: %w", err)
	}
	return s, nil
}

func (r *BookingRepository) GetExperiencePrice(ctx context.Context, experienceID string) (decimal.Decimal, error) {
	const query = `SELECT price FROM experiences WHERE id = $1`

	var price decimal.Decimal
	if err := r.queryRow(ctx, query, experienceID).Scan(&price); err != nil {
		if isInvalidUUID(err) {
			return decimal.Decimal{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return decimal.Decimal{}, domain.ErrExperienceNotFound
		}
		return decimal.Decimal{}, fmt.Errorf("get experience price: %w", err)
	}
	return price, nil
}

// GetUsablePromoForUpdate locks the promo row and returns it only while the
// code is active, unexpired and under its use cap. Callers cannot tell which
// condition failed; everything maps to ErrPromoInvalid.
func (r *BookingRepository) GetUsablePromoForUpdate(ctx context.Context, code string, now time.Time) (domain.PromoCode, error) {
	const query = `
SELECT id, code, discount_type, discount_value, max_uses, current_uses, valid_from, valid_until, is_active, created_at
FROM promo_codes
WHERE code = $1
  AND is_active
  AND (valid_until IS NULL OR valid_until > $2)
  AND (max_uses IS NULL OR current_uses < max_uses)
FOR UPDATE`

	promo, err := scanPromo(r.queryRow(ctx, query, code, now))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.PromoCode{}, domain.ErrPromoInvalid
		}
		return domain.PromoCode{}, fmt.Errorf("get promo: %w", err)
	}
	return promo, nil
}

// IncrementPromoUses re-applies the usability predicate at increment time so
// a redemption that raced past validation still cannot exceed the cap.
func (r *BookingRepository) IncrementPromoUses(ctx context.Context, promoID string, now time.Time) error {
	const stmt = `
UPDATE promo_codes
SET current_uses = current_uses + 1
WHERE id = $1
  AND is_active
  AND (valid_until IS NULL OR valid_until > $2)
  AND (max_uses IS NULL OR current_uses < max_uses)`

	tag, err := r.exec(ctx, stmt, promoID, now)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrPromoInvalid
		}
		return fmt.Errorf("increment promo uses: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPromoInvalid
	}
	return nil
}

func (r *BookingRepository) CreateBooking(ctx context.Context, b domain.Booking) error {
	const stmt = `
INSERT INTO bookings (id, slot_id, experience_id, user_name, user_email, user_phone,
	number_of_guests, base_price, promo_code, discount_amount, total_price, status, created_at)
VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, NULLIF($9, ''), $10, $11, $12, $13)`

	_, err := r.exec(ctx, stmt,
		b.ID,
		b.SlotID,
		b.ExperienceID,
		b.UserName,
		b.UserEmail,
		b.UserPhone,
		b.NumberOfGuests,
		b.BasePrice,
		b.PromoCode,
		b.DiscountAmount,
		b.TotalPrice,
		b.Status,
		b.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isForeignKeyViolation(err) {
			return domain.ErrSlotNotFound
		}
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

// IncrementSlotBooked adds guests to a slot's booked count. The predicate
// makes the check-and-increment a single step; together with the FOR UPDATE
// read it keeps booked_count within capacity under concurrency.
func (r *BookingRepository) IncrementSlotBooked(ctx context.Context, slotID string, guests int) error {
	const stmt = `
UPDATE slots
SET booked_count = booked_count + $2
WHERE id = $1 AND booked_count + $2 <= capacity`

	tag, err := r.exec(ctx, stmt, slotID, guests)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrCapacityExceeded
		}
		return fmt.Errorf("increment booked count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCapacityExceeded
	}
	return nil
}

func (r *BookingRepository) GetBookingDetail(ctx context.Context, bookingID string) (domain.BookingDetail, error) {
	const query = `
SELECT b.id, b.slot_id, b.experience_id, b.user_name, b.user_email, COALESCE(b.user_phone, ''),
	b.number_of_guests, b.base_price, COALESCE(b.promo_code, ''), b.discount_amount, b.total_price,
	b.status, b.created_at, e.title, s.date, s.start_time
FROM bookings b
JOIN experiences e ON b.experience_id = e.id
JOIN slots s ON b.slot_id = s.id
WHERE b.id = $1`

	var d domain.BookingDetail
	err := r.queryRow(ctx, query, bookingID).Scan(
		&d.ID, &d.SlotID, &d.ExperienceID, &d.UserName, &d.UserEmail, &d.UserPhone,
		&d.NumberOfGuests, &d.BasePrice, &d.PromoCode, &d.DiscountAmount, &d.TotalPrice,
		&d.Status, &d.CreatedAt, &d.ExperienceTitle, &d.Date, &d.StartTime,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.BookingDetail{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.BookingDetail{}, domain.ErrBookingNotFound
		}
		return domain.BookingDetail{}, fmt.Errorf("get booking: %w", err)
	}
	return d, nil
}

func (r *BookingRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *BookingRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func scanPromo(row pgx.Row) (domain.PromoCode, error) {
	var p domain.PromoCode
	err := row.Scan(
		&p.ID, &p.Code, &p.DiscountType, &p.DiscountValue,
		&p.MaxUses, &p.CurrentUses, &p.ValidFrom, &p.ValidUntil,
		&p.IsActive, &p.CreatedAt,
	)
	if err != nil {
		return domain.PromoCode{}, err
	}
	return p, nil
}
