package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cimillas/experience-booking/internal/domain"
	"github.com/cimillas/experience-booking/internal/testutil"
)

func TestPromoRepository_FindUsableByCode(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewPromoRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	ctx := context.Background()
	testutil.TruncateAll(t, ctx, pool)
	now := time.Now().UTC()

	testutil.InsertPromo(t, ctx, pool, domain.PromoCode{
		Code:          "SAVE10",
		DiscountType:  domain.DiscountTypePercentage,
		DiscountValue: decimal.RequireFromString("10"),
		IsActive:      true,
	})

	promo, err := repo.FindUsableByCode(ctx, "SAVE10", now)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if promo.Code != "SAVE10" || !promo.DiscountValue.Equal(decimal.RequireFromString("10")) {
		t.Fatalf("unexpected promo: %+v", promo)
	}

	if _, err := repo.FindUsableByCode(ctx, "MISSING", now); err != domain.ErrPromoInvalid {
		t.Fatalf("expected ErrPromoInvalid, got %v", err)
	}

	// The preview path must never consume a use.
	var uses int
	if err := pool.QueryRow(ctx, `SELECT current_uses FROM promo_codes WHERE code = 'SAVE10'`).Scan(&uses); err != nil {
		t.Fatalf("query current_uses: %v", err)
	}
	if uses != 0 {
		t.Fatalf("expected current_uses 0, got %d", uses)
	}
}
