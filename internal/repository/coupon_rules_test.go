package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"dalbhaat-backend/internal/models"
)

func TestCheckCoupon(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	limit := 1

	t.Run("valid", func(t *testing.T) {
		c := &models.Coupon{Code: "SAVE10", Discount: 10, ExpiresAt: future, IsActive: true}
		assert.NoError(t, CheckCoupon(c, now))
	})

	t.Run("missing", func(t *testing.T) {
		assert.ErrorIs(t, CheckCoupon(nil, now), ErrNotFound)
	})

	t.Run("inactive", func(t *testing.T) {
		c := &models.Coupon{Code: "OFF", ExpiresAt: future, IsActive: false}
		assert.ErrorIs(t, CheckCoupon(c, now), ErrCouponInactive)
	})

	t.Run("expired", func(t *testing.T) {
		c := &models.Coupon{Code: "OLD", ExpiresAt: now.Add(-time.Minute), IsActive: true}
		assert.ErrorIs(t, CheckCoupon(c, now), ErrCouponExpired)
	})

	t.Run("limit reached", func(t *testing.T) {
		c := &models.Coupon{Code: "ONCE", ExpiresAt: future, IsActive: true, UsageLimit: &limit, TimesUsed: 1}
		assert.ErrorIs(t, CheckCoupon(c, now), ErrCouponLimit)
	})

	t.Run("unbounded never exhausts", func(t *testing.T) {
		c := &models.Coupon{Code: "FOREVER", ExpiresAt: future, IsActive: true, TimesUsed: 10000}
		assert.NoError(t, CheckCoupon(c, now))
	})

	t.Run("validation never mutates", func(t *testing.T) {
		c := &models.Coupon{Code: "OLD", ExpiresAt: now.Add(-time.Minute), IsActive: true, TimesUsed: 3}
		_ = CheckCoupon(c, now)
		assert.Equal(t, 3, c.TimesUsed)
	})
}
