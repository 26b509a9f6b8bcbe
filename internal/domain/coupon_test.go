package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCouponValidForUse(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("active coupon without expiry", func(t *testing.T) {
		c := &Coupon{Code: "SAVE10", IsActive: true}
		assert.True(t, c.ValidForUse(now))
	})

	t.Run("inactive coupon", func(t *testing.T) {
		c := &Coupon{Code: "SAVE10", IsActive: false}
		assert.False(t, c.ValidForUse(now))
	})

	t.Run("expiry boundary is inclusive", func(t *testing.T) {
		expiry := now
		c := &Coupon{Code: "SAVE10", IsActive: true, ExpiresAt: &expiry}
		assert.True(t, c.ValidForUse(now))
	})

	t.Run("expired one second ago", func(t *testing.T) {
		expiry := now.Add(-time.Second)
		c := &Coupon{Code: "SAVE10", IsActive: true, ExpiresAt: &expiry}
		assert.False(t, c.ValidForUse(now))
	})

	t.Run("usage below limit", func(t *testing.T) {
		max := 5
		c := &Coupon{Code: "SAVE10", IsActive: true, UsageCount: 4, MaxUsage: &max}
		assert.True(t, c.ValidForUse(now))
	})

	t.Run("usage limit reached", func(t *testing.T) {
		max := 5
		c := &Coupon{Code: "SAVE10", IsActive: true, UsageCount: 5, MaxUsage: &max}
		assert.False(t, c.ValidForUse(now))
	})
}

func TestCouponTypeValid(t *testing.T) {
	assert.True(t, CouponTypePercentage.Valid())
	assert.True(t, CouponTypeFixed.Valid())
	assert.True(t, CouponTypeShipping.Valid())
	assert.False(t, CouponType("bogus").Valid())
}

func TestOrderStatusValid(t *testing.T) {
	for _, status := range []OrderStatus{
		OrderStatusPending,
		OrderStatusProcessing,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled,
	} {
		assert.True(t, status.Valid(), string(status))
	}
	assert.False(t, OrderStatus("unknown").Valid())
}
