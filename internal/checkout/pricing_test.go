package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joao-fontenele/galaxy-store-api/internal/domain"
	"github.com/joao-fontenele/galaxy-store-api/internal/shipping"
)

func TestComputeTotals(t *testing.T) {
	items := []domain.OrderItem{
		{ProductID: "p1", Name: "Widget", Price: 2500, Quantity: 2},
		{ProductID: "p2", Name: "Gadget", Price: 1000, Quantity: 1},
	}
	rate := shipping.Rate{Cost: 5000, Days: 7}

	t.Run("no coupon", func(t *testing.T) {
		got := ComputeTotals(items, nil, rate)

		assert.Equal(t, int64(6000), got.Subtotal)
		assert.Equal(t, int64(0), got.Discount)
		assert.Equal(t, int64(5000), got.ShippingCost)
		assert.Equal(t, int64(11000), got.Total)
	})

	t.Run("percentage coupon", func(t *testing.T) {
		coupon := &domain.Coupon{Code: "SAVE10", Type: domain.CouponTypePercentage, Value: 10}

		got := ComputeTotals(items, coupon, rate)

		assert.Equal(t, int64(6000), got.Subtotal)
		assert.Equal(t, int64(600), got.Discount)
		assert.Equal(t, int64(5000), got.ShippingCost)
		assert.Equal(t, int64(10400), got.Total)
	})

	t.Run("fixed coupon", func(t *testing.T) {
		coupon := &domain.Coupon{Code: "FLAT20", Type: domain.CouponTypeFixed, Value: 2000}

		got := ComputeTotals(items, coupon, rate)

		assert.Equal(t, int64(2000), got.Discount)
		assert.Equal(t, int64(9000), got.Total)
	})

	t.Run("fixed coupon clamped to subtotal", func(t *testing.T) {
		coupon := &domain.Coupon{Code: "FLAT100", Type: domain.CouponTypeFixed, Value: 10000}

		got := ComputeTotals(items, coupon, rate)

		assert.Equal(t, int64(6000), got.Discount)
		assert.Equal(t, int64(5000), got.Total)
	})

	t.Run("shipping coupon zeroes shipping only", func(t *testing.T) {
		coupon := &domain.Coupon{Code: "FREESHIP", Type: domain.CouponTypeShipping, Value: 0}

		got := ComputeTotals(items, coupon, rate)

		assert.Equal(t, int64(6000), got.Subtotal)
		assert.Equal(t, int64(0), got.Discount)
		assert.Equal(t, int64(0), got.ShippingCost)
		assert.Equal(t, int64(6000), got.Total)
	})

	t.Run("empty items", func(t *testing.T) {
		got := ComputeTotals(nil, nil, rate)

		assert.Equal(t, int64(0), got.Subtotal)
		assert.Equal(t, int64(5000), got.Total)
	})
}
