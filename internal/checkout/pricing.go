package checkout

import (
	"github.com/joao-fontenele/galaxy-store-api/internal/domain"
	"github.com/joao-fontenele/galaxy-store-api/internal/shipping"
)

// PriceBreakdown is the full price decomposition of an order, in cents.
// Total always equals Subtotal - Discount + ShippingCost.
type PriceBreakdown struct {
	Subtotal     int64
	Discount     int64
	ShippingCost int64
	Total        int64
}

// ComputeTotals derives the price breakdown for a set of validated line
// items. coupon may be nil (no discount). A fixed-amount discount is
// clamped to the subtotal so the discounted merchandise value never goes
// negative; a shipping coupon zeroes the shipping cost and leaves the
// merchandise untouched.
func ComputeTotals(items []domain.OrderItem, coupon *domain.Coupon, rate shipping.Rate) PriceBreakdown {
	var subtotal int64
	for _, item := range items {
		subtotal += item.Price * int64(item.Quantity)
	}

	var discount int64
	shippingCost := rate.Cost

	if coupon != nil {
		switch coupon.Type {
		case domain.CouponTypePercentage:
			discount = subtotal * coupon.Value / 100
		case domain.CouponTypeFixed:
			discount = min(coupon.Value, subtotal)
		case domain.CouponTypeShipping:
			shippingCost = 0
		}
	}

	return PriceBreakdown{
		Subtotal:     subtotal,
		Discount:     discount,
		ShippingCost: shippingCost,
		Total:        subtotal - discount + shippingCost,
	}
}
