package domain

import "time"

type CouponType string

const (
	// CouponTypePercentage discounts value percent off the subtotal.
	CouponTypePercentage CouponType = "percentage"
	// CouponTypeFixed discounts value cents, clamped to the subtotal.
	CouponTypeFixed CouponType = "fixed"
	// CouponTypeShipping zeroes the shipping cost.
	CouponTypeShipping CouponType = "shipping"
)

func (t CouponType) Valid() bool {
	switch t {
	case CouponTypePercentage, CouponTypeFixed, CouponTypeShipping:
		return true
	}
	return false
}

type Coupon struct {
	ID          string     `json:"id"`
	Code        string     `json:"code"`
	Type        CouponType `json:"type"`
	Value       int64      `json:"value"`
	Description string     `json:"description"`
	IsActive    bool       `json:"is_active"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	UsageCount  int        `json:"usage_count"`
	MaxUsage    *int       `json:"max_usage,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ValidForUse reports whether the coupon can be redeemed at the given
// instant. The expiry boundary is inclusive: a coupon expiring exactly now
// is still valid.
func (c *Coupon) ValidForUse(now time.Time) bool {
	if !c.IsActive {
		return false
	}
	if c.ExpiresAt != nil && c.ExpiresAt.Before(now) {
		return false
	}
	if c.MaxUsage != nil && c.UsageCount >= *c.MaxUsage {
		return false
	}
	return true
}
