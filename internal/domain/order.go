package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItem captures the product name and unit price at checkout time.
// Stock decisions are always made against the live product row, never
// against this snapshot.
type OrderItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// Order amounts are in cents and satisfy
// total = subtotal - discount + shipping_cost. Everything except Status is
// immutable after creation.
type Order struct {
	ID                string      `json:"id"`
	UserID            string      `json:"user_id"`
	Items             []OrderItem `json:"items"`
	Subtotal          int64       `json:"subtotal"`
	Discount          int64       `json:"discount"`
	ShippingCost      int64       `json:"shipping_cost"`
	Total             int64       `json:"total"`
	CouponCode        string      `json:"coupon_code,omitempty"`
	Status            OrderStatus `json:"status"`
	ShippingAddress   string      `json:"shipping_address"`
	Location          string      `json:"location"`
	EstimatedDelivery time.Time   `json:"estimated_delivery"`
	CreatedAt         time.Time   `json:"created_at"`
}
