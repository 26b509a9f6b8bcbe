package domain

import "time"

// CartItem carries a denormalized product snapshot for display. The
// snapshot is refreshed on every cart read; checkout re-reads the live
// product rows regardless.
type CartItem struct {
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Product   *Product  `json:"product,omitempty"`
	AddedAt   time.Time `json:"added_at"`
}
