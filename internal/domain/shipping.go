package domain

// ShippingLocation maps a location name to a flat delivery cost (cents)
// and an estimated transit time in days.
type ShippingLocation struct {
	Name     string `json:"name"`
	Cost     int64  `json:"cost"`
	Days     int    `json:"days"`
	IsActive bool   `json:"is_active"`
}
