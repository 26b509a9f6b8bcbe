package domain

import "time"

// Product prices are stored in cents.
type Product struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	Description        string            `json:"description"`
	Price              int64             `json:"price"`
	Category           string            `json:"category"`
	Brand              string            `json:"brand"`
	ImageURL           string            `json:"image_url"`
	Images             []string          `json:"images"`
	Rating             float64           `json:"rating"`
	ReviewCount        int               `json:"review_count"`
	Stock              int               `json:"stock"`
	InStock            bool              `json:"in_stock"`
	IsPremiumExclusive bool              `json:"is_premium_exclusive"`
	IsTrending         bool              `json:"is_trending"`
	Tags               []string          `json:"tags"`
	Specifications     map[string]string `json:"specifications"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}
