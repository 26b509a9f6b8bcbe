package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/joao-fontenele/galaxy-store-api/internal/catalog"
	"github.com/joao-fontenele/galaxy-store-api/internal/coupons"
	"github.com/joao-fontenele/galaxy-store-api/internal/domain"
)

// Seeds development data: shipping locations, default coupons, and a small
// catalog. Safe to run repeatedly; existing rows are left alone.
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	ctx := context.Background()

	postgresURL := os.Getenv("POSTGRES_URL")
	if postgresURL == "" {
		logger.Error("POSTGRES_URL environment variable is required")
		os.Exit(1)
	}

	db, err := sql.Open("postgres", postgresURL)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	if err := seedShippingLocations(ctx, db); err != nil {
		logger.Error("failed to seed shipping locations", "error", err)
		os.Exit(1)
	}

	if err := seedCoupons(ctx, db); err != nil {
		logger.Error("failed to seed coupons", "error", err)
		os.Exit(1)
	}

	if err := seedProducts(ctx, db); err != nil {
		logger.Error("failed to seed products", "error", err)
		os.Exit(1)
	}

	logger.Info("seed complete")
}

func seedShippingLocations(ctx context.Context, db *sql.DB) error {
	locations := []domain.ShippingLocation{
		{Name: "Delhi", Cost: 5000, Days: 2, IsActive: true},
		{Name: "Mumbai", Cost: 6000, Days: 3, IsActive: true},
		{Name: "Bangalore", Cost: 5500, Days: 2, IsActive: true},
		{Name: "Chennai", Cost: 6500, Days: 3, IsActive: true},
		{Name: "Kolkata", Cost: 7000, Days: 4, IsActive: true},
		{Name: "Hyderabad", Cost: 6000, Days: 3, IsActive: true},
		{Name: "Pune", Cost: 5500, Days: 2, IsActive: true},
		{Name: "Remote", Cost: 10000, Days: 5, IsActive: true},
	}

	for _, loc := range locations {
		_, err := db.ExecContext(ctx, `
			INSERT INTO shipping_locations (name, cost, days, is_active)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (name) DO NOTHING
		`, loc.Name, loc.Cost, loc.Days, loc.IsActive)
		if err != nil {
			return err
		}
	}
	return nil
}

func seedCoupons(ctx context.Context, db *sql.DB) error {
	repo := coupons.NewRepository(db)
	expiry := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	seeds := []domain.Coupon{
		{Code: "SAVE10", Type: domain.CouponTypePercentage, Value: 10, Description: "10% off on your order", IsActive: true, ExpiresAt: &expiry},
		{Code: "FLAT100", Type: domain.CouponTypeFixed, Value: 10000, Description: "$100 off on your order", IsActive: true, ExpiresAt: &expiry},
		{Code: "FREESHIP", Type: domain.CouponTypeShipping, Value: 0, Description: "Free shipping on your order", IsActive: true, ExpiresAt: &expiry},
	}

	for i := range seeds {
		err := repo.Create(ctx, &seeds[i])
		if errors.Is(err, coupons.ErrCodeExists) {
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func seedProducts(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	repo := catalog.NewRepository(db)

	products := []domain.Product{
		{
			Name:               "MacBook Pro 16-inch",
			Description:        "Professional laptop with M2 Pro chip, 16GB RAM, and 512GB SSD.",
			Price:              249999,
			Category:           "Electronics",
			Brand:              "Apple",
			ImageURL:           "https://images.unsplash.com/photo-1517336714731-489689fd1ca8?w=500",
			Images:             []string{"https://images.unsplash.com/photo-1517336714731-489689fd1ca8?w=800"},
			Rating:             4.8,
			ReviewCount:        214,
			Stock:              45,
			IsPremiumExclusive: true,
			IsTrending:         true,
			Tags:               []string{"laptop", "professional", "apple"},
			Specifications:     map[string]string{"chip": "M2 Pro", "ram": "16GB", "storage": "512GB SSD"},
		},
		{
			Name:           "iPhone 15 Pro",
			Description:    "Latest iPhone with titanium design, A17 Pro chip, and advanced camera system.",
			Price:          119999,
			Category:       "Electronics",
			Brand:          "Apple",
			ImageURL:       "https://images.unsplash.com/photo-1592750475338-74b7b21085ab?w=500",
			Images:         []string{"https://images.unsplash.com/photo-1592750475338-74b7b21085ab?w=800"},
			Rating:         4.7,
			ReviewCount:    389,
			Stock:          78,
			IsTrending:     true,
			Tags:           []string{"smartphone", "iphone", "apple"},
			Specifications: map[string]string{"chip": "A17 Pro", "display": "6.1-inch"},
		},
		{
			Name:               "Samsung Galaxy S24 Ultra",
			Description:        "Premium Android smartphone with S Pen, 200MP camera, and 1TB storage.",
			Price:              139999,
			Category:           "Electronics",
			Brand:              "Samsung",
			ImageURL:           "https://images.unsplash.com/photo-1610945415295-d9bbf067e59c?w=500",
			Images:             []string{"https://images.unsplash.com/photo-1610945415295-d9bbf067e59c?w=800"},
			Rating:             4.6,
			ReviewCount:        157,
			Stock:              62,
			IsPremiumExclusive: true,
			Tags:               []string{"smartphone", "android", "samsung"},
			Specifications:     map[string]string{"camera": "200MP", "storage": "1TB"},
		},
		{
			Name:           "PlayStation 5",
			Description:    "Next-gen gaming console with 4K gaming, ray tracing, and ultra-fast SSD.",
			Price:          49999,
			Category:       "Gaming",
			Brand:          "Sony",
			ImageURL:       "https://images.unsplash.com/photo-1606813907291-d86efa9b94db?w=500",
			Images:         []string{"https://images.unsplash.com/photo-1606813907291-d86efa9b94db?w=800"},
			Rating:         4.9,
			ReviewCount:    521,
			Stock:          23,
			IsTrending:     true,
			Tags:           []string{"console", "gaming", "sony"},
			Specifications: map[string]string{"resolution": "4K", "storage": "825GB SSD"},
		},
		{
			Name:           "Dell XPS 13",
			Description:    "Ultra-portable laptop with Intel Core i7, 16GB RAM, and InfinityEdge display.",
			Price:          129999,
			Category:       "Electronics",
			Brand:          "Dell",
			ImageURL:       "https://images.unsplash.com/photo-1496181133206-80ce9b88a853?w=500",
			Images:         []string{"https://images.unsplash.com/photo-1496181133206-80ce9b88a853?w=800"},
			Rating:         4.4,
			ReviewCount:    98,
			Stock:          34,
			Tags:           []string{"laptop", "ultrabook", "dell"},
			Specifications: map[string]string{"cpu": "Intel Core i7", "ram": "16GB"},
		},
	}

	for i := range products {
		if err := repo.Create(ctx, &products[i]); err != nil {
			return err
		}
	}
	return nil
}
