package shipping

import (
	"context"
	"database/sql"

	"github.com/joao-fontenele/galaxy-store-api/internal/domain"
)

// Fallback applied when a checkout names a location missing from the rate
// table. Amounts in cents.
const (
	DefaultCost  int64 = 5000
	DefaultDays        = 7
)

// Rate is a resolved shipping quote.
type Rate struct {
	Cost int64
	Days int
}

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListActive(ctx context.Context) ([]domain.ShippingLocation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, cost, days, is_active
		FROM shipping_locations
		WHERE is_active
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var locations []domain.ShippingLocation
	for rows.Next() {
		var loc domain.ShippingLocation
		if err := rows.Scan(&loc.Name, &loc.Cost, &loc.Days, &loc.IsActive); err != nil {
			return nil, err
		}
		locations = append(locations, loc)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return locations, nil
}

func (r *Repository) GetByName(ctx context.Context, name string) (*domain.ShippingLocation, error) {
	loc := &domain.ShippingLocation{}

	err := r.db.QueryRowContext(ctx, `
		SELECT name, cost, days, is_active
		FROM shipping_locations
		WHERE name = $1
	`, name).Scan(&loc.Name, &loc.Cost, &loc.Days, &loc.IsActive)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return loc, nil
}

// Quote resolves the shipping rate for a location name. Unknown or
// inactive locations fall back to the flat default rather than failing
// the checkout.
func (r *Repository) Quote(ctx context.Context, location string) (Rate, error) {
	loc, err := r.GetByName(ctx, location)
	if err != nil {
		return Rate{}, err
	}
	if loc == nil || !loc.IsActive {
		return Rate{Cost: DefaultCost, Days: DefaultDays}, nil
	}
	return Rate{Cost: loc.Cost, Days: loc.Days}, nil
}
