package coupons

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/joao-fontenele/galaxy-store-api/internal/domain"
)

var ErrCodeExists = errors.New("coupon code already exists")

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const couponColumns = `id, code, type, value, description, is_active, expires_at, usage_count, max_usage, created_at, updated_at`

func scanCoupon(row interface{ Scan(...any) error }) (*domain.Coupon, error) {
	c := &domain.Coupon{}
	err := row.Scan(
		&c.ID, &c.Code, &c.Type, &c.Value, &c.Description, &c.IsActive,
		&c.ExpiresAt, &c.UsageCount, &c.MaxUsage, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetByCode matches case-insensitively; codes are stored uppercase.
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+couponColumns+`
		FROM coupons
		WHERE code = $1
	`, strings.ToUpper(code))

	c, err := scanCoupon(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return c, nil
}

func (r *Repository) List(ctx context.Context) ([]domain.Coupon, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+couponColumns+`
		FROM coupons
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var coupons []domain.Coupon
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			return nil, err
		}
		coupons = append(coupons, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return coupons, nil
}

func (r *Repository) Create(ctx context.Context, c *domain.Coupon) error {
	c.ID = uuid.New().String()
	c.Code = strings.ToUpper(c.Code)

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO coupons (id, code, type, value, description, is_active, expires_at, max_usage, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING usage_count, created_at, updated_at
	`, c.ID, c.Code, c.Type, c.Value, c.Description, c.IsActive, c.ExpiresAt, c.MaxUsage).
		Scan(&c.UsageCount, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrCodeExists
		}
		return err
	}

	return nil
}

func (r *Repository) Update(ctx context.Context, id string, c *domain.Coupon) (*domain.Coupon, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE coupons
		SET type = $2, value = $3, description = $4, is_active = $5, expires_at = $6, max_usage = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING `+couponColumns+`
	`, id, c.Type, c.Value, c.Description, c.IsActive, c.ExpiresAt, c.MaxUsage)

	updated, err := scanCoupon(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return updated, nil
}

func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}
