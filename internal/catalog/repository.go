package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/joao-fontenele/galaxy-store-api/internal/domain"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const productColumns = `id, name, description, price, category, brand, image_url, images, rating, review_count, stock, in_stock, is_premium_exclusive, is_trending, tags, specifications, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (*domain.Product, error) {
	p := &domain.Product{}
	var specs []byte
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Brand,
		&p.ImageURL, pq.Array(&p.Images), &p.Rating, &p.ReviewCount,
		&p.Stock, &p.InStock, &p.IsPremiumExclusive, &p.IsTrending,
		pq.Array(&p.Tags), &specs, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(specs) > 0 {
		if err := json.Unmarshal(specs, &p.Specifications); err != nil {
			return nil, fmt.Errorf("unmarshal specifications: %w", err)
		}
	}
	if p.Specifications == nil {
		p.Specifications = map[string]string{}
	}
	return p, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = $1
	`, id)

	p, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return p, nil
}

// ListFilter narrows and orders a product listing. Zero values mean
// "no constraint".
type ListFilter struct {
	Category   string
	Brand      string
	Search     string
	MinPrice   *int64
	MaxPrice   *int64
	InStock    *bool
	IsTrending *bool
	IsPremium  *bool
	SortBy     string
	SortOrder  string
	Page       int
	Limit      int
}

var sortColumns = map[string]string{
	"name":       "name",
	"price":      "price",
	"rating":     "rating",
	"created_at": "created_at",
}

func (r *Repository) List(ctx context.Context, filter ListFilter) ([]domain.Product, error) {
	var conds []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Category != "" {
		conds = append(conds, "category ILIKE "+arg(filter.Category))
	}
	if filter.Brand != "" {
		conds = append(conds, "brand ILIKE "+arg(filter.Brand))
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		p := arg(pattern)
		conds = append(conds, fmt.Sprintf("(name ILIKE %s OR description ILIKE %s)", p, p))
	}
	if filter.MinPrice != nil {
		conds = append(conds, "price >= "+arg(*filter.MinPrice))
	}
	if filter.MaxPrice != nil {
		conds = append(conds, "price <= "+arg(*filter.MaxPrice))
	}
	if filter.InStock != nil {
		conds = append(conds, "in_stock = "+arg(*filter.InStock))
	}
	if filter.IsTrending != nil {
		conds = append(conds, "is_trending = "+arg(*filter.IsTrending))
	}
	if filter.IsPremium != nil {
		conds = append(conds, "is_premium_exclusive = "+arg(*filter.IsPremium))
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	sortBy, ok := sortColumns[filter.SortBy]
	if !ok {
		sortBy = "created_at"
	}
	order := "DESC"
	if filter.SortOrder == "asc" {
		order = "ASC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", sortBy, order)

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	query += fmt.Sprintf(" LIMIT %s OFFSET %s", arg(limit), arg((page-1)*limit))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *Repository) ListTrending(ctx context.Context, limit int) ([]domain.Product, error) {
	trending, inStock := true, true
	return r.List(ctx, ListFilter{
		IsTrending: &trending,
		InStock:    &inStock,
		SortBy:     "rating",
		Limit:      limit,
	})
}

func (r *Repository) ListPremium(ctx context.Context, limit int) ([]domain.Product, error) {
	premium, inStock := true, true
	return r.List(ctx, ListFilter{
		IsPremium: &premium,
		InStock:   &inStock,
		SortBy:    "rating",
		Limit:     limit,
	})
}

func (r *Repository) Create(ctx context.Context, p *domain.Product) error {
	p.ID = uuid.New().String()
	p.InStock = p.Stock > 0

	specs, err := json.Marshal(p.Specifications)
	if err != nil {
		return fmt.Errorf("marshal specifications: %w", err)
	}

	err = r.db.QueryRowContext(ctx, `
		INSERT INTO products (id, name, description, price, category, brand, image_url, images, rating, review_count, stock, in_stock, is_premium_exclusive, is_trending, tags, specifications, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, 0, $9, $10, $11, $12, $13, $14, NOW(), NOW())
		RETURNING rating, review_count, created_at, updated_at
	`, p.ID, p.Name, p.Description, p.Price, p.Category, p.Brand, p.ImageURL,
		pq.Array(p.Images), p.Stock, p.InStock, p.IsPremiumExclusive,
		p.IsTrending, pq.Array(p.Tags), specs).
		Scan(&p.Rating, &p.ReviewCount, &p.CreatedAt, &p.UpdatedAt)

	return err
}

func (r *Repository) Update(ctx context.Context, id string, p *domain.Product) (*domain.Product, error) {
	specs, err := json.Marshal(p.Specifications)
	if err != nil {
		return nil, fmt.Errorf("marshal specifications: %w", err)
	}

	row := r.db.QueryRowContext(ctx, `
		UPDATE products
		SET name = $2, description = $3, price = $4, category = $5, brand = $6,
		    image_url = $7, images = $8, stock = $9, in_stock = $9 > 0,
		    is_premium_exclusive = $10, is_trending = $11, tags = $12,
		    specifications = $13, updated_at = NOW()
		WHERE id = $1
		RETURNING `+productColumns+`
	`, id, p.Name, p.Description, p.Price, p.Category, p.Brand, p.ImageURL,
		pq.Array(p.Images), p.Stock, p.IsPremiumExclusive, p.IsTrending,
		pq.Array(p.Tags), specs)

	updated, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return updated, nil
}

func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

// SetStock replaces the stock count and keeps the in_stock flag derived
// from it.
func (r *Repository) SetStock(ctx context.Context, id string, stock int) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE products
		SET stock = $2, in_stock = $2 > 0, updated_at = NOW()
		WHERE id = $1
		RETURNING `+productColumns+`
	`, id, stock)

	p, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return p, nil
}
