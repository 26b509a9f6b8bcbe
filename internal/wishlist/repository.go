package wishlist

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/joao-fontenele/galaxy-store-api/internal/domain"
)

var ErrAlreadyExists = errors.New("product already in wishlist")

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List(ctx context.Context, userID string) ([]domain.WishlistItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT wi.user_id, wi.product_id, wi.added_at,
		       p.id, p.name, p.description, p.price, p.category, p.brand,
		       p.image_url, p.rating, p.review_count, p.stock, p.in_stock,
		       p.is_premium_exclusive, p.is_trending
		FROM wishlist_items wi
		JOIN products p ON p.id = wi.product_id
		WHERE wi.user_id = $1
		ORDER BY wi.added_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []domain.WishlistItem
	for rows.Next() {
		var item domain.WishlistItem
		p := &domain.Product{}
		err := rows.Scan(
			&item.UserID, &item.ProductID, &item.AddedAt,
			&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Brand,
			&p.ImageURL, &p.Rating, &p.ReviewCount, &p.Stock, &p.InStock,
			&p.IsPremiumExclusive, &p.IsTrending,
		)
		if err != nil {
			return nil, err
		}
		item.Product = p
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *Repository) Add(ctx context.Context, userID, productID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO wishlist_items (user_id, product_id, added_at)
		VALUES ($1, $2, NOW())
	`, userID, productID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *Repository) Remove(ctx context.Context, userID, productID string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM wishlist_items
		WHERE user_id = $1 AND product_id = $2
	`, userID, productID)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}
