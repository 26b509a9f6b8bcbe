package cart

import (
	"context"
	"database/sql"

	"github.com/joao-fontenele/galaxy-store-api/internal/domain"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// GetItems returns the user's cart with a fresh product snapshot per line.
// Items whose product has been deleted drop out of the join.
func (r *Repository) GetItems(ctx context.Context, userID string) ([]domain.CartItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ci.product_id, ci.quantity, ci.added_at,
		       p.id, p.name, p.description, p.price, p.category, p.brand,
		       p.image_url, p.rating, p.review_count, p.stock, p.in_stock,
		       p.is_premium_exclusive, p.is_trending
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY ci.added_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []domain.CartItem
	for rows.Next() {
		var item domain.CartItem
		p := &domain.Product{}
		err := rows.Scan(
			&item.ProductID, &item.Quantity, &item.AddedAt,
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

// AddItem inserts a line or bumps the quantity of an existing one.
func (r *Repository) AddItem(ctx context.Context, userID, productID string, quantity int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cart_items (user_id, product_id, quantity, added_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
	`, userID, productID, quantity)
	return err
}

func (r *Repository) SetQuantity(ctx context.Context, userID, productID string, quantity int) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE cart_items SET quantity = $3
		WHERE user_id = $1 AND product_id = $2
	`, userID, productID, quantity)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

func (r *Repository) RemoveItem(ctx context.Context, userID, productID string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
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

func (r *Repository) Clear(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	return err
}
