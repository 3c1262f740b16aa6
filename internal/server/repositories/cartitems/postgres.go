// Package cartitems provides the PostgreSQL-backed cart repository.
package cartitems

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/smhome/internal/common"
	"github.com/dmitrijs2005/smhome/internal/dbx"
	"github.com/dmitrijs2005/smhome/internal/server/models"
)

// PostgresRepository implements cart storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListByUser returns the user's cart in insertion order, each line carrying
// its product.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.CartItem, error) {
	query := `SELECT c.id, c.user_id, c.product_id, c.quantity, c.selected_color,
			p.id, p.name, p.price, p.image, p.description, p.category, p.discount_percent, p.colors
		FROM cart_items c
		JOIN products p ON p.id = c.product_id
		WHERE c.user_id = $1
		ORDER BY c.id
		`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.CartItem, 0)
	for rows.Next() {
		var (
			item     models.CartItem
			color    models.NullColor
			product  models.Product
			discount sql.NullInt32
		)
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &color,
			&product.ID, &product.Name, &product.Price, &product.Image, &product.Description,
			&product.Category, &discount, &product.Colors,
		); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if discount.Valid {
			d := int(discount.Int32)
			product.DiscountPercent = &d
		}
		item.SelectedColor = color.Color
		item.Product = &product
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// AddOrIncrement inserts the (user, product) line or, when it already
// exists, adds item.Quantity to it in the same statement. The stored
// selected_color of an existing line is kept. A total that no longer fits
// the quantity column yields common.ErrValidation.
func (r *PostgresRepository) AddOrIncrement(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {
	query := `INSERT INTO cart_items (user_id, product_id, quantity, selected_color)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING id, user_id, product_id, quantity, selected_color
		`

	out := &models.CartItem{}
	var color models.NullColor
	err := r.db.QueryRowContext(ctx, query,
		item.UserID, item.ProductID, item.Quantity, models.NullColor{Color: item.SelectedColor},
	).Scan(&out.ID, &out.UserID, &out.ProductID, &out.Quantity, &color)
	if err != nil {
		if dbx.IsNumericOutOfRange(err) {
			return nil, fmt.Errorf("%w: cart quantity is too large", common.ErrValidation)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	out.SelectedColor = color.Color
	return out, nil
}

// Delete removes the (user, product) line. Deleting a missing line is not
// an error.
func (r *PostgresRepository) Delete(ctx context.Context, userID, productID int64) error {
	query := `DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`
	if _, err := r.db.ExecContext(ctx, query, userID, productID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
