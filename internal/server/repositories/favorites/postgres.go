package favorites

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/smhome/internal/dbx"
	"github.com/dmitrijs2005/smhome/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Favorite, error) {
	query := `SELECT f.id, f.user_id, f.product_id,
			p.id, p.name, p.price, p.image, p.description, p.category, p.discount_percent, p.colors
		FROM favorites f
		JOIN products p ON p.id = f.product_id
		WHERE f.user_id = $1
		ORDER BY f.id
		`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Favorite, 0)
	for rows.Next() {
		var (
			fav      models.Favorite
			product  models.Product
			discount sql.NullInt32
		)
		if err := rows.Scan(
			&fav.ID, &fav.UserID, &fav.ProductID,
			&product.ID, &product.Name, &product.Price, &product.Image, &product.Description,
			&product.Category, &discount, &product.Colors,
		); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if discount.Valid {
			d := int(discount.Int32)
			product.DiscountPercent = &d
		}
		fav.Product = &product
		result = append(result, &fav)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// Add is idempotent: when the pair is already favorited the no-op update
// lets RETURNING hand back the existing row.
func (r *PostgresRepository) Add(ctx context.Context, userID, productID int64) (*models.Favorite, error) {
	query := `INSERT INTO favorites (user_id, product_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET product_id = EXCLUDED.product_id
		RETURNING id, user_id, product_id
		`

	fav := &models.Favorite{}
	if err := r.db.QueryRowContext(ctx, query, userID, productID).Scan(&fav.ID, &fav.UserID, &fav.ProductID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return fav, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, productID int64) error {
	query := `DELETE FROM favorites WHERE user_id = $1 AND product_id = $2`
	if _, err := r.db.ExecContext(ctx, query, userID, productID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
