// Package products provides the PostgreSQL-backed product catalog
// repository.
package products

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/smhome/internal/common"
	"github.com/dmitrijs2005/smhome/internal/dbx"
	"github.com/dmitrijs2005/smhome/internal/server/models"
)

// PostgresRepository implements catalog reads over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns the whole catalog ordered by id.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Product, error) {
	query := `SELECT id, name, price, image, description, category, discount_percent, colors
		FROM products
		ORDER BY id
		`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Product, 0)
	for rows.Next() {
		p, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// GetByID returns common.ErrorNotFound for an unknown id.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	query := `SELECT id, name, price, image, description, category, discount_percent, colors
		FROM products
		WHERE id = $1
		`
	p, err := scan(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (*models.Product, error) {
	var (
		p        models.Product
		discount sql.NullInt32
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Image, &p.Description, &p.Category, &discount, &p.Colors); err != nil {
		return nil, err
	}
	if discount.Valid {
		d := int(discount.Int32)
		p.DiscountPercent = &d
	}
	return &p, nil
}
