package products

import (
	"context"

	"github.com/dmitrijs2005/smhome/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
}
