package favorites

import (
	"context"

	"github.com/dmitrijs2005/smhome/internal/server/models"
)

type Repository interface {
	ListByUser(ctx context.Context, userID int64) ([]*models.Favorite, error)
	Add(ctx context.Context, userID, productID int64) (*models.Favorite, error)
	Delete(ctx context.Context, userID, productID int64) error
}
