package cartitems

import (
	"context"

	"github.com/dmitrijs2005/smhome/internal/server/models"
)

type Repository interface {
	ListByUser(ctx context.Context, userID int64) ([]*models.CartItem, error)
	AddOrIncrement(ctx context.Context, item *models.CartItem) (*models.CartItem, error)
	Delete(ctx context.Context, userID, productID int64) error
}
