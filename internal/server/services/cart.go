package services

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/dmitrijs2005/smhome/internal/common"
	"github.com/dmitrijs2005/smhome/internal/dbx"
	"github.com/dmitrijs2005/smhome/internal/server/models"
	"github.com/dmitrijs2005/smhome/internal/server/repositories/repomanager"
)

// MaxCartQuantity is the largest quantity a cart line can hold; the column
// is a Postgres INTEGER.
const MaxCartQuantity = math.MaxInt32

// CartService manages per-user shopping carts. A cart holds at most one
// line per product; adding an existing product increases its quantity.
type CartService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	images      ImageResolver
}

func NewCartService(db *sql.DB, m repomanager.RepositoryManager, images ImageResolver) *CartService {
	return &CartService{db: db, repomanager: m, images: images}
}

// List returns the user's cart lines with their products embedded.
func (s *CartService) List(ctx context.Context, userID int64) ([]*models.CartItem, error) {
	items, err := s.repomanager.CartItems(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, wrapInternal(err)
	}
	for _, it := range items {
		if err := resolveImages(ctx, s.images, it.Product); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// Add puts quantity units of productID into the cart. color is only stored
// when the line is created.
func (s *CartService) Add(ctx context.Context, userID, productID int64, quantity int, color *models.ProductColor) (*models.CartItem, error) {
	if quantity < 1 || quantity > MaxCartQuantity {
		return nil, fmt.Errorf("%w: quantity must be between 1 and %d", common.ErrValidation, MaxCartQuantity)
	}

	item, err := dbx.InTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*models.CartItem, error) {
		product, err := s.repomanager.Products(tx).GetByID(ctx, productID)
		if err != nil {
			return nil, err
		}

		item, err := s.repomanager.CartItems(tx).AddOrIncrement(ctx, &models.CartItem{
			UserID:        userID,
			ProductID:     productID,
			Quantity:      quantity,
			SelectedColor: color,
		})
		if err != nil {
			return nil, err
		}
		item.Product = product
		return item, nil
	})
	if err != nil {
		return nil, wrapInternal(err)
	}

	if err := resolveImages(ctx, s.images, item.Product); err != nil {
		return nil, err
	}
	return item, nil
}

// Remove deletes the user's line for productID. Removing a product that is
// not in the cart is not an error.
func (s *CartService) Remove(ctx context.Context, userID, productID int64) error {
	if err := s.repomanager.CartItems(s.db).Delete(ctx, userID, productID); err != nil {
		return wrapInternal(err)
	}
	return nil
}
