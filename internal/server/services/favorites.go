package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/smhome/internal/dbx"
	"github.com/dmitrijs2005/smhome/internal/server/models"
	"github.com/dmitrijs2005/smhome/internal/server/repositories/repomanager"
)

// FavoriteService manages per-user favorite products.
type FavoriteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	images      ImageResolver
}

func NewFavoriteService(db *sql.DB, m repomanager.RepositoryManager, images ImageResolver) *FavoriteService {
	return &FavoriteService{db: db, repomanager: m, images: images}
}

func (s *FavoriteService) List(ctx context.Context, userID int64) ([]*models.Favorite, error) {
	items, err := s.repomanager.Favorites(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, wrapInternal(err)
	}
	for _, f := range items {
		if err := resolveImages(ctx, s.images, f.Product); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// Add marks productID as a favorite. Adding it again returns the existing
// record.
func (s *FavoriteService) Add(ctx context.Context, userID, productID int64) (*models.Favorite, error) {
	fav, err := dbx.InTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*models.Favorite, error) {
		product, err := s.repomanager.Products(tx).GetByID(ctx, productID)
		if err != nil {
			return nil, err
		}

		fav, err := s.repomanager.Favorites(tx).Add(ctx, userID, productID)
		if err != nil {
			return nil, err
		}
		fav.Product = product
		return fav, nil
	})
	if err != nil {
		return nil, wrapInternal(err)
	}

	if err := resolveImages(ctx, s.images, fav.Product); err != nil {
		return nil, err
	}
	return fav, nil
}

func (s *FavoriteService) Remove(ctx context.Context, userID, productID int64) error {
	if err := s.repomanager.Favorites(s.db).Delete(ctx, userID, productID); err != nil {
		return wrapInternal(err)
	}
	return nil
}
