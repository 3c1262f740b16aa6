package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/smhome/internal/server/models"
	"github.com/dmitrijs2005/smhome/internal/server/repositories/repomanager"
)

// CatalogService serves the read-only product catalog.
type CatalogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	images      ImageResolver
}

// NewCatalogService constructs a CatalogService. images may be nil, in which
// case stored image references are returned as is.
func NewCatalogService(db *sql.DB, m repomanager.RepositoryManager, images ImageResolver) *CatalogService {
	return &CatalogService{db: db, repomanager: m, images: images}
}

// List returns all products ordered by id.
func (s *CatalogService) List(ctx context.Context) ([]*models.Product, error) {
	items, err := s.repomanager.Products(s.db).List(ctx)
	if err != nil {
		return nil, wrapInternal(err)
	}
	for _, p := range items {
		if err := resolveImages(ctx, s.images, p); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// Get returns a single product or common.ErrorNotFound.
func (s *CatalogService) Get(ctx context.Context, id int64) (*models.Product, error) {
	p, err := s.repomanager.Products(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, wrapInternal(err)
	}
	if err := resolveImages(ctx, s.images, p); err != nil {
		return nil, err
	}
	return p, nil
}

// resolveImages rewrites the main image and every color gallery image of p
// through r.
func resolveImages(ctx context.Context, r ImageResolver, p *models.Product) error {
	if r == nil || p == nil {
		return nil
	}

	main, err := r.ResolveURL(ctx, p.Image)
	if err != nil {
		return fmt.Errorf("resolve image for product %d: %w", p.ID, wrapInternal(err))
	}
	p.Image = main

	colors := make(models.ProductColors, len(p.Colors))
	for i, c := range p.Colors {
		imgs := make([]string, len(c.Images))
		for j, ref := range c.Images {
			u, err := r.ResolveURL(ctx, ref)
			if err != nil {
				return fmt.Errorf("resolve image for product %d: %w", p.ID, wrapInternal(err))
			}
			imgs[j] = u
		}
		c.Images = imgs
		colors[i] = c
	}
	if p.Colors != nil {
		p.Colors = colors
	}
	return nil
}
