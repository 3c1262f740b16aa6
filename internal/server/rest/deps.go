package rest

import (
	"context"

	"github.com/dmitrijs2005/smhome/internal/server/models"
	"github.com/dmitrijs2005/smhome/internal/server/services"
)

type UserService interface {
	Signup(ctx context.Context, email, password string) (*models.User, error)
	Signin(ctx context.Context, email, password string) (*services.AuthResult, error)
}

type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*models.User, error)
}

type CatalogService interface {
	List(ctx context.Context) ([]*models.Product, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
}

type CartService interface {
	List(ctx context.Context, userID int64) ([]*models.CartItem, error)
	Add(ctx context.Context, userID, productID int64, quantity int, color *models.ProductColor) (*models.CartItem, error)
	Remove(ctx context.Context, userID, productID int64) error
}

type FavoriteService interface {
	List(ctx context.Context, userID int64) ([]*models.Favorite, error)
	Add(ctx context.Context, userID, productID int64) (*models.Favorite, error)
	Remove(ctx context.Context, userID, productID int64) error
}

// Pinger reports whether the database is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}
