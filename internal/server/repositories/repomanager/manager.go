package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/smhome/internal/dbx"
	"github.com/dmitrijs2005/smhome/internal/server/repositories/cartitems"
	"github.com/dmitrijs2005/smhome/internal/server/repositories/favorites"
	"github.com/dmitrijs2005/smhome/internal/server/repositories/products"
	"github.com/dmitrijs2005/smhome/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DB handle or an open
// transaction, so services can choose the scope per call.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Products(db dbx.DBTX) products.Repository
	CartItems(db dbx.DBTX) cartitems.Repository
	Favorites(db dbx.DBTX) favorites.Repository
}
