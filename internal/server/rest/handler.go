// Package rest serves the shop's JSON API over HTTP with chi.
package rest

import (
	"github.com/dmitrijs2005/smhome/internal/logging"
	"github.com/dmitrijs2005/smhome/internal/server/metrics"
)

// Handler carries the services behind every endpoint.
type Handler struct {
	users     UserService
	sessions  SessionResolver
	catalog   CatalogService
	cart      CartService
	favorites FavoriteService
	db        Pinger
	metrics   *metrics.HTTP
	logger    logging.Logger
}
