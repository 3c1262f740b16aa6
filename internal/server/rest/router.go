package rest

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/smhome/internal/logging"
	"github.com/dmitrijs2005/smhome/internal/server/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Options wires the router. Metrics and DB may be nil.
type Options struct {
	Users          UserService
	Sessions       SessionResolver
	Catalog        CatalogService
	Cart           CartService
	Favorites      FavoriteService
	DB             Pinger
	Metrics        *metrics.HTTP
	Logger         logging.Logger
	CORSOrigins    []string
	RequestTimeout time.Duration
}

// NewRouter builds the HTTP API.
func NewRouter(o Options) http.Handler {
	h := &Handler{
		users:     o.Users,
		sessions:  o.Sessions,
		catalog:   o.Catalog,
		cart:      o.Cart,
		favorites: o.Favorites,
		db:        o.DB,
		metrics:   o.Metrics,
		logger:    o.Logger.With("module", "http"),
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(h.accessLog)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   o.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", h.healthz)
	r.Get("/readyz", h.readyz)
	if o.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", o.Metrics.Handler())
	}

	r.Group(func(r chi.Router) {
		if o.RequestTimeout > 0 {
			r.Use(middleware.Timeout(o.RequestTimeout))
		}

		r.Post("/auth/signup", h.signup)
		r.Post("/auth/signin", h.signin)

		r.Get("/products", h.listProducts)
		r.Get("/products/{id}", h.getProduct)

		r.Group(func(r chi.Router) {
			r.Use(h.authenticate)

			r.Get("/cart", h.listCart)
			r.Post("/cart", h.addToCart)
			r.Delete("/cart/{product_id}", h.removeFromCart)

			r.Get("/favorites", h.listFavorites)
			r.Post("/favorites", h.addFavorite)
			r.Delete("/favorites/{product_id}", h.removeFavorite)
		})
	})

	return r
}
