package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/smhome/internal/common"
	"github.com/dmitrijs2005/smhome/internal/dbx"
	"github.com/dmitrijs2005/smhome/internal/server/models"
	"github.com/dmitrijs2005/smhome/internal/server/repositories/cartitems"
	"github.com/dmitrijs2005/smhome/internal/server/repositories/favorites"
	"github.com/dmitrijs2005/smhome/internal/server/repositories/products"
	"github.com/dmitrijs2005/smhome/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// store is an in-memory stand-in for the Postgres schema, shared by the
// fake repositories below.
type store struct {
	mu sync.Mutex

	users    map[string]*models.User
	products map[int64]*models.Product
	cart     []*models.CartItem
	favs     []*models.Favorite
	nextID   int64

	err error // returned by every call when set
}

func newStore(ps ...*models.Product) *store {
	s := &store{
		users:    map[string]*models.User{},
		products: map[int64]*models.Product{},
	}
	for _, p := range ps {
		s.products[p.ID] = p
	}
	return s
}

func (s *store) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *store) product(id int64) *models.Product {
	p := *s.products[id]
	return &p
}

type fakeUsers struct{ s *store }

func (r fakeUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	if _, ok := r.s.users[u.Email]; ok {
		return nil, common.ErrorConflict
	}
	c := *u
	c.ID = r.s.id()
	r.s.users[u.Email] = &c
	out := c
	return &out, nil
}

func (r fakeUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	u, ok := r.s.users[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *u
	return &out, nil
}

type fakeProducts struct{ s *store }

func (r fakeProducts) List(ctx context.Context) ([]*models.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	out := make([]*models.Product, 0, len(r.s.products))
	for id := range r.s.products {
		out = append(out, r.s.product(id))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeProducts) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	if _, ok := r.s.products[id]; !ok {
		return nil, common.ErrorNotFound
	}
	return r.s.product(id), nil
}

type fakeCart struct{ s *store }

func (r fakeCart) ListByUser(ctx context.Context, userID int64) ([]*models.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	out := []*models.CartItem{}
	for _, it := range r.s.cart {
		if it.UserID == userID {
			c := *it
			c.Product = r.s.product(it.ProductID)
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r fakeCart) AddOrIncrement(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	for _, it := range r.s.cart {
		if it.UserID == item.UserID && it.ProductID == item.ProductID {
			if it.Quantity > MaxCartQuantity-item.Quantity {
				return nil, fmt.Errorf("%w: cart quantity is too large", common.ErrValidation)
			}
			it.Quantity += item.Quantity
			c := *it
			return &c, nil
		}
	}
	c := *item
	c.ID = r.s.id()
	r.s.cart = append(r.s.cart, &c)
	out := c
	return &out, nil
}

func (r fakeCart) Delete(ctx context.Context, userID, productID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return r.s.err
	}
	kept := r.s.cart[:0]
	for _, it := range r.s.cart {
		if it.UserID != userID || it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	r.s.cart = kept
	return nil
}

type fakeFavorites struct{ s *store }

func (r fakeFavorites) ListByUser(ctx context.Context, userID int64) ([]*models.Favorite, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	out := []*models.Favorite{}
	for _, f := range r.s.favs {
		if f.UserID == userID {
			c := *f
			c.Product = r.s.product(f.ProductID)
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r fakeFavorites) Add(ctx context.Context, userID, productID int64) (*models.Favorite, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	for _, f := range r.s.favs {
		if f.UserID == userID && f.ProductID == productID {
			c := *f
			return &c, nil
		}
	}
	f := &models.Favorite{ID: r.s.id(), UserID: userID, ProductID: productID}
	r.s.favs = append(r.s.favs, f)
	c := *f
	return &c, nil
}

func (r fakeFavorites) Delete(ctx context.Context, userID, productID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return r.s.err
	}
	kept := r.s.favs[:0]
	for _, f := range r.s.favs {
		if f.UserID != userID || f.ProductID != productID {
			kept = append(kept, f)
		}
	}
	r.s.favs = kept
	return nil
}

type fakeRepoManager struct{ s *store }

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository              { return fakeUsers{m.s} }
func (m *fakeRepoManager) Products(dbx.DBTX) products.Repository        { return fakeProducts{m.s} }
func (m *fakeRepoManager) CartItems(dbx.DBTX) cartitems.Repository      { return fakeCart{m.s} }
func (m *fakeRepoManager) Favorites(dbx.DBTX) favorites.Repository      { return fakeFavorites{m.s} }

// prefixResolver rewrites relative references under a fixed base.
type prefixResolver struct {
	base string
	err  error
}

func (r prefixResolver) ResolveURL(ctx context.Context, ref string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref, nil
	}
	return r.base + ref, nil
}

var errBoom = errors.New("boom")

func sofa() *models.Product {
	return &models.Product{
		ID:       1,
		Name:     "Sofa",
		Price:    100,
		Image:    "sofa.jpg",
		Category: "sofas",
		Colors: models.ProductColors{
			{Name: "Gray", Hex: "#808080", Images: []string{"sofa-gray.jpg"}},
		},
	}
}

func chair() *models.Product {
	d := 10
	return &models.Product{
		ID:              2,
		Name:            "Chair",
		Price:           50,
		Image:           "https://cdn.example.com/chair.jpg",
		Category:        "chairs",
		DiscountPercent: &d,
	}
}
