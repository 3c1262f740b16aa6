package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/smhome/internal/common"
	"github.com/dmitrijs2005/smhome/internal/logging"
	"github.com/dmitrijs2005/smhome/internal/server/auth"
	"github.com/dmitrijs2005/smhome/internal/server/metrics"
	"github.com/dmitrijs2005/smhome/internal/server/models"
	"github.com/dmitrijs2005/smhome/internal/server/services"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (l nopLogger) With(...any) logging.Logger          { return l }

// shop is an in-memory implementation of every service the router needs.
type shop struct {
	mu       sync.Mutex
	tokens   *auth.TokenIssuer
	users    map[string]*models.User
	pw       map[string]string
	products map[int64]*models.Product
	cart     map[int64][]*models.CartItem
	favs     map[int64][]*models.Favorite
	seq      int64
	failAll  error
}

func newShop() *shop {
	d := 15
	return &shop{
		tokens: auth.NewTokenIssuer([]byte("test-secret"), time.Hour),
		users:  map[string]*models.User{},
		pw:     map[string]string{},
		products: map[int64]*models.Product{
			1: {ID: 1, Name: "Sofa", Price: 599.99, Image: "sofa.jpg", Category: "Living Room",
				Colors: models.ProductColors{{Name: "White", Hex: "#ffffff", Images: []string{"w.jpg"}}}},
			2: {ID: 2, Name: "Table", Price: 299.99, Image: "table.jpg", Category: "Kitchen", DiscountPercent: &d},
		},
		cart: map[int64][]*models.CartItem{},
		favs: map[int64][]*models.Favorite{},
	}
}

func (s *shop) next() int64 { s.seq++; return s.seq }

func (s *shop) Signup(ctx context.Context, email, password string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll != nil {
		return nil, s.failAll
	}
	if email == "" || password == "" {
		return nil, common.ErrValidation
	}
	if _, ok := s.users[email]; ok {
		return nil, common.ErrEmailTaken
	}
	name, _, _ := strings.Cut(email, "@")
	u := &models.User{ID: s.next(), Email: email, Username: name}
	s.users[email] = u
	s.pw[email] = password
	return u, nil
}

func (s *shop) Signin(ctx context.Context, email, password string) (*services.AuthResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok || s.pw[email] != password {
		return nil, common.ErrInvalidCredentials
	}
	tok, err := s.tokens.Issue(email)
	if err != nil {
		return nil, err
	}
	return &services.AuthResult{AccessToken: tok, TokenType: common.TokenTypeBearer, User: u}, nil
}

func (s *shop) Resolve(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, errors.Join(common.ErrorUnauthorized, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[claims.Subject]
	if !ok {
		return nil, errors.Join(common.ErrorUnauthorized, common.ErrUnknownUser)
	}
	return u, nil
}

func (s *shop) List(ctx context.Context) ([]*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll != nil {
		return nil, s.failAll
	}
	out := []*models.Product{}
	for id := int64(1); id <= int64(len(s.products)); id++ {
		out = append(out, s.products[id])
	}
	return out, nil
}

func (s *shop) Get(ctx context.Context, id int64) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

// cartService and favoriteService adapt shop to the two interfaces whose
// method names collide with the catalog.
type cartService struct{ *shop }

func (c cartService) List(ctx context.Context, userID int64) ([]*models.CartItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*models.CartItem{}, c.cart[userID]...), nil
}

func (c cartService) Add(ctx context.Context, userID, productID int64, quantity int, color *models.ProductColor) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, errors.Join(common.ErrValidation, errors.New("quantity must be at least 1"))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[productID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	for _, it := range c.cart[userID] {
		if it.ProductID == productID {
			it.Quantity += quantity
			return it, nil
		}
	}
	it := &models.CartItem{ID: c.next(), UserID: userID, ProductID: productID, Quantity: quantity, SelectedColor: color, Product: p}
	c.cart[userID] = append(c.cart[userID], it)
	return it, nil
}

func (c cartService) Remove(ctx context.Context, userID, productID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var kept []*models.CartItem
	for _, it := range c.cart[userID] {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	c.cart[userID] = kept
	return nil
}

type favoriteService struct{ *shop }

func (f favoriteService) List(ctx context.Context, userID int64) ([]*models.Favorite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*models.Favorite{}, f.favs[userID]...), nil
}

func (f favoriteService) Add(ctx context.Context, userID, productID int64) (*models.Favorite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[productID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	for _, fav := range f.favs[userID] {
		if fav.ProductID == productID {
			return fav, nil
		}
	}
	fav := &models.Favorite{ID: f.next(), UserID: userID, ProductID: productID, Product: p}
	f.favs[userID] = append(f.favs[userID], fav)
	return fav, nil
}

func (f favoriteService) Remove(ctx context.Context, userID, productID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	var kept []*models.Favorite
	for _, fav := range f.favs[userID] {
		if fav.ProductID != productID {
			kept = append(kept, fav)
		}
	}
	f.favs[userID] = kept
	return nil
}

type pinger struct{ err error }

func (p pinger) PingContext(context.Context) error { return p.err }

func newTestServer(t *testing.T, s *shop) (*httptest.Server, *metrics.HTTP) {
	t.Helper()
	m := metrics.NewHTTP()
	h := NewRouter(Options{
		Users:          s,
		Sessions:       s,
		Catalog:        s,
		Cart:           cartService{s},
		Favorites:      favoriteService{s},
		DB:             pinger{},
		Metrics:        m,
		Logger:         nopLogger{},
		CORSOrigins:    []string{"http://localhost:5173"},
		RequestTimeout: 5 * time.Second,
	})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv, m
}

// do sends a request and decodes the JSON response into out when non-nil.
func do(t *testing.T, srv *httptest.Server, method, path, token, body string, out any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, rd)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func signupAndSignin(t *testing.T, srv *httptest.Server, email, pw string) string {
	t.Helper()
	body := `{"email":"` + email + `","password":"` + pw + `"}`
	resp := do(t, srv, http.MethodPost, "/auth/signup", "", body, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tok tokenResponse
	resp = do(t, srv, http.MethodPost, "/auth/signin", "", body, &tok)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return tok.AccessToken
}

func newHTTPTestServer(t *testing.T, h http.Handler) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}
