// Package api is a thin HTTP client for the SMHome shop API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/smhome/internal/client/models"
	"github.com/dmitrijs2005/smhome/internal/common"
)

// Error is a non-2xx answer from the server. It unwraps to the matching
// common sentinel so callers can use errors.Is.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Detail)
}

func (e *Error) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return common.ErrorUnauthorized
	case http.StatusNotFound:
		return common.ErrorNotFound
	case http.StatusUnprocessableEntity:
		return common.ErrValidation
	case http.StatusInternalServerError:
		return common.ErrorInternal
	}
	return nil
}

// Client talks to one server and remembers the bearer token from the last
// successful signin.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) SetToken(t string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = t
}

func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}

func (c *Client) Signup(ctx context.Context, email, password string) (*models.User, error) {
	var u models.User
	err := c.do(ctx, http.MethodPost, "/auth/signup", map[string]string{"email": email, "password": password}, &u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Signin authenticates and keeps the returned token for later calls.
func (c *Client) Signin(ctx context.Context, email, password string) (*models.Token, error) {
	var t models.Token
	err := c.do(ctx, http.MethodPost, "/auth/signin", map[string]string{"email": email, "password": password}, &t)
	if err != nil {
		return nil, err
	}
	c.SetToken(t.AccessToken)
	return &t, nil
}

func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Product(ctx context.Context, id int64) (*models.Product, error) {
	var p models.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) Cart(ctx context.Context) ([]models.CartItem, error) {
	var out []models.CartItem
	if err := c.do(ctx, http.MethodGet, "/cart", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type addToCartRequest struct {
	ProductID     int64                `json:"product_id"`
	Quantity      int                  `json:"quantity"`
	SelectedColor *models.ProductColor `json:"selected_color,omitempty"`
}

func (c *Client) AddToCart(ctx context.Context, productID int64, quantity int, color *models.ProductColor) (*models.CartItem, error) {
	var it models.CartItem
	req := addToCartRequest{ProductID: productID, Quantity: quantity, SelectedColor: color}
	if err := c.do(ctx, http.MethodPost, "/cart", req, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

func (c *Client) RemoveFromCart(ctx context.Context, productID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/cart/%d", productID), nil, nil)
}

func (c *Client) Favorites(ctx context.Context) ([]models.Favorite, error) {
	var out []models.Favorite
	if err := c.do(ctx, http.MethodGet, "/favorites", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddFavorite(ctx context.Context, productID int64) (*models.Favorite, error) {
	var f models.Favorite
	if err := c.do(ctx, http.MethodPost, "/favorites", map[string]int64{"product_id": productID}, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (c *Client) RemoveFavorite(ctx context.Context, productID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/favorites/%d", productID), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.Token(); tok != "" {
		req.Header.Set("Authorization", common.BearerScheme+" "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb struct {
			Detail any `json:"detail"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		detail, _ := eb.Detail.(string)
		return &Error{Status: resp.StatusCode, Detail: detail}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
