package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/smhome/internal/client/api"
	"github.com/dmitrijs2005/smhome/internal/client/config"
	"github.com/dmitrijs2005/smhome/internal/client/models"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// Shop is the API surface the shell drives. *api.Client satisfies it.
type Shop interface {
	Ping(ctx context.Context) error
	Token() string
	SetToken(t string)
	Signup(ctx context.Context, email, password string) (*models.User, error)
	Signin(ctx context.Context, email, password string) (*models.Token, error)
	Products(ctx context.Context) ([]models.Product, error)
	Product(ctx context.Context, id int64) (*models.Product, error)
	Cart(ctx context.Context) ([]models.CartItem, error)
	AddToCart(ctx context.Context, productID int64, quantity int, color *models.ProductColor) (*models.CartItem, error)
	RemoveFromCart(ctx context.Context, productID int64) error
	Favorites(ctx context.Context) ([]models.Favorite, error)
	AddFavorite(ctx context.Context, productID int64) (*models.Favorite, error)
	RemoveFavorite(ctx context.Context, productID int64) error
}

type App struct {
	config *config.Config
	shop   Shop
	reader *bufio.Reader
	out    io.Writer

	mu       sync.Mutex
	userName string
	mode     Mode
}

func NewApp(c *config.Config) (*App, error) {
	return newApp(c, api.New(c.ServerURL, c.RequestTimeout), os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, shop Shop, in io.Reader, out io.Writer) *App {
	return &App{config: c, shop: shop, reader: bufio.NewReader(in), out: out}
}

func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	printlnFn("Welcome to SMHome CLI (type 'help' for commands)")

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}

func (a *App) isLoggedIn() bool {
	return a.shop.Token() != ""
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.mode = mode
}

func (a *App) getStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	parts := make([]string, 0, 2)
	if a.userName != "" {
		parts = append(parts, a.userName)
	}
	if a.mode != "" {
		parts = append(parts, string(a.mode))
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// StartOnlineStatusWatcher probes the server every interval and updates
// the mode shown in the prompt.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	check := func() {
		pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := a.shop.Ping(pctx); err != nil {
			a.setMode(ModeOffline)
		} else {
			a.setMode(ModeOnline)
		}
	}

	check()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			check()
		case <-ctx.Done():
			return
		}
	}
}
