package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/smhome/internal/client/models"
	"github.com/dmitrijs2005/smhome/internal/shared"
)

// Prompt indirections, replaced in tests.
var (
	getSimpleText  = GetSimpleText
	getPassword    = GetPassword
	getNewPassword = GetNewPassword
)

// readCredentials prompts for an email and a password. A new account gets
// the password asked twice.
func (a *App) readCredentials(newAccount bool) (string, string, error) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return "", "", err
	}

	var password []byte
	if newAccount {
		password, err = getNewPassword(a.out)
	} else {
		password, err = getPassword(a.out, "Enter password")
	}
	if err != nil {
		return "", "", err
	}
	defer shared.WipeByteArray(password)
	return email, string(password), nil
}

func (a *App) Signup(ctx context.Context) error {
	email, password, err := a.readCredentials(true)
	if err != nil {
		return err
	}

	u, err := a.shop.Signup(ctx, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered %s (id %d). Now run 'signin'.\n", u.Username, u.ID)
	return nil
}

func (a *App) Signin(ctx context.Context) error {
	email, password, err := a.readCredentials(false)
	if err != nil {
		return err
	}

	tok, err := a.shop.Signin(ctx, email, password)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.userName = tok.User.Username
	a.mu.Unlock()

	fmt.Fprintf(a.out, "Signed in as %s\n", tok.User.Email)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.shop.SetToken("")
	a.mu.Lock()
	a.userName = ""
	a.mu.Unlock()
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

func (a *App) ListProducts(ctx context.Context) error {
	ps, err := a.shop.Products(ctx)
	if err != nil {
		return err
	}
	for _, p := range ps {
		a.printProductLine(p)
	}
	return nil
}

func (a *App) ShowProduct(ctx context.Context, args []string) error {
	id, err := parseID(args, "product <id>")
	if err != nil {
		return err
	}

	p, err := a.shop.Product(ctx, id)
	if err != nil {
		return err
	}

	a.printProductLine(*p)
	fmt.Fprintf(a.out, "  %s\n  category: %s\n", p.Description, p.Category)
	for _, c := range p.Colors {
		fmt.Fprintf(a.out, "  color %s (%s), %d image(s)\n", c.Name, c.Hex, len(c.Images))
	}
	return nil
}

func (a *App) ShowCart(ctx context.Context) error {
	items, err := a.shop.Cart(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "Cart is empty")
		return nil
	}

	var total float64
	for _, it := range items {
		line := it.Product.FinalPrice() * float64(it.Quantity)
		total += line
		color := ""
		if it.SelectedColor != nil {
			color = " [" + it.SelectedColor.Name + "]"
		}
		fmt.Fprintf(a.out, "#%d %s%s x%d = %.2f\n", it.Product.ID, it.Product.Name, color, it.Quantity, line)
	}
	fmt.Fprintf(a.out, "Total: %.2f\n", total)
	return nil
}

func (a *App) AddToCart(ctx context.Context, args []string) error {
	id, err := parseID(args, "cart add <id> [qty]")
	if err != nil {
		return err
	}
	qty := 1
	if len(args) > 1 {
		qty, err = strconv.Atoi(args[1])
		if err != nil || qty < 1 {
			return usageError("cart add <id> [qty]")
		}
	}

	it, err := a.shop.AddToCart(ctx, id, qty, nil)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s now x%d in cart\n", it.Product.Name, it.Quantity)
	return nil
}

func (a *App) RemoveFromCart(ctx context.Context, args []string) error {
	id, err := parseID(args, "cart rm <id>")
	if err != nil {
		return err
	}
	if err := a.shop.RemoveFromCart(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Item removed")
	return nil
}

func (a *App) ShowFavorites(ctx context.Context) error {
	favs, err := a.shop.Favorites(ctx)
	if err != nil {
		return err
	}
	if len(favs) == 0 {
		fmt.Fprintln(a.out, "No favorites yet")
		return nil
	}
	for _, f := range favs {
		a.printProductLine(f.Product)
	}
	return nil
}

func (a *App) AddFavorite(ctx context.Context, args []string) error {
	id, err := parseID(args, "fav add <id>")
	if err != nil {
		return err
	}
	f, err := a.shop.AddFavorite(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s added to favorites\n", f.Product.Name)
	return nil
}

func (a *App) RemoveFavorite(ctx context.Context, args []string) error {
	id, err := parseID(args, "fav rm <id>")
	if err != nil {
		return err
	}
	if err := a.shop.RemoveFavorite(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Favorite removed")
	return nil
}

func (a *App) printProductLine(p models.Product) {
	if p.DiscountPercent != nil {
		fmt.Fprintf(a.out, "#%d %s  %.2f (-%d%%, was %.2f)\n", p.ID, p.Name, p.FinalPrice(), *p.DiscountPercent, p.Price)
		return
	}
	fmt.Fprintf(a.out, "#%d %s  %.2f\n", p.ID, p.Name, p.Price)
}

func parseID(args []string, usage string) (int64, error) {
	if len(args) == 0 {
		return 0, usageError(usage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, usageError(usage)
	}
	return id, nil
}
