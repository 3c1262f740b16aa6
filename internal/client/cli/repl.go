package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/smhome/internal/common"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Signin(ctx context.Context) error
	Logout(ctx context.Context) error
	ListProducts(ctx context.Context) error
	ShowProduct(ctx context.Context, args []string) error
	ShowCart(ctx context.Context) error
	AddToCart(ctx context.Context, args []string) error
	RemoveFromCart(ctx context.Context, args []string) error
	ShowFavorites(ctx context.Context) error
	AddFavorite(ctx context.Context, args []string) error
	RemoveFavorite(ctx context.Context, args []string) error
}

const (
	helpAnonymous = "Available commands: signup, signin, products, product <id>, help, exit"
	helpSignedIn  = "Available commands: products, product <id>, cart, cart add <id> [qty], cart rm <id>, favs, fav add <id>, fav rm <id>, logout, help, exit"
)

// runREPL reads commands from scanner until EOF or "exit"/"quit" and
// dispatches them to a. Command errors are reported and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("smhome %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpAnonymous)
			}

		case "signup":
			err = a.Signup(ctx)

		case "signin", "login":
			err = a.Signin(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "products":
			err = a.ListProducts(ctx)

		case "product":
			err = a.ShowProduct(ctx, args)

		case "cart":
			switch {
			case len(args) == 0:
				err = a.ShowCart(ctx)
			case args[0] == "add":
				err = a.AddToCart(ctx, args[1:])
			case args[0] == "rm":
				err = a.RemoveFromCart(ctx, args[1:])
			default:
				printlnFn("Usage: cart | cart add <id> [qty] | cart rm <id>")
			}

		case "favs":
			err = a.ShowFavorites(ctx)

		case "fav":
			switch {
			case len(args) > 0 && args[0] == "add":
				err = a.AddFavorite(ctx, args[1:])
			case len(args) > 0 && args[0] == "rm":
				err = a.RemoveFavorite(ctx, args[1:])
			default:
				printlnFn("Usage: fav add <id> | fav rm <id>")
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn(describe(err))
		}
	}
}

func describe(err error) string {
	var usage usageError
	switch {
	case errors.As(err, &usage):
		return "Usage: " + string(usage)
	case errors.Is(err, common.ErrorUnauthorized):
		return "Not signed in or session expired; use 'signin'."
	default:
		return "Error: " + err.Error()
	}
}

type usageError string

func (e usageError) Error() string { return "usage: " + string(e) }
