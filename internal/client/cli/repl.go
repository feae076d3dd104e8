package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn and printFn are test seams for user-facing output. In tests,
// replace them with stubs.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Categories(ctx context.Context) error
	Select(ctx context.Context, args []string) error
	Products(ctx context.Context) error
	Add(ctx context.Context, args []string) error
	Cart(ctx context.Context) error
	Qty(ctx context.Context, args []string) error
	Remove(ctx context.Context, args []string) error
	Addresses(ctx context.Context) error
	Checkout(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: login, whoami, help, exit"
	helpLoggedIn  = "Available commands: (c)ategories, select <n|id>, (p)roducts, add <n|id> [qty], cart, " +
		"qty <n|id> <qty>, (rm) remove <n|id>, addresses, checkout, whoami, logout, help, exit"
)

// runREPL starts a simple read–eval–print loop for the catering CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current user (from statusFn) and accepts commands:
//
//	Always:
//	  - help                   — show available commands
//	  - whoami                 — show the current session
//	  - exit | quit            — leave the program
//
//	Not logged in:
//	  - login                  — authenticate
//
//	Logged in:
//	  - categories | c         — list categories
//	  - select <n|id>          — choose a category and list its products
//	  - products | p           — list products of the selected category
//	  - add <n|id> [qty]       — add a product to the cart (default 1)
//	  - cart                   — show the cart with totals
//	  - qty <n|id> <qty>       — set the quantity of a cart line
//	  - remove | rm <n|id>     — remove a cart line
//	  - addresses              — list delivery addresses
//	  - checkout               — place the order
//	  - logout                 — log out
//
// A command error is printed as a single line and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if s := statusFn(); s != "" {
			printFn(fmt.Sprintf("catering (%s)> ", s))
		} else {
			printFn("catering> ")
		}

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if needsLogin(cmd) && !a.isLoggedIn() {
			printlnFn("Please log in first.")
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "login":
			report(a.Login(ctx))

		case "whoami":
			report(a.WhoAmI(ctx))

		case "logout":
			report(a.Logout(ctx))

		case "c", "categories":
			report(a.Categories(ctx))

		case "select":
			report(a.Select(ctx, args))

		case "p", "products":
			report(a.Products(ctx))

		case "add":
			report(a.Add(ctx, args))

		case "cart":
			report(a.Cart(ctx))

		case "qty":
			report(a.Qty(ctx, args))

		case "rm", "remove":
			report(a.Remove(ctx, args))

		case "addresses":
			report(a.Addresses(ctx))

		case "checkout":
			report(a.Checkout(ctx))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

// needsLogin reports whether cmd is gated on a session. Unknown commands are
// not, so they reach the "Unknown command" reply in any state.
func needsLogin(cmd string) bool {
	switch cmd {
	case "c", "categories", "select", "p", "products", "add", "cart",
		"qty", "rm", "remove", "addresses", "checkout", "logout":
		return true
	default:
		return false
	}
}

// report prints err as one line; nil is silent.
func report(err error) {
	if err != nil {
		printlnFn("Error: " + describe(err))
	}
}
