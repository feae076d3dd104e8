package client

import (
	"context"

	"github.com/dmitrijs2005/cateringplus/internal/client/models"
)

// LoginResult is what the backend returns for a successful login.
// UserID and UserName may be empty when the backend omits them.
type LoginResult struct {
	Token    string
	UserID   string
	UserName string
}

type Client interface {
	Login(ctx context.Context, creds models.Credentials) (LoginResult, error)
	FetchCategories(ctx context.Context) ([]models.Category, error)
	FetchProducts(ctx context.Context, categoryID string) ([]models.Product, error)
	// MutateCart sets the absolute quantity of a product; 0 removes it.
	MutateCart(ctx context.Context, productID string, quantity int, extras []string) error
	FetchCart(ctx context.Context) ([]models.CartLine, error)
	CalculateOrder(ctx context.Context) (models.OrderCalculation, error)
	Checkout(ctx context.Context, req models.CheckoutRequest) error
	FetchAddresses(ctx context.Context) ([]models.Address, error)
}

// TokenSource yields the bearer token to attach to the next request.
// An empty token means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }
