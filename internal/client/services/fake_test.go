package services

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/cateringplus/internal/client/client"
	"github.com/dmitrijs2005/cateringplus/internal/client/models"
	"github.com/shopspring/decimal"
)

// ---- fake api ----

// fakeAPI is an in-memory stand-in for the gateway. The cart is kept on the
// "server" side so services can only see it by fetching.
type fakeAPI struct {
	mu sync.Mutex

	LoginRet client.LoginResult
	LoginErr error

	Categories    []models.Category
	CategoriesErr error
	Products      map[string][]models.Product
	ProductsErr   error
	// productGates, when set for a category, block FetchProducts until closed.
	productGates map[string]chan struct{}

	cart        map[string]int
	cartOrder   []string
	prices      map[string]decimal.Decimal
	MutateErr   error
	FetchErr    error
	CalcErr     error
	mutateGate  chan struct{}
	mutateEnter chan string

	Addresses    []models.Address
	AddressesErr error
	CheckoutErr  error

	calls        map[string]int
	LastCheckout models.CheckoutRequest
	LastExtras   []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		Products:     map[string][]models.Product{},
		productGates: map[string]chan struct{}{},
		cart:         map[string]int{},
		prices: map[string]decimal.Decimal{
			"sku-1": decimal.RequireFromString("2.50"),
			"sku-2": decimal.RequireFromString("4.00"),
		},
		calls: map[string]int{},
	}
}

func (f *fakeAPI) count(op string) {
	f.mu.Lock()
	f.calls[op]++
	f.mu.Unlock()
}

func (f *fakeAPI) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeAPI) Login(ctx context.Context, creds models.Credentials) (client.LoginResult, error) {
	f.count("login")
	return f.LoginRet, f.LoginErr
}

func (f *fakeAPI) FetchCategories(ctx context.Context) ([]models.Category, error) {
	f.count("categories")
	return f.Categories, f.CategoriesErr
}

func (f *fakeAPI) FetchProducts(ctx context.Context, categoryID string) ([]models.Product, error) {
	f.count("products")
	f.mu.Lock()
	gate := f.productGates[categoryID]
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if f.ProductsErr != nil {
		return nil, f.ProductsErr
	}
	return f.Products[categoryID], nil
}

func (f *fakeAPI) gateProducts(categoryID string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.productGates[categoryID] = ch
	return ch
}

func (f *fakeAPI) MutateCart(ctx context.Context, productID string, quantity int, extras []string) error {
	f.count("mutate")
	if f.mutateEnter != nil {
		f.mutateEnter <- productID
	}
	if f.mutateGate != nil {
		<-f.mutateGate
	}
	if f.MutateErr != nil {
		return f.MutateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastExtras = extras
	if quantity == 0 {
		delete(f.cart, productID)
		f.cartOrder = removeID(f.cartOrder, productID)
		return nil
	}
	if _, ok := f.cart[productID]; !ok {
		f.cartOrder = append(f.cartOrder, productID)
	}
	f.cart[productID] = quantity
	return nil
}

func removeID(ids []string, id string) []string {
	out := ids[:0:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func (f *fakeAPI) FetchCart(ctx context.Context) ([]models.CartLine, error) {
	f.count("cart")
	if f.FetchErr != nil {
		return nil, f.FetchErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	lines := []models.CartLine{}
	for _, id := range f.cartOrder {
		price := f.prices[id]
		qty := f.cart[id]
		lines = append(lines, models.CartLine{
			ProductID: id,
			Quantity:  qty,
			Product:   models.Product{ID: id, Name: "Product " + id, Price: price},
			LineTotal: decimal.NewNullDecimal(price.Mul(decimal.NewFromInt(int64(qty)))),
		})
	}
	return lines, nil
}

func (f *fakeAPI) CalculateOrder(ctx context.Context) (models.OrderCalculation, error) {
	f.count("calc")
	if f.CalcErr != nil {
		return models.OrderCalculation{}, f.CalcErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	sub := decimal.Zero
	for id, qty := range f.cart {
		sub = sub.Add(f.prices[id].Mul(decimal.NewFromInt(int64(qty))))
	}
	return models.OrderCalculation{Subtotal: sub, TotalDue: sub, GrandTotal: sub}, nil
}

func (f *fakeAPI) FetchAddresses(ctx context.Context) ([]models.Address, error) {
	f.count("addresses")
	return f.Addresses, f.AddressesErr
}

func (f *fakeAPI) Checkout(ctx context.Context, req models.CheckoutRequest) error {
	f.count("checkout")
	if f.CheckoutErr != nil {
		return f.CheckoutErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastCheckout = req
	f.cart = map[string]int{}
	f.cartOrder = nil
	return nil
}

// ---- fake session repository ----

type memRepo struct {
	mu      sync.Mutex
	stored  *models.Session
	LoadErr error
	SaveErr error
	saves   int
}

func (r *memRepo) Load(ctx context.Context) (models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.LoadErr != nil {
		return models.Session{}, r.LoadErr
	}
	if r.stored == nil {
		return models.Session{}, nil
	}
	return *r.stored, nil
}

func (r *memRepo) Save(ctx context.Context, s models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.saves++
	r.stored = &s
	return nil
}

func (r *memRepo) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stored = nil
	return nil
}

var errBoom = errors.New("boom")
