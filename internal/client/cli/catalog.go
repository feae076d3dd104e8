package cli

import (
	"context"
	"errors"
	"strconv"

	"github.com/dmitrijs2005/cateringplus/internal/client/models"
	"github.com/dmitrijs2005/cateringplus/internal/client/services"
)

func (a *App) Categories(ctx context.Context) error {
	cats, err := a.catalog.LoadCategories(ctx)
	if err != nil {
		return err
	}
	if len(cats) == 0 {
		a.printf("No categories available.\n")
		return nil
	}
	for i, c := range cats {
		a.printf("%3d. %s\n", i+1, c.Name)
	}
	return nil
}

// Select chooses a category by list number or id and prints its products.
// Categories are loaded first when nothing has been listed yet.
func (a *App) Select(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("select <n|id>")
	}

	snap := a.catalog.Snapshot()
	if len(snap.Categories) == 0 {
		if _, err := a.catalog.LoadCategories(ctx); err != nil {
			return err
		}
		snap = a.catalog.Snapshot()
	}

	id := resolveCategory(snap.Categories, args[0])
	products, err := a.catalog.SelectCategory(ctx, id)
	if errors.Is(err, services.ErrStaleSelection) {
		return nil
	}
	if err != nil {
		return err
	}
	a.printProducts(products)
	return nil
}

func (a *App) Products(ctx context.Context) error {
	snap := a.catalog.Snapshot()
	switch {
	case snap.Err != nil:
		return snap.Err
	case snap.State != services.CatalogProductsReady:
		a.printf("No category selected, use 'select <n|id>'.\n")
		return nil
	}
	a.printProducts(snap.Products)
	return nil
}

// Add puts qty more of a product into the cart. The product is given by its
// number in the last product list or by id.
func (a *App) Add(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return usage("add <n|id> [qty]")
	}
	qty := 1
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			return usage("quantity must be a positive number")
		}
		qty = n
	}

	productID := resolveProduct(a.catalog.Snapshot().Products, args[0])

	cart := a.cart.Snapshot()
	if !cart.Loaded {
		var err error
		if cart, err = a.cart.Load(ctx); err != nil {
			return err
		}
	}
	current := 0
	if line, ok := cart.Line(productID); ok {
		current = line.Quantity
	}

	cart, err := a.cart.SetQuantity(ctx, productID, current+qty)
	if err != nil {
		return err
	}
	if line, ok := cart.Line(productID); ok {
		a.printf("Added. %s × %d in cart.\n", line.Product.Name, line.Quantity)
	} else {
		a.printf("Added.\n")
	}
	return nil
}

func (a *App) printProducts(products []models.Product) {
	if len(products) == 0 {
		a.printf("No products in this category.\n")
		return
	}
	for i, p := range products {
		a.printf("%3d. %-30s %10s  [%s]\n", i+1, p.Name, a.money.Format(p.Price), p.ID)
		if p.Specification != "" {
			a.printf("     %s\n", p.Specification)
		}
		if ph, ok := p.MainPhoto(); ok {
			a.printf("     photo: %s\n", ph.URL)
		}
	}
}

// resolveCategory maps user input to a category id: an exact id match wins,
// then a 1-based list number. Anything else is passed through so the catalog
// can reject it.
func resolveCategory(cats []models.Category, arg string) string {
	for _, c := range cats {
		if c.ID == arg {
			return c.ID
		}
	}
	if n, err := strconv.Atoi(arg); err == nil && n >= 1 && n <= len(cats) {
		return cats[n-1].ID
	}
	return arg
}

func resolveProduct(products []models.Product, arg string) string {
	for _, p := range products {
		if p.ID == arg {
			return p.ID
		}
	}
	if n, err := strconv.Atoi(arg); err == nil && n >= 1 && n <= len(products) {
		return products[n-1].ID
	}
	return arg
}
