package cli

import (
	"context"
	"strconv"

	"github.com/dmitrijs2005/cateringplus/internal/client/models"
	"github.com/dmitrijs2005/cateringplus/internal/client/services"
)

func (a *App) Cart(ctx context.Context) error {
	snap, err := a.cart.Load(ctx)
	if err != nil {
		return err
	}
	a.printCart(snap)
	return nil
}

// Qty sets the quantity of a cart line given by line number or product id.
func (a *App) Qty(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("qty <n|id> <qty>")
	}
	qty, err := strconv.Atoi(args[1])
	if err != nil {
		return usage("quantity must be a number")
	}
	snap, err := a.cart.SetQuantity(ctx, a.resolveLine(args[0]), qty)
	if err != nil {
		return err
	}
	a.printCart(snap)
	return nil
}

func (a *App) Remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("remove <n|id>")
	}
	snap, err := a.cart.Remove(ctx, a.resolveLine(args[0]))
	if err != nil {
		return err
	}
	a.printCart(snap)
	return nil
}

func (a *App) resolveLine(arg string) string {
	lines := a.cart.Snapshot().Lines
	for _, l := range lines {
		if l.ProductID == arg {
			return arg
		}
	}
	if n, err := strconv.Atoi(arg); err == nil && n >= 1 && n <= len(lines) {
		return lines[n-1].ProductID
	}
	return arg
}

func (a *App) printCart(snap services.CartSnapshot) {
	if snap.Empty() {
		a.printf("Your cart is empty.\n")
		return
	}
	for i, l := range snap.Lines {
		busy := ""
		if a.cart.Busy(l.ProductID) {
			busy = " (updating)"
		}
		a.printf("%3d. %-30s %3d × %10s = %10s%s\n", i+1, lineName(l), l.Quantity,
			a.money.Format(l.Product.Price), a.money.Format(l.DisplayTotal()), busy)
	}

	c := snap.Calculation
	if c == nil {
		a.printf("Totals are unavailable right now.\n")
		return
	}
	a.printf("%-20s %10s\n", "Subtotal:", a.money.Format(c.Subtotal))
	if !c.Discount.IsZero() {
		a.printf("%-20s %10s\n", "Discount:", a.money.Format(c.Discount.Neg()))
	}
	if !c.TotalPaid.IsZero() {
		a.printf("%-20s %10s\n", "Paid:", a.money.Format(c.TotalPaid))
	}
	a.printf("%-20s %10s\n", "Total due:", a.money.Format(c.TotalDue))
	a.printf("%-20s %10s\n", "Grand total:", a.money.Format(c.GrandTotal))
}

func lineName(l models.CartLine) string {
	if l.Product.Name != "" {
		return l.Product.Name
	}
	return l.ProductID
}
