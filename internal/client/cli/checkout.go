package cli

import (
	"context"

	"github.com/dmitrijs2005/cateringplus/internal/client/services"
)

func (a *App) Addresses(ctx context.Context) error {
	addrs, err := a.checkout.Addresses(ctx)
	if err != nil {
		return err
	}
	if len(addrs) == 0 {
		a.printf("No saved addresses; delivery notes will be used.\n")
		return nil
	}
	for i, ad := range addrs {
		def := ""
		if i == 0 {
			def = " (default)"
		}
		a.printf("%3d. %s: %s [%s]%s\n", i+1, ad.Title, ad.Details, ad.ID, def)
	}
	return nil
}

// Checkout refreshes the cart, collects delivery notes, an optional discount
// code and an optional address id, and places the order.
func (a *App) Checkout(ctx context.Context) error {
	snap, err := a.cart.Load(ctx)
	if err != nil {
		return err
	}
	if snap.Empty() {
		a.printf("Your cart is empty.\n")
		return nil
	}
	a.printCart(snap)

	notes, err := getSimpleText(a.reader, "Delivery notes (at least 3 characters)", a.out)
	if err != nil {
		return err
	}
	code, err := getSimpleText(a.reader, "Discount code (empty for none)", a.out)
	if err != nil {
		return err
	}
	addressID, err := getSimpleText(a.reader, "Address id (empty for default)", a.out)
	if err != nil {
		return err
	}

	res, err := a.checkout.Submit(ctx, services.CheckoutInput{
		AddressID:    addressID,
		Notes:        notes,
		DiscountCode: code,
	})
	if err != nil {
		return err
	}

	if res.AddressID != "" {
		a.printf("Order placed! Delivering to address %s.\n", res.AddressID)
	} else {
		a.printf("Order placed! Delivering per your notes.\n")
	}
	if res.ReloadErr != nil {
		a.printf("Could not refresh the cart: %s\n", describe(res.ReloadErr))
	}
	return nil
}
