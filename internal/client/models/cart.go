package models

import "github.com/shopspring/decimal"

// CartLine is one product's entry in the server-side cart.
type CartLine struct {
	ProductID string
	Quantity  int
	Product   Product

	// LineTotal is the server's figure; Valid is false when the server did
	// not send one.
	LineTotal decimal.NullDecimal
}

// DisplayTotal is the amount to show for the line: the server's LineTotal
// when present, otherwise price × quantity from the product snapshot.
func (l CartLine) DisplayTotal() decimal.Decimal {
	if l.LineTotal.Valid {
		return l.LineTotal.Decimal
	}
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// OrderCalculation is the server-computed pricing breakdown of the cart.
type OrderCalculation struct {
	Subtotal   decimal.Decimal
	Discount   decimal.Decimal
	TotalPaid  decimal.Decimal
	TotalDue   decimal.Decimal
	GrandTotal decimal.Decimal
}

// Address is one of the user's saved delivery addresses.
type Address struct {
	ID      string
	Title   string
	Details string
}

// CheckoutRequest is what the checkout flow submits once validated.
type CheckoutRequest struct {
	AddressID    string
	Notes        string
	DiscountCode string
}
