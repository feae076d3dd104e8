package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/cateringplus/internal/client/models"
	"github.com/dmitrijs2005/cateringplus/internal/logging"
)

type CheckoutAPI interface {
	FetchAddresses(ctx context.Context) ([]models.Address, error)
	Checkout(ctx context.Context, req models.CheckoutRequest) error
}

// CheckoutInput is what the user entered. AddressID may be empty.
type CheckoutInput struct {
	AddressID    string
	Notes        string
	DiscountCode string
}

// CheckoutResult describes a placed order. ReloadErr is set when the order
// went through but the following cart reload failed.
type CheckoutResult struct {
	AddressID string
	Cart      CartSnapshot
	ReloadErr error
}

type checkoutCheck struct {
	CartLines    int    `json:"cart" validate:"gt=0"`
	Notes        string `json:"notes" validate:"notes"`
	DiscountCode string `json:"discount_code" validate:"omitempty,discountcode"`
}

// CheckoutService validates and submits an order for the current cart.
type CheckoutService struct {
	api  CheckoutAPI
	cart *CartService
	log  logging.Logger
}

func NewCheckoutService(api CheckoutAPI, cart *CartService, log logging.Logger) *CheckoutService {
	return &CheckoutService{api: api, cart: cart, log: log.With("component", "checkout")}
}

// Submit checks the preconditions against the cart's last snapshot, resolves
// the delivery address and places the order. Precondition failures return a
// *ValidationError and nothing is sent. After a successful checkout the cart
// is reloaded. The cart must have been loaded first: an unloaded cart counts
// as empty.
func (s *CheckoutService) Submit(ctx context.Context, in CheckoutInput) (CheckoutResult, error) {
	code := strings.TrimSpace(in.DiscountCode)
	check := checkoutCheck{
		CartLines:    len(s.cart.Snapshot().Lines),
		Notes:        in.Notes,
		DiscountCode: code,
	}
	if err := validateStruct(check); err != nil {
		return CheckoutResult{}, err
	}

	addressID, err := s.resolveAddress(ctx, in.AddressID)
	if err != nil {
		return CheckoutResult{}, err
	}

	req := models.CheckoutRequest{
		AddressID:    addressID,
		Notes:        strings.TrimSpace(in.Notes),
		DiscountCode: code,
	}
	if err := s.api.Checkout(ctx, req); err != nil {
		s.log.Warn(ctx, "checkout failed", "address_id", addressID, "error", err)
		return CheckoutResult{}, err
	}
	s.log.Info(ctx, "order placed", "address_id", addressID)

	res := CheckoutResult{AddressID: addressID}
	res.Cart, res.ReloadErr = s.cart.Load(ctx)
	return res, nil
}

// Addresses lists the user's saved delivery addresses.
func (s *CheckoutService) Addresses(ctx context.Context) ([]models.Address, error) {
	return s.api.FetchAddresses(ctx)
}

// resolveAddress returns explicit when set, else the first saved address,
// else "" and the server falls back to the notes.
func (s *CheckoutService) resolveAddress(ctx context.Context, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	addrs, err := s.api.FetchAddresses(ctx)
	if err != nil {
		s.log.Warn(ctx, "failed to fetch addresses", "error", err)
		return "", err
	}
	if len(addrs) == 0 {
		return "", nil
	}
	return addrs[0].ID, nil
}
