package services

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/cateringplus/internal/client/models"
	"github.com/dmitrijs2005/cateringplus/internal/logging"
)

type CartAPI interface {
	MutateCart(ctx context.Context, productID string, quantity int, extras []string) error
	FetchCart(ctx context.Context) ([]models.CartLine, error)
	CalculateOrder(ctx context.Context) (models.OrderCalculation, error)
}

// CartSnapshot is the last cart state fetched from the server.
//
// Calculation is nil when the cart is empty or when the calculation request
// failed; in the latter case CalculationErr holds the failure.
type CartSnapshot struct {
	Lines          []models.CartLine
	Calculation    *models.OrderCalculation
	CalculationErr error
	Loaded         bool
}

func (s CartSnapshot) Empty() bool { return len(s.Lines) == 0 }

// Line returns the line for productID.
func (s CartSnapshot) Line(productID string) (models.CartLine, bool) {
	for _, l := range s.Lines {
		if l.ProductID == productID {
			return l, true
		}
	}
	return models.CartLine{}, false
}

func (s CartSnapshot) clone() CartSnapshot {
	out := s
	out.Lines = slices.Clone(s.Lines)
	if s.Calculation != nil {
		c := *s.Calculation
		out.Calculation = &c
	}
	return out
}

// CartService mirrors the server-side cart. Local lines are never edited:
// every mutation is followed by a full reload.
type CartService struct {
	api CartAPI
	log logging.Logger

	mu      sync.Mutex
	snap    CartSnapshot
	seq     uint64 // last started load
	applied uint64 // load whose result is in snap
	busy    map[string]int
}

func NewCartService(api CartAPI, log logging.Logger) *CartService {
	return &CartService{
		api:  api,
		log:  log.With("component", "cart"),
		busy: map[string]int{},
	}
}

// Load fetches the cart lines and, for a non-empty cart, the order
// calculation. A failed line fetch keeps the previous state and returns the
// error. A failed calculation is not an error: the lines are applied and the
// calculation is left absent.
func (s *CartService) Load(ctx context.Context) (CartSnapshot, error) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	lines, err := s.api.FetchCart(ctx)
	if err != nil {
		s.log.Warn(ctx, "failed to load cart", "error", err)
		return s.Snapshot(), err
	}

	next := CartSnapshot{Lines: lines, Loaded: true}
	if len(lines) > 0 {
		calc, err := s.api.CalculateOrder(ctx)
		if err != nil {
			s.log.Warn(ctx, "failed to calculate order", "error", err)
			next.CalculationErr = err
		} else {
			next.Calculation = &calc
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// an older load finishing late must not overwrite a newer one
	if seq > s.applied {
		s.snap = next
		s.applied = seq
	}
	return s.snap.clone(), nil
}

// SetQuantity sets the absolute quantity of productID and reloads the cart.
// Quantity 0 removes the product.
func (s *CartService) SetQuantity(ctx context.Context, productID string, quantity int) (CartSnapshot, error) {
	return s.SetQuantityWithExtras(ctx, productID, quantity, nil)
}

type cartMutation struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

// SetQuantityWithExtras is SetQuantity with extra option ids attached to
// the line. The product is reported busy until the reload completes. A
// failed mutation is returned without a reload.
func (s *CartService) SetQuantityWithExtras(ctx context.Context, productID string, quantity int, extras []string) (CartSnapshot, error) {
	if err := validateStruct(cartMutation{ProductID: productID, Quantity: quantity}); err != nil {
		return s.Snapshot(), err
	}

	s.markBusy(productID)
	defer s.clearBusy(productID)

	if err := s.api.MutateCart(ctx, productID, quantity, extras); err != nil {
		s.log.Warn(ctx, "cart mutation failed", "product_id", productID, "quantity", quantity, "error", err)
		return s.Snapshot(), err
	}
	return s.Load(ctx)
}

func (s *CartService) Remove(ctx context.Context, productID string) (CartSnapshot, error) {
	return s.SetQuantity(ctx, productID, 0)
}

// Busy reports whether a mutation for productID is in flight.
func (s *CartService) Busy(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy[productID] > 0
}

// Reset forgets the local view, e.g. when the user changes. In-flight loads
// started before Reset are not applied.
func (s *CartService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = CartSnapshot{}
	s.applied = s.seq
}

func (s *CartService) Snapshot() CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.clone()
}

func (s *CartService) markBusy(productID string) {
	s.mu.Lock()
	s.busy[productID]++
	s.mu.Unlock()
}

func (s *CartService) clearBusy(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy[productID] <= 1 {
		delete(s.busy, productID)
		return
	}
	s.busy[productID]--
}
