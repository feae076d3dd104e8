package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/cateringplus/internal/logging"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testWait = 2 * time.Second
	testTick = 5 * time.Millisecond
)

func TestCart_EmptyCartHasNoCalculation(t *testing.T) {
	api := newFakeAPI()
	s := NewCartService(api, logging.Nop())

	snap, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, snap.Loaded)
	assert.True(t, snap.Empty())
	assert.Nil(t, snap.Calculation)
	assert.NoError(t, snap.CalculationErr)
	assert.Equal(t, 0, api.Calls("calc"), "calculation skipped for empty cart")
}

func TestCart_SetQuantityOnEmptyCart(t *testing.T) {
	api := newFakeAPI()
	s := NewCartService(api, logging.Nop())

	snap, err := s.SetQuantity(context.Background(), "sku-1", 3)
	require.NoError(t, err)

	require.Len(t, snap.Lines, 1)
	assert.Equal(t, "sku-1", snap.Lines[0].ProductID)
	assert.Equal(t, 3, snap.Lines[0].Quantity)
	require.NotNil(t, snap.Calculation)
	assert.True(t, snap.Calculation.GrandTotal.Equal(decimal.RequireFromString("7.50")))
	assert.Equal(t, 1, api.Calls("mutate"))
	assert.Equal(t, 1, api.Calls("cart"))
}

func TestCart_ReflectsServerNotLocalValue(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	s := NewCartService(api, logging.Nop())

	for q := 1; q <= 4; q++ {
		_, err := s.SetQuantity(ctx, "sku-1", q)
		require.NoError(t, err)

		// someone else edits the same cart on the server
		api.mu.Lock()
		api.cart["sku-1"] = q * 10
		api.mu.Unlock()

		snap, err := s.Load(ctx)
		require.NoError(t, err)
		line, ok := snap.Line("sku-1")
		require.True(t, ok)
		assert.Equal(t, q*10, line.Quantity)
	}
}

func TestCart_ZeroRemoves(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	s := NewCartService(api, logging.Nop())

	_, err := s.SetQuantity(ctx, "sku-1", 3)
	require.NoError(t, err)
	_, err = s.SetQuantity(ctx, "sku-2", 1)
	require.NoError(t, err)

	snap, err := s.SetQuantity(ctx, "sku-1", 0)
	require.NoError(t, err)
	_, ok := snap.Line("sku-1")
	assert.False(t, ok)
	assert.Len(t, snap.Lines, 1)

	snap, err = s.Remove(ctx, "sku-2")
	require.NoError(t, err)
	assert.True(t, snap.Empty())
	assert.Nil(t, snap.Calculation)
}

func TestCart_CalculationFailureKeepsLines(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	api.CalcErr = errBoom
	s := NewCartService(api, logging.Nop())

	snap, err := s.SetQuantity(ctx, "sku-1", 2)
	require.NoError(t, err)
	assert.Len(t, snap.Lines, 1)
	assert.Nil(t, snap.Calculation)
	assert.ErrorIs(t, snap.CalculationErr, errBoom)
}

func TestCart_FetchFailureKeepsPriorState(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	s := NewCartService(api, logging.Nop())

	_, err := s.SetQuantity(ctx, "sku-1", 2)
	require.NoError(t, err)

	api.FetchErr = errBoom
	snap, err := s.Load(ctx)
	require.ErrorIs(t, err, errBoom)
	assert.Len(t, snap.Lines, 1)
	assert.Len(t, s.Snapshot().Lines, 1)
}

func TestCart_FailedMutationDoesNotReload(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	api.MutateErr = errBoom
	s := NewCartService(api, logging.Nop())

	_, err := s.SetQuantity(ctx, "sku-1", 2)
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, 0, api.Calls("cart"))
	assert.False(t, s.Busy("sku-1"))
}

func TestCart_Validation(t *testing.T) {
	api := newFakeAPI()
	s := NewCartService(api, logging.Nop())

	_, err := s.SetQuantity(context.Background(), "sku-1", -1)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("quantity"))

	_, err = s.SetQuantity(context.Background(), "", 1)
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("product_id"))

	assert.Equal(t, 0, api.Calls("mutate"))
}

func TestCart_ExtrasArePassedThrough(t *testing.T) {
	api := newFakeAPI()
	s := NewCartService(api, logging.Nop())

	_, err := s.SetQuantityWithExtras(context.Background(), "sku-1", 1, []string{"x-1", "x-2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"x-1", "x-2"}, api.LastExtras)
}

func TestCart_BusyIsPerProduct(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	api.mutateGate = make(chan struct{})
	api.mutateEnter = make(chan string, 1)
	s := NewCartService(api, logging.Nop())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = s.SetQuantity(ctx, "sku-1", 1)
	}()

	require.Equal(t, "sku-1", <-api.mutateEnter)
	assert.True(t, s.Busy("sku-1"))
	assert.False(t, s.Busy("sku-2"), "other lines stay interactive")

	close(api.mutateGate)
	wg.Wait()
	assert.False(t, s.Busy("sku-1"))
}

func TestCart_ConcurrentMutationsConverge(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	s := NewCartService(api, logging.Nop())

	var wg sync.WaitGroup
	for _, id := range []string{"sku-1", "sku-2"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := s.SetQuantity(ctx, id, 2)
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	snap, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Lines, 2)
}

func TestCart_SnapshotIsACopy(t *testing.T) {
	ctx := context.Background()
	s := NewCartService(newFakeAPI(), logging.Nop())
	_, err := s.SetQuantity(ctx, "sku-1", 1)
	require.NoError(t, err)

	snap := s.Snapshot()
	snap.Lines[0].Quantity = 99
	snap.Calculation.GrandTotal = decimal.NewFromInt(1000)

	again := s.Snapshot()
	assert.Equal(t, 1, again.Lines[0].Quantity)
	assert.False(t, again.Calculation.GrandTotal.Equal(decimal.NewFromInt(1000)))
}
