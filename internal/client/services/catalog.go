package services

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/cateringplus/internal/client/models"
	"github.com/dmitrijs2005/cateringplus/internal/logging"
)

type CatalogAPI interface {
	FetchCategories(ctx context.Context) ([]models.Category, error)
	FetchProducts(ctx context.Context, categoryID string) ([]models.Product, error)
}

type CatalogState int

const (
	CatalogIdle CatalogState = iota
	CatalogLoadingCategories
	CatalogCategoriesReady
	CatalogLoadingProducts
	CatalogProductsReady
)

func (s CatalogState) String() string {
	switch s {
	case CatalogIdle:
		return "idle"
	case CatalogLoadingCategories:
		return "loading categories"
	case CatalogCategoriesReady:
		return "categories ready"
	case CatalogLoadingProducts:
		return "loading products"
	case CatalogProductsReady:
		return "products ready"
	default:
		return "unknown"
	}
}

// CatalogSnapshot is a copy of the catalog state. Err is set when the last
// load failed; the state is then the stable state preceding that load.
type CatalogSnapshot struct {
	State      CatalogState
	Categories []models.Category
	SelectedID string
	Products   []models.Product
	Err        error
}

// CatalogService loads categories and the products of the selected
// category. Every load bumps a generation counter; a response is applied
// only while its generation is still current.
type CatalogService struct {
	api CatalogAPI
	log logging.Logger

	mu         sync.Mutex
	generation uint64
	state      CatalogSnapshot
}

func NewCatalogService(api CatalogAPI, log logging.Logger) *CatalogService {
	return &CatalogService{api: api, log: log.With("component", "catalog")}
}

// LoadCategories fetches the category list. Any selection is reset.
func (s *CatalogService) LoadCategories(ctx context.Context) ([]models.Category, error) {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.state = CatalogSnapshot{State: CatalogLoadingCategories}
	s.mu.Unlock()

	categories, err := s.api.FetchCategories(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return nil, ErrStaleSelection
	}
	if err != nil {
		s.log.Warn(ctx, "failed to load categories", "error", err)
		s.state = CatalogSnapshot{State: CatalogIdle, Err: err}
		return nil, err
	}
	s.state = CatalogSnapshot{State: CatalogCategoriesReady, Categories: categories}
	return slices.Clone(categories), nil
}

// SelectCategory makes categoryID current and fetches its products. If
// another selection happens before the response arrives, the response is
// dropped and ErrStaleSelection is returned.
func (s *CatalogService) SelectCategory(ctx context.Context, categoryID string) ([]models.Product, error) {
	s.mu.Lock()
	known := s.state.State >= CatalogCategoriesReady && slices.ContainsFunc(s.state.Categories,
		func(c models.Category) bool { return c.ID == categoryID })
	if !known {
		s.mu.Unlock()
		return nil, ErrUnknownCategory
	}
	s.generation++
	gen := s.generation
	s.state = CatalogSnapshot{
		State:      CatalogLoadingProducts,
		Categories: s.state.Categories,
		SelectedID: categoryID,
	}
	s.mu.Unlock()

	products, err := s.api.FetchProducts(ctx, categoryID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		s.log.Debug(ctx, "dropping stale products response", "category_id", categoryID)
		return nil, ErrStaleSelection
	}
	if err != nil {
		s.log.Warn(ctx, "failed to load products", "category_id", categoryID, "error", err)
		s.state = CatalogSnapshot{
			State:      CatalogCategoriesReady,
			Categories: s.state.Categories,
			SelectedID: categoryID,
			Err:        err,
		}
		return nil, err
	}
	s.state = CatalogSnapshot{
		State:      CatalogProductsReady,
		Categories: s.state.Categories,
		SelectedID: categoryID,
		Products:   products,
	}
	return slices.Clone(products), nil
}

// Reset returns the catalog to Idle and invalidates in-flight loads.
func (s *CatalogService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.state = CatalogSnapshot{}
}

func (s *CatalogService) Snapshot() CatalogSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.state
	snap.Categories = slices.Clone(snap.Categories)
	snap.Products = slices.Clone(snap.Products)
	return snap
}
