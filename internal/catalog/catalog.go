package catalog

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/fjod/go_cart/storefront/internal/domain"
)

var (
	ErrDuplicateID   = errors.New("duplicate product id")
	ErrDuplicateSlug = errors.New("duplicate product slug")
)

// Catalog is the read-only product source. Lookups of unknown slugs return nil without error.
type Catalog interface {
	All(ctx context.Context) ([]domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	GetByCategory(ctx context.Context, category domain.Category) ([]domain.Product, error)
}

type SortBy string

const (
	SortNewest    SortBy = "newest"
	SortPriceLow  SortBy = "price-low"
	SortPriceHigh SortBy = "price-high"
	SortName      SortBy = "name"
)

func (s SortBy) Valid() bool {
	switch s {
	case "", SortNewest, SortPriceLow, SortPriceHigh, SortName:
		return true
	}
	return false
}

// Filter narrows a product list the way the shop page does. Zero values disable a criterion.
type Filter struct {
	Category    domain.Category
	Sizes       []domain.Size
	InStockOnly bool
	MinPrice    float64
	MaxPrice    float64
	Featured    bool
	New         bool
	SortBy      SortBy
}

// Apply returns the products matching f, sorted by f.SortBy. Without a sort key catalog order is kept.
func Apply(products []domain.Product, f Filter) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if f.matches(p) {
			out = append(out, p)
		}
	}

	switch f.SortBy {
	case SortNewest:
		slices.SortStableFunc(out, func(a, b domain.Product) int { return b.CreatedAt.Compare(a.CreatedAt) })
	case SortPriceLow:
		slices.SortStableFunc(out, func(a, b domain.Product) int { return cmp.Compare(a.Price, b.Price) })
	case SortPriceHigh:
		slices.SortStableFunc(out, func(a, b domain.Product) int { return cmp.Compare(b.Price, a.Price) })
	case SortName:
		slices.SortStableFunc(out, func(a, b domain.Product) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		})
	}
	return out
}

func (f Filter) matches(p domain.Product) bool {
	if f.Category != "" && f.Category != domain.CategoryAll && p.Category != f.Category {
		return false
	}
	if f.InStockOnly && !p.InStock {
		return false
	}
	if f.MinPrice > 0 && p.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && p.Price > f.MaxPrice {
		return false
	}
	if f.Featured && !p.Featured {
		return false
	}
	if f.New && !p.New {
		return false
	}
	if len(f.Sizes) > 0 && !slices.ContainsFunc(f.Sizes, p.HasSize) {
		return false
	}
	return true
}

func Featured(products []domain.Product) []domain.Product {
	return Apply(products, Filter{Featured: true})
}

func New(products []domain.Product) []domain.Product {
	return Apply(products, Filter{New: true})
}

// validate enforces unique ids and slugs across a product list.
func validate(products []domain.Product) error {
	ids := make(map[string]struct{}, len(products))
	slugs := make(map[string]struct{}, len(products))
	for _, p := range products {
		if _, ok := ids[p.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateID, p.ID)
		}
		if _, ok := slugs[p.Slug]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateSlug, p.Slug)
		}
		ids[p.ID] = struct{}{}
		slugs[p.Slug] = struct{}{}
	}
	return nil
}
