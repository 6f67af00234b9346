package catalog

import (
	"context"

	"github.com/fjod/go_cart/storefront/internal/domain"
)

// StaticCatalog serves an immutable product list held in memory.
type StaticCatalog struct {
	products []domain.Product
	bySlug   map[string]int
}

func NewStatic(products []domain.Product) (*StaticCatalog, error) {
	if err := validate(products); err != nil {
		return nil, err
	}

	c := &StaticCatalog{
		products: make([]domain.Product, len(products)),
		bySlug:   make(map[string]int, len(products)),
	}
	for i, p := range products {
		c.products[i] = p.Clone()
		c.bySlug[p.Slug] = i
	}
	return c, nil
}

func (c *StaticCatalog) All(context.Context) ([]domain.Product, error) {
	return c.copyOf(c.products), nil
}

func (c *StaticCatalog) GetBySlug(_ context.Context, slug string) (*domain.Product, error) {
	i, ok := c.bySlug[slug]
	if !ok {
		return nil, nil
	}
	p := c.products[i].Clone()
	return &p, nil
}

func (c *StaticCatalog) GetByCategory(_ context.Context, category domain.Category) ([]domain.Product, error) {
	return c.copyOf(Apply(c.products, Filter{Category: category})), nil
}

func (c *StaticCatalog) copyOf(products []domain.Product) []domain.Product {
	out := make([]domain.Product, len(products))
	for i, p := range products {
		out[i] = p.Clone()
	}
	return out
}
