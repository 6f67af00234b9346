package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/fjod/go_cart/storefront/internal/catalog"
	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/go-chi/chi/v5"
)

type CatalogHandler struct {
	catalog catalog.Catalog
	timeout time.Duration
}

func NewCatalogHandler(c catalog.Catalog, timeout time.Duration) *CatalogHandler {
	return &CatalogHandler{
		catalog: c,
		timeout: timeout,
	}
}

type productListResponse struct {
	Products []domain.Product `json:"products"`
	Count    int              `json:"count"`
}

// ListProducts serves the shop grid: category, size, in_stock, min_price, max_price, sort and
// filter=featured|new query parameters.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	f, ok := parseFilter(w, r)
	if !ok {
		return
	}

	products, err := h.catalog.GetByCategory(ctx, f.Category)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load products")
		return
	}

	products = catalog.Apply(products, f)
	respondJSON(w, http.StatusOK, productListResponse{Products: products, Count: len(products)})
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	product, err := h.catalog.GetBySlug(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load product")
		return
	}
	if product == nil {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func parseFilter(w http.ResponseWriter, r *http.Request) (catalog.Filter, bool) {
	q := r.URL.Query()
	f := catalog.Filter{
		Category: domain.Category(q.Get("category")),
		SortBy:   catalog.SortBy(q.Get("sort")),
	}
	if f.Category == "" {
		f.Category = domain.CategoryAll
	}
	if !f.SortBy.Valid() {
		respondError(w, http.StatusBadRequest, "invalid_sort", "sort must be one of newest, price-low, price-high, name")
		return f, false
	}

	for _, size := range q["size"] {
		f.Sizes = append(f.Sizes, domain.Size(size))
	}

	switch q.Get("filter") {
	case "":
	case "featured":
		f.Featured = true
	case "new":
		f.New = true
	default:
		respondError(w, http.StatusBadRequest, "invalid_filter", "filter must be featured or new")
		return f, false
	}

	if v := q.Get("in_stock"); v != "" {
		inStock, err := strconv.ParseBool(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_in_stock", "in_stock must be a boolean")
			return f, false
		}
		f.InStockOnly = inStock
	}

	var err error
	if f.MinPrice, err = parsePrice(q.Get("min_price")); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_price", "min_price must be a non-negative number")
		return f, false
	}
	if f.MaxPrice, err = parsePrice(q.Get("max_price")); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_price", "max_price must be a non-negative number")
		return f, false
	}
	return f, true
}

func parsePrice(v string) (float64, error) {
	if v == "" {
		return 0, nil
	}
	price, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	if price < 0 {
		return 0, strconv.ErrRange
	}
	return price, nil
}
