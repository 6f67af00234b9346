package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/fjod/go_cart/storefront/internal/cart"
	"github.com/fjod/go_cart/storefront/internal/catalog"
	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/visitor"
	"github.com/go-chi/chi/v5"
)

const (
	maxQuantity   = cart.DefaultMaxQuantity
	addedToBagMsg = "Added to bag"
)

// VisitorSource resolves the stores of the current visitor.
type VisitorSource interface {
	Get(ctx context.Context, id string) (*visitor.Visitor, error)
}

type CartHandler struct {
	visitors VisitorSource
	catalog  catalog.Catalog
	timeout  time.Duration
	log      *slog.Logger
}

func NewCartHandler(visitors VisitorSource, c catalog.Catalog, timeout time.Duration, log *slog.Logger) *CartHandler {
	if log == nil {
		log = slog.Default()
	}
	return &CartHandler{
		visitors: visitors,
		catalog:  c,
		timeout:  timeout,
		log:      log,
	}
}

type AddItemRequestDTO struct {
	ProductSlug string `json:"product_slug"`
	Size        string `json:"size"`
	Color       string `json:"color"`
	Quantity    *int   `json:"quantity,omitempty"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type AddItemResponse struct {
	Item  domain.LineItem `json:"item"`
	Cart  cart.State      `json:"cart"`
	Toast domain.Toast    `json:"toast"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	v, ok := resolveVisitor(w, r, h.visitors, h.log)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, v.Cart.State())
}

// AddItem is the add-to-bag flow. Selection rules are enforced here, before the cart store is touched.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	v, ok := resolveVisitor(w, r, h.visitors, h.log)
	if !ok {
		return
	}

	var req AddItemRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity <= 0 || quantity > maxQuantity {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}
	if req.ProductSlug == "" {
		respondError(w, http.StatusBadRequest, "invalid_product", "product_slug is required")
		return
	}

	product, err := h.catalog.GetBySlug(ctx, req.ProductSlug)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load product")
		return
	}
	if product == nil {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if !product.InStock {
		respondError(w, http.StatusConflict, "sold_out", "product is sold out")
		return
	}

	size := domain.Size(req.Size)
	if !product.HasSize(size) {
		respondError(w, http.StatusBadRequest, "invalid_size", "select a size offered for this product")
		return
	}
	color, found := product.Color(req.Color)
	if !found {
		respondError(w, http.StatusBadRequest, "invalid_color", "select a color offered for this product")
		return
	}
	if !color.Available {
		respondError(w, http.StatusConflict, "color_unavailable", "selected color is unavailable")
		return
	}

	item, err := v.Cart.AddItem(ctx, *product, size, color, quantity)
	if errors.Is(err, cart.ErrInvalidQuantity) {
		respondError(w, http.StatusBadRequest, "invalid_quantity", err.Error())
		return
	}
	if errors.Is(err, cart.ErrQuantityLimit) {
		respondError(w, http.StatusConflict, "quantity_limit", "a line item holds at most 99 units")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to add item")
		return
	}

	toast := v.UI.ShowToast(addedToBagMsg, domain.SeveritySuccess)
	respondJSON(w, http.StatusCreated, AddItemResponse{Item: item, Cart: v.Cart.State(), Toast: toast})
}

// UpdateQuantity sets an absolute quantity; zero or below removes the line item.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	v, ok := resolveVisitor(w, r, h.visitors, h.log)
	if !ok {
		return
	}

	var req UpdateQuantityRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	// Lowering is always accepted; raising past the cap is rejected by the store.
	if err := v.Cart.UpdateQuantity(ctx, chi.URLParam(r, "item_id"), req.Quantity); err != nil {
		if errors.Is(err, cart.ErrQuantityLimit) {
			respondError(w, http.StatusConflict, "quantity_limit", "a line item holds at most 99 units")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update quantity")
		return
	}
	respondJSON(w, http.StatusOK, v.Cart.State())
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	v, ok := resolveVisitor(w, r, h.visitors, h.log)
	if !ok {
		return
	}

	v.Cart.RemoveItem(ctx, chi.URLParam(r, "item_id"))
	respondJSON(w, http.StatusOK, v.Cart.State())
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	v, ok := resolveVisitor(w, r, h.visitors, h.log)
	if !ok {
		return
	}

	v.Cart.ClearCart(ctx)
	respondJSON(w, http.StatusOK, v.Cart.State())
}

// WipeCart empties the cart and deletes its persisted snapshot.
func (h *CartHandler) WipeCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	v, ok := resolveVisitor(w, r, h.visitors, h.log)
	if !ok {
		return
	}

	v.Cart.Wipe(ctx)
	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) ToggleCart(w http.ResponseWriter, r *http.Request) {
	h.visibility(w, r, (*cart.Store).ToggleCart)
}

func (h *CartHandler) OpenCart(w http.ResponseWriter, r *http.Request) {
	h.visibility(w, r, (*cart.Store).OpenCart)
}

func (h *CartHandler) CloseCart(w http.ResponseWriter, r *http.Request) {
	h.visibility(w, r, (*cart.Store).CloseCart)
}

func (h *CartHandler) visibility(w http.ResponseWriter, r *http.Request, fn func(*cart.Store)) {
	v, ok := resolveVisitor(w, r, h.visitors, h.log)
	if !ok {
		return
	}
	fn(v.Cart)
	respondJSON(w, http.StatusOK, v.Cart.State())
}

func resolveVisitor(w http.ResponseWriter, r *http.Request, visitors VisitorSource, log *slog.Logger) (*visitor.Visitor, bool) {
	id := getVisitorIDFromContext(r.Context())
	if id == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing visitor session")
		return nil, false
	}

	v, err := visitors.Get(r.Context(), id)
	if err != nil {
		log.ErrorContext(r.Context(), "failed to resolve visitor",
			"visitor_id", id, "request_id", getRequestID(r.Context()), "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load session")
		return nil, false
	}
	return v, true
}
