package cart

import (
	"errors"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/google/uuid"
)

const (
	FreeShippingThreshold = 150.0
	FlatShippingFee       = 10.0
)

// DefaultMaxQuantity is the most units a single line item may hold.
const DefaultMaxQuantity = 99

var (
	ErrInvalidQuantity = errors.New("quantity must be greater than 0")
	ErrQuantityLimit   = errors.New("line item quantity limit exceeded")
)

// Summary holds the derived cart figures. It is computed on demand and never stored.
type Summary struct {
	ItemCount int     `json:"item_count"`
	Subtotal  float64 `json:"subtotal"`
	Shipping  float64 `json:"shipping"`
	Total     float64 `json:"total"`
	// FreeShippingRemaining is what is left to spend before shipping becomes free.
	FreeShippingRemaining float64 `json:"free_shipping_remaining"`
}

// Cart is the cart core: an ordered list of line items plus the drawer visibility flag.
// It has no storage dependency and is not safe for concurrent use; Store serializes access.
type Cart struct {
	items []domain.LineItem
	open  bool
	newID func() string
	// maxQuantity caps a line item's quantity; 0 means no cap.
	maxQuantity int
}

// New builds a closed cart holding items. The slice is copied.
func New(items []domain.LineItem) *Cart {
	return &Cart{
		items: append([]domain.LineItem(nil), items...),
		newID: uuid.NewString,
	}
}

// SetMaxQuantity caps every line item at limit units. Zero removes the cap.
func (c *Cart) SetMaxQuantity(limit int) {
	c.maxQuantity = limit
}

// AddItem merges quantity into the line item with the same product id, size and color name,
// or appends a new line item when none matches. The cart is opened either way.
// An add that would push the line item past the cap fails with ErrQuantityLimit and changes nothing.
func (c *Cart) AddItem(product domain.Product, size domain.Size, color domain.ColorVariant, quantity int) (domain.LineItem, error) {
	if quantity <= 0 {
		return domain.LineItem{}, ErrInvalidQuantity
	}

	key := domain.KeyOf(product.ID, size, color.Name)
	if c.maxQuantity > 0 && c.QuantityOf(key)+quantity > c.maxQuantity {
		return domain.LineItem{}, ErrQuantityLimit
	}
	defer func() { c.open = true }()

	for i := range c.items {
		if c.items[i].Key() == key {
			c.items[i].Quantity += quantity
			return c.items[i], nil
		}
	}

	item := domain.LineItem{
		ID:       c.newID(),
		Product:  product.Clone(),
		Quantity: quantity,
		Size:     size,
		Color:    color,
	}
	c.items = append(c.items, item)
	return item, nil
}

// RemoveItem deletes the line item with the given id. It reports whether anything was removed.
func (c *Cart) RemoveItem(id string) bool {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// CheckQuantity reports whether setting line item id to quantity would break the cap.
// Lowering a quantity is always allowed, even on a line that is already above the cap,
// and unknown ids pass since updating them is a no-op.
func (c *Cart) CheckQuantity(id string, quantity int) error {
	if c.maxQuantity == 0 || quantity <= c.maxQuantity {
		return nil
	}
	item, ok := c.Item(id)
	if !ok || quantity <= item.Quantity {
		return nil
	}
	return ErrQuantityLimit
}

// UpdateQuantity sets the absolute quantity of a line item. A quantity of zero or less removes it.
func (c *Cart) UpdateQuantity(id string, quantity int) bool {
	if quantity <= 0 {
		return c.RemoveItem(id)
	}
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity = quantity
			return true
		}
	}
	return false
}

// Clear empties the cart without touching the open flag.
func (c *Cart) Clear() {
	c.items = nil
}

func (c *Cart) Toggle() { c.open = !c.open }
func (c *Cart) Open()   { c.open = true }
func (c *Cart) Close()  { c.open = false }

func (c *Cart) IsOpen() bool { return c.open }

// Items returns a copy of the line items in insertion order. An empty cart yields an empty, non-nil slice.
func (c *Cart) Items() []domain.LineItem {
	items := make([]domain.LineItem, len(c.items))
	copy(items, c.items)
	return items
}

// QuantityOf returns the quantity held for a configuration, 0 when it is not in the cart.
func (c *Cart) QuantityOf(key domain.ItemKey) int {
	for _, item := range c.items {
		if item.Key() == key {
			return item.Quantity
		}
	}
	return 0
}

// Item returns the line item with the given id.
func (c *Cart) Item(id string) (domain.LineItem, bool) {
	for _, item := range c.items {
		if item.ID == id {
			return item, true
		}
	}
	return domain.LineItem{}, false
}

func (c *Cart) Len() int { return len(c.items) }

// Total is the sum of price times quantity over all line items.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.items {
		total += item.LineTotal()
	}
	return total
}

// ItemCount is the sum of quantities over all line items.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

func (c *Cart) Summary() Summary {
	subtotal := c.Total()
	return Summary{
		ItemCount:             c.ItemCount(),
		Subtotal:              subtotal,
		Shipping:              ShippingFor(subtotal),
		Total:                 subtotal + ShippingFor(subtotal),
		FreeShippingRemaining: FreeShippingRemaining(subtotal),
	}
}

// FreeShippingRemaining is the amount still needed to reach free shipping. Carts that already ship
// for free, including the empty cart, need nothing more.
func FreeShippingRemaining(subtotal float64) float64 {
	if ShippingFor(subtotal) == 0 {
		return 0
	}
	return FreeShippingThreshold - subtotal
}

// ShippingFor returns the shipping fee for a subtotal. Empty carts ship for free.
func ShippingFor(subtotal float64) float64 {
	if subtotal <= 0 || subtotal >= FreeShippingThreshold {
		return 0
	}
	return FlatShippingFee
}
