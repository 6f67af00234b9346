package domain

// LineItem is one purchasable configuration in the cart.
// Product is a snapshot taken when the item was first added.
type LineItem struct {
	ID       string       `json:"id"`
	Product  Product      `json:"product"`
	Quantity int          `json:"quantity"`
	Size     Size         `json:"size"`
	Color    ColorVariant `json:"color"`
}

// ItemKey identifies a distinct configuration. Two line items never share a key.
type ItemKey struct {
	ProductID string
	Size      Size
	ColorName string
}

func KeyOf(productID string, size Size, colorName string) ItemKey {
	return ItemKey{ProductID: productID, Size: size, ColorName: colorName}
}

func (i LineItem) Key() ItemKey {
	return KeyOf(i.Product.ID, i.Size, i.Color.Name)
}

func (i LineItem) LineTotal() float64 {
	return i.Product.Price * float64(i.Quantity)
}
