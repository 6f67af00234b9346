package cart

import (
	"fmt"
	"testing"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	voidBlack = domain.ColorVariant{Name: "VOID BLACK", Hex: "#0A0A0A", Available: true}
	burgundy  = domain.ColorVariant{Name: "BURGUNDY", Hex: "#722F37", Available: true}
)

func tracksuit() domain.Product {
	return domain.Product{
		ID:      "kolor-tracksuit",
		Slug:    "kolor-tracksuit",
		Name:    "KOLOR TRACKSUIT",
		Price:   280,
		Sizes:   []domain.Size{domain.SizeS, domain.SizeM, domain.SizeL},
		Colors:  []domain.ColorVariant{voidBlack, burgundy},
		InStock: true,
	}
}

func logoCap() domain.Product {
	return domain.Product{
		ID:      "6",
		Slug:    "klr-logo-cap",
		Name:    "KLR Logo Cap",
		Price:   45,
		Sizes:   []domain.Size{domain.SizeOneSize},
		Colors:  []domain.ColorVariant{voidBlack},
		InStock: true,
	}
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("item-%d", n)
	}
}

func newTestCart() *Cart {
	c := New(nil)
	c.newID = sequentialIDs()
	return c
}

// assertDerived recomputes the totals independently from the item list.
func assertDerived(t *testing.T, c *Cart) {
	t.Helper()
	var total float64
	count := 0
	for _, item := range c.Items() {
		require.Positive(t, item.Quantity)
		total += item.Product.Price * float64(item.Quantity)
		count += item.Quantity
	}
	assert.InDelta(t, total, c.Total(), 1e-9)
	assert.Equal(t, count, c.ItemCount())
}

func TestAddItem_MergesSameConfiguration(t *testing.T) {
	c := newTestCart()

	first, err := c.AddItem(tracksuit(), domain.SizeM, burgundy, 2)
	require.NoError(t, err)
	second, err := c.AddItem(tracksuit(), domain.SizeM, burgundy, 3)
	require.NoError(t, err)

	require.Equal(t, 1, c.Len())
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, c.Items()[0].Quantity)
}

func TestAddItem_DistinctSizesAndColors(t *testing.T) {
	c := newTestCart()

	_, err := c.AddItem(tracksuit(), domain.SizeM, voidBlack, 1)
	require.NoError(t, err)
	_, err = c.AddItem(tracksuit(), domain.SizeL, voidBlack, 1)
	require.NoError(t, err)
	_, err = c.AddItem(tracksuit(), domain.SizeM, burgundy, 1)
	require.NoError(t, err)

	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, domain.SizeM, items[0].Size)
	assert.Equal(t, domain.SizeL, items[1].Size)
	assert.Equal(t, "BURGUNDY", items[2].Color.Name)
}

func TestAddItem_OpensCart(t *testing.T) {
	c := newTestCart()
	require.False(t, c.IsOpen())

	_, err := c.AddItem(logoCap(), domain.SizeOneSize, voidBlack, 1)
	require.NoError(t, err)
	assert.True(t, c.IsOpen())

	c.Close()
	_, err = c.AddItem(logoCap(), domain.SizeOneSize, voidBlack, 1)
	require.NoError(t, err)
	assert.True(t, c.IsOpen(), "merging must open the cart too")
}

func TestAddItem_RejectsNonPositiveQuantity(t *testing.T) {
	for _, q := range []int{0, -1} {
		c := newTestCart()
		_, err := c.AddItem(tracksuit(), domain.SizeM, burgundy, q)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
		assert.Equal(t, 0, c.Len())
		assert.False(t, c.IsOpen())
	}
}

func TestAddItem_SnapshotsProduct(t *testing.T) {
	c := newTestCart()
	p := tracksuit()

	_, err := c.AddItem(p, domain.SizeM, burgundy, 1)
	require.NoError(t, err)

	p.Price = 1
	p.Colors[0].Name = "CHANGED"

	item := c.Items()[0]
	assert.Equal(t, 280.0, item.Product.Price)
	assert.Equal(t, "VOID BLACK", item.Product.Colors[0].Name)
}

func TestUpdateQuantity_NonPositiveRemoves(t *testing.T) {
	for _, q := range []int{0, -3} {
		c := newTestCart()
		item, err := c.AddItem(tracksuit(), domain.SizeM, burgundy, 2)
		require.NoError(t, err)

		assert.True(t, c.UpdateQuantity(item.ID, q))
		_, found := c.Item(item.ID)
		assert.False(t, found)
		assert.Equal(t, 0, c.Len())
	}
}

func TestUpdateQuantity_SetsAbsoluteValue(t *testing.T) {
	c := newTestCart()
	item, err := c.AddItem(tracksuit(), domain.SizeM, burgundy, 2)
	require.NoError(t, err)

	assert.True(t, c.UpdateQuantity(item.ID, 7))
	got, _ := c.Item(item.ID)
	assert.Equal(t, 7, got.Quantity)
}

func TestUnknownIDsAreNoOps(t *testing.T) {
	c := newTestCart()
	_, err := c.AddItem(logoCap(), domain.SizeOneSize, voidBlack, 1)
	require.NoError(t, err)

	assert.False(t, c.RemoveItem("missing"))
	assert.False(t, c.UpdateQuantity("missing", 4))
	assert.False(t, c.UpdateQuantity("missing", 0))
	assert.Equal(t, 1, c.ItemCount())
}

func TestRemoveItem_KeepsOrder(t *testing.T) {
	c := newTestCart()
	a, _ := c.AddItem(tracksuit(), domain.SizeS, voidBlack, 1)
	b, _ := c.AddItem(tracksuit(), domain.SizeM, voidBlack, 1)
	d, _ := c.AddItem(logoCap(), domain.SizeOneSize, voidBlack, 1)

	require.True(t, c.RemoveItem(b.ID))

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, a.ID, items[0].ID)
	assert.Equal(t, d.ID, items[1].ID)
}

func TestClear_LeavesOpenFlag(t *testing.T) {
	c := newTestCart()
	_, _ = c.AddItem(logoCap(), domain.SizeOneSize, voidBlack, 3)
	require.True(t, c.IsOpen())

	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.True(t, c.IsOpen())
	assert.Zero(t, c.Total())
}

func TestVisibility(t *testing.T) {
	c := newTestCart()
	c.Toggle()
	assert.True(t, c.IsOpen())
	c.Toggle()
	assert.False(t, c.IsOpen())
	c.Open()
	c.Open()
	assert.True(t, c.IsOpen())
	c.Close()
	assert.False(t, c.IsOpen())
	assert.Equal(t, 0, c.Len())
}

func TestDerivedTotalsHoldAfterEveryOperation(t *testing.T) {
	c := newTestCart()
	steps := []func(){
		func() { _, _ = c.AddItem(tracksuit(), domain.SizeM, burgundy, 1) },
		func() { _, _ = c.AddItem(logoCap(), domain.SizeOneSize, voidBlack, 4) },
		func() { _, _ = c.AddItem(tracksuit(), domain.SizeM, burgundy, 2) },
		func() { c.UpdateQuantity("item-2", 1) },
		func() { _, _ = c.AddItem(tracksuit(), domain.SizeL, voidBlack, 1) },
		func() { c.RemoveItem("item-1") },
		func() { c.UpdateQuantity("item-3", -1) },
		func() { c.UpdateQuantity("nope", 9) },
		func() { c.Clear() },
	}

	for i, step := range steps {
		step()
		t.Run(fmt.Sprintf("after step %d", i), func(t *testing.T) {
			assertDerived(t, c)
		})
	}
}

func TestTracksuitScenario(t *testing.T) {
	c := newTestCart()

	item, err := c.AddItem(tracksuit(), domain.SizeM, burgundy, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 1, c.ItemCount())
	assert.Equal(t, 280.0, c.Total())

	_, err = c.AddItem(tracksuit(), domain.SizeM, burgundy, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 2, c.Items()[0].Quantity)
	assert.Equal(t, 560.0, c.Total())

	c.UpdateQuantity(item.ID, 0)
	assert.Equal(t, 0, c.Len())
	assert.Zero(t, c.Total())
}

func TestSummary_Shipping(t *testing.T) {
	c := newTestCart()
	assert.Equal(t, Summary{}, c.Summary())

	_, _ = c.AddItem(logoCap(), domain.SizeOneSize, voidBlack, 1)
	assert.Equal(t, Summary{ItemCount: 1, Subtotal: 45, Shipping: FlatShippingFee, Total: 55, FreeShippingRemaining: 105}, c.Summary())

	_, _ = c.AddItem(tracksuit(), domain.SizeM, burgundy, 1)
	s := c.Summary()
	assert.Equal(t, 325.0, s.Subtotal)
	assert.Zero(t, s.Shipping)
	assert.Equal(t, 325.0, s.Total)
	assert.Zero(t, s.FreeShippingRemaining)
}

func TestFreeShippingRemaining(t *testing.T) {
	assert.Zero(t, FreeShippingRemaining(0), "empty cart already ships free")
	assert.Equal(t, 105.0, FreeShippingRemaining(45))
	assert.Zero(t, FreeShippingRemaining(FreeShippingThreshold))
	assert.Zero(t, FreeShippingRemaining(280))
}

func TestItems_EmptyCartIsNotNil(t *testing.T) {
	c := newTestCart()
	assert.NotNil(t, c.Items())

	_, err := c.AddItem(logoCap(), domain.SizeOneSize, voidBlack, 1)
	require.NoError(t, err)
	c.Clear()
	assert.NotNil(t, c.Items())
	assert.Len(t, c.Items(), 0)
}

func TestQuantityOf(t *testing.T) {
	c := newTestCart()
	_, err := c.AddItem(tracksuit(), domain.SizeM, burgundy, 3)
	require.NoError(t, err)

	assert.Equal(t, 3, c.QuantityOf(domain.KeyOf("kolor-tracksuit", domain.SizeM, "BURGUNDY")))
	assert.Zero(t, c.QuantityOf(domain.KeyOf("kolor-tracksuit", domain.SizeL, "BURGUNDY")))
}

func TestShippingFor(t *testing.T) {
	assert.Zero(t, ShippingFor(0))
	assert.Equal(t, FlatShippingFee, ShippingFor(149.99))
	assert.Zero(t, ShippingFor(FreeShippingThreshold))
}

func TestAddItem_QuantityLimit(t *testing.T) {
	c := newTestCart()
	c.SetMaxQuantity(DefaultMaxQuantity)

	item, err := c.AddItem(tracksuit(), domain.SizeM, burgundy, 99)
	require.NoError(t, err)
	c.Close()

	_, err = c.AddItem(tracksuit(), domain.SizeM, burgundy, 1)
	assert.ErrorIs(t, err, ErrQuantityLimit)
	assert.Equal(t, 99, c.Items()[0].Quantity)
	assert.False(t, c.IsOpen(), "a rejected add does not open the cart")

	_, err = c.AddItem(tracksuit(), domain.SizeL, burgundy, 100)
	assert.ErrorIs(t, err, ErrQuantityLimit)
	assert.Equal(t, 1, c.Len())

	require.NoError(t, c.CheckQuantity(item.ID, 98))
	assert.True(t, c.UpdateQuantity(item.ID, 98))
	assert.ErrorIs(t, c.CheckQuantity(item.ID, 100), ErrQuantityLimit)
	assert.NoError(t, c.CheckQuantity("missing", 500))
}

func TestCheckQuantity_LoweringAboveCap(t *testing.T) {
	// a line restored from an older snapshot may already sit above the cap
	c := New([]domain.LineItem{{ID: "big", Product: tracksuit(), Quantity: 150, Size: domain.SizeM, Color: burgundy}})
	c.SetMaxQuantity(DefaultMaxQuantity)

	assert.NoError(t, c.CheckQuantity("big", 149))
	assert.ErrorIs(t, c.CheckQuantity("big", 151), ErrQuantityLimit)
}
