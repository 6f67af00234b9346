package domain

import "time"

// Size is a garment size label as printed on the product page.
type Size string

const (
	SizeXS      Size = "XS"
	SizeS       Size = "S"
	SizeM       Size = "M"
	SizeL       Size = "L"
	SizeXL      Size = "XL"
	SizeXXL     Size = "XXL"
	SizeOneSize Size = "ONE SIZE"
)

// Category groups products on the shop page. CategoryAll is a query value, never a product's own tag.
type Category string

const (
	CategoryAll         Category = "all"
	CategoryHoodies     Category = "hoodies"
	CategoryTShirts     Category = "t-shirts"
	CategoryPants       Category = "pants"
	CategoryJackets     Category = "jackets"
	CategoryAccessories Category = "accessories"
	CategorySets        Category = "sets"
)

type ProductImage struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Alt    string `json:"alt"`
	IsMain bool   `json:"is_main,omitempty"`
}

// ColorVariant is one color a product is made in. Name is unique within a product.
type ColorVariant struct {
	Name      string `json:"name"`
	Hex       string `json:"hex"`
	Available bool   `json:"available"`
}

type Product struct {
	ID             string         `json:"id"`
	Slug           string         `json:"slug"`
	Name           string         `json:"name"`
	Price          float64        `json:"price"`
	CompareAtPrice float64        `json:"compare_at_price,omitempty"`
	Description    string         `json:"description"`
	Category       Category       `json:"category"`
	Images         []ProductImage `json:"images"`
	Sizes          []Size         `json:"sizes"`
	Colors         []ColorVariant `json:"colors"`
	InStock        bool           `json:"in_stock"`
	Featured       bool           `json:"featured,omitempty"`
	New            bool           `json:"new,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// HasSize reports whether the product is offered in size s.
func (p Product) HasSize(s Size) bool {
	for _, size := range p.Sizes {
		if size == s {
			return true
		}
	}
	return false
}

// Color looks up a color variant by name.
func (p Product) Color(name string) (ColorVariant, bool) {
	for _, c := range p.Colors {
		if c.Name == name {
			return c, true
		}
	}
	return ColorVariant{}, false
}

// MainImage returns the image flagged as main, falling back to the first one.
func (p Product) MainImage() (ProductImage, bool) {
	for _, img := range p.Images {
		if img.IsMain {
			return img, true
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0], true
	}
	return ProductImage{}, false
}

// Clone returns a deep copy so a cart line item never shares slices with the catalog.
func (p Product) Clone() Product {
	c := p
	c.Images = append([]ProductImage(nil), p.Images...)
	c.Sizes = append([]Size(nil), p.Sizes...)
	c.Colors = append([]ColorVariant(nil), p.Colors...)
	return c
}
