package catalog

import (
	"time"

	"github.com/fjod/go_cart/storefront/internal/domain"
)

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

var (
	black         = domain.ColorVariant{Name: "Black", Hex: "#000000", Available: true}
	charcoal      = domain.ColorVariant{Name: "Charcoal", Hex: "#1A1A1A", Available: true}
	burgundy      = domain.ColorVariant{Name: "Burgundy", Hex: "#722F37", Available: true}
	offWhite      = domain.ColorVariant{Name: "Off White", Hex: "#FAFAFA", Available: true}
	militaryOlive = domain.ColorVariant{Name: "Military Olive", Hex: "#4A5D23", Available: true}
	burntOrange   = domain.ColorVariant{Name: "Burnt Orange", Hex: "#FF6B35", Available: true}
)

func unsplash(id, photo, alt string, main bool) domain.ProductImage {
	return domain.ProductImage{
		ID:     id,
		URL:    "https://images.unsplash.com/" + photo + "?w=800&q=80",
		Alt:    alt,
		IsMain: main,
	}
}

// DefaultProducts returns the brand's seed catalog, the hero tracksuit first.
func DefaultProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          "kolor-tracksuit",
			Slug:        "kolor-tracksuit",
			Name:        "KOLOR TRACKSUIT",
			Price:       280,
			Description: "Full tracksuit set. Premium heavyweight cotton. Zip-up hoodie with matching pants. Oversized fit. KC monogram embroidery.",
			Category:    domain.CategorySets,
			Images: []domain.ProductImage{
				{ID: "ts-1", URL: "/black-hoodie.png", Alt: "KOLOR Tracksuit Hoodie Void Black", IsMain: true},
				{ID: "ts-2", URL: "/black-pants.png", Alt: "KOLOR Tracksuit Pants Void Black"},
				{ID: "ts-3", URL: "/burgundy-hoodie.png", Alt: "KOLOR Tracksuit Hoodie Burgundy"},
				{ID: "ts-4", URL: "/burgundy-pants.png", Alt: "KOLOR Tracksuit Pants Burgundy"},
			},
			Sizes: []domain.Size{domain.SizeS, domain.SizeM, domain.SizeL, domain.SizeXL, domain.SizeXXL},
			Colors: []domain.ColorVariant{
				{Name: "VOID BLACK", Hex: "#0A0A0A", Available: true},
				{Name: "BURGUNDY", Hex: "#722F37", Available: true},
			},
			InStock:   true,
			Featured:  true,
			New:       true,
			CreatedAt: day("2024-02-01"),
		},
		{
			ID:          "1",
			Slug:        "kolor-essential-hoodie",
			Name:        "KOLOR Essential Hoodie",
			Price:       120,
			Description: "Premium heavyweight hoodie crafted from 100% organic cotton. Features the iconic KC monogram with hand-drawn vine illustrations embroidered on the chest. Oversized fit for ultimate comfort.",
			Category:    domain.CategoryHoodies,
			Images: []domain.ProductImage{
				unsplash("1-1", "photo-1556821840-3a63f95609a7", "KOLOR Essential Hoodie Front", true),
				unsplash("1-2", "photo-1578662996442-48f60103fc96", "KOLOR Essential Hoodie Back", false),
			},
			Sizes:     []domain.Size{domain.SizeS, domain.SizeM, domain.SizeL, domain.SizeXL, domain.SizeXXL},
			Colors:    []domain.ColorVariant{black, charcoal, burgundy},
			InStock:   true,
			Featured:  true,
			New:       true,
			CreatedAt: day("2024-01-15"),
		},
		{
			ID:          "2",
			Slug:        "reality-check-tee",
			Name:        "Reality Check Tee",
			Price:       65,
			Description: `"No kolor just reality" printed in distressed typography. Made from premium 220gsm cotton with a relaxed fit. The perfect statement piece for those who question the mundane.`,
			Category:    domain.CategoryTShirts,
			Images: []domain.ProductImage{
				unsplash("2-1", "photo-1521572163474-6864f9cf17ab", "Reality Check Tee Front", true),
			},
			Sizes:     []domain.Size{domain.SizeXS, domain.SizeS, domain.SizeM, domain.SizeL, domain.SizeXL},
			Colors:    []domain.ColorVariant{offWhite, black},
			InStock:   true,
			Featured:  true,
			CreatedAt: day("2024-01-10"),
		},
		{
			ID:          "3",
			Slug:        "vine-monogram-crewneck",
			Name:        "Vine Monogram Crewneck",
			Price:       95,
			Description: "Luxurious crewneck sweatshirt featuring the KC monogram with organic vine illustrations. Crafted from heavyweight french terry with ribbed cuffs and hem.",
			Category:    domain.CategoryHoodies,
			Images: []domain.ProductImage{
				unsplash("3-1", "photo-1618354691373-d851c5c3a990", "Vine Monogram Crewneck", true),
			},
			Sizes: []domain.Size{domain.SizeS, domain.SizeM, domain.SizeL, domain.SizeXL},
			Colors: []domain.ColorVariant{
				militaryOlive,
				{Name: "Dusty Rose", Hex: "#C4A4A4", Available: true},
				{Name: "Black", Hex: "#000000", Available: false},
			},
			InStock:   true,
			New:       true,
			CreatedAt: day("2024-01-20"),
		},
		{
			ID:          "4",
			Slug:        "kolor-cargo-pants",
			Name:        "Kolor Cargo Pants",
			Price:       145,
			Description: "Technical cargo pants with adjustable straps and multiple utility pockets. Features contrast stitching and the KOLOR wordmark embroidered on the back pocket.",
			Category:    domain.CategoryPants,
			Images: []domain.ProductImage{
				unsplash("4-1", "photo-1624378439575-d8705ad7ae80", "Kolor Cargo Pants", true),
			},
			Sizes:     []domain.Size{domain.SizeS, domain.SizeM, domain.SizeL, domain.SizeXL},
			Colors:    []domain.ColorVariant{black, charcoal},
			InStock:   true,
			Featured:  true,
			CreatedAt: day("2024-01-05"),
		},
		{
			ID:          "5",
			Slug:        "awakening-jacket",
			Name:        "Awakening Jacket",
			Price:       220,
			Description: `Oversized coach jacket with hidden hood. Features the full KOLOR philosophy text printed on the back: "I thought life was full of kolor." Water-resistant nylon shell.`,
			Category:    domain.CategoryJackets,
			Images: []domain.ProductImage{
				unsplash("5-1", "photo-1591047139829-d91aecb6caea", "Awakening Jacket", true),
			},
			Sizes:     []domain.Size{domain.SizeM, domain.SizeL, domain.SizeXL, domain.SizeXXL},
			Colors:    []domain.ColorVariant{black, burntOrange},
			InStock:   true,
			Featured:  true,
			New:       true,
			CreatedAt: day("2024-01-25"),
		},
		{
			ID:          "6",
			Slug:        "klr-logo-cap",
			Name:        "KLR Logo Cap",
			Price:       45,
			Description: "Unstructured dad cap featuring the KLR shorthand embroidered in a contrasting thread. Adjustable strap with metal buckle for the perfect fit.",
			Category:    domain.CategoryAccessories,
			Images: []domain.ProductImage{
				unsplash("6-1", "photo-1588850561407-ed78c282e89b", "KLR Logo Cap", true),
			},
			Sizes:     []domain.Size{domain.SizeOneSize},
			Colors:    []domain.ColorVariant{black, offWhite, burntOrange},
			InStock:   true,
			CreatedAt: day("2024-01-08"),
		},
		{
			ID:          "7",
			Slug:        "philosophy-long-sleeve",
			Name:        "Philosophy Long Sleeve",
			Price:       75,
			Description: "Heavyweight long sleeve tee with the complete KOLOR philosophy printed along the sleeves. Features thumbhole cuffs and dropped shoulders.",
			Category:    domain.CategoryTShirts,
			Images: []domain.ProductImage{
				unsplash("7-1", "photo-1503342217505-b0a15ec3261c", "Philosophy Long Sleeve", true),
			},
			Sizes:     []domain.Size{domain.SizeS, domain.SizeM, domain.SizeL, domain.SizeXL},
			Colors:    []domain.ColorVariant{black, charcoal},
			InStock:   true,
			CreatedAt: day("2024-01-12"),
		},
		{
			ID:          "8",
			Slug:        "essentials-joggers",
			Name:        "Essentials Joggers",
			Price:       110,
			Description: "Premium heavyweight joggers with elastic waistband and cuffed ankles. Subtle KOLOR branding on the left thigh. Perfect for elevated casual wear.",
			Category:    domain.CategoryPants,
			Images: []domain.ProductImage{
				unsplash("8-1", "photo-1552902865-b72c031ac5ea", "Essentials Joggers", true),
			},
			Sizes:     []domain.Size{domain.SizeS, domain.SizeM, domain.SizeL, domain.SizeXL, domain.SizeXXL},
			Colors:    []domain.ColorVariant{black, charcoal, militaryOlive},
			InStock:   true,
			CreatedAt: day("2024-01-18"),
		},
	}
}
