package catalog

import "delphine/internal/domain"

// ColorOption is a swatch shown on the product page. Colors are
// deduplicated by (color, hex) with the first occurrence winning.
type ColorOption struct {
	Color string `json:"color"`
	Hex   string `json:"hex"`
}

// ResolveVariant returns the first variant matching both size and
// color, or nil when that combination does not exist.
func ResolveVariant(variants []domain.ProductVariant, size, color string) *domain.ProductVariant {
	for i := range variants {
		if variants[i].Size == size && variants[i].Color == color {
			return &variants[i]
		}
	}
	return nil
}

func Colors(variants []domain.ProductVariant) []ColorOption {
	seen := map[string]bool{}
	var out []ColorOption
	for _, v := range variants {
		key := v.Color + "|" + v.ColorHex
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, ColorOption{Color: v.Color, Hex: v.ColorHex})
	}
	return out
}

func Sizes(variants []domain.ProductVariant) []string {
	seen := map[string]bool{}
	var out []string
	for _, v := range variants {
		if seen[v.Size] {
			continue
		}
		seen[v.Size] = true
		out = append(out, v.Size)
	}
	return out
}

// SizeAvailable reports whether a size button should be enabled for
// the currently selected color: there must be a matching variant with
// stock. Callers must re-check every size when the color changes,
// since selecting a color does not deselect an incompatible size.
func SizeAvailable(variants []domain.ProductVariant, size, selectedColor string) bool {
	v := ResolveVariant(variants, size, selectedColor)
	return v != nil && v.StockQuantity > 0
}

// DisplayPrice is the variant price when set, else the product price.
func DisplayPrice(p domain.Product, v *domain.ProductVariant) float64 {
	if v != nil && v.Price > 0 {
		return v.Price
	}
	return p.Price
}
