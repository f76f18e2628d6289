package catalog

import (
	"sort"
	"strconv"
)

// LowStockThreshold is the stock level at or below which the detail
// page shows a "last pieces" warning.
const LowStockThreshold = 5

// InitialSelection picks the variant shown when the detail page first
// loads: the first variant with stock, or the first variant at all when
// everything is sold out. Returns nil only for a variant-less product.
func InitialSelection(p Product) *Variant {
	for i := range p.Variants {
		if p.Variants[i].Stock > 0 {
			v := p.Variants[i]
			return &v
		}
	}
	if len(p.Variants) > 0 {
		v := p.Variants[0]
		return &v
	}
	return nil
}

// SelectSize resolves a size change against the currently selected
// color. When no variant matches (size, current.Color) the current
// selection is kept: changing only the size must not silently jump to
// another color. Stock is not checked; a sold-out match stays
// selectable for display.
func SelectSize(p Product, current *Variant, size string) *Variant {
	if current == nil {
		return nil
	}
	for i := range p.Variants {
		if p.Variants[i].Size == size && p.Variants[i].Color == current.Color {
			v := p.Variants[i]
			return &v
		}
	}
	return current
}

// SelectColor resolves a color change: prefer an in-stock variant of
// that color, fall back to any variant of that color, nil when the
// color does not exist at all.
func SelectColor(p Product, color string) *Variant {
	var fallback *Variant
	for i := range p.Variants {
		v := p.Variants[i]
		if v.Color != color {
			continue
		}
		if v.Stock > 0 {
			return &v
		}
		if fallback == nil {
			fallback = &v
		}
	}
	return fallback
}

// AvailableSizes returns the distinct sizes of a product sorted
// numerically ascending (shoe sizes are stored as text, "8.5" etc).
func AvailableSizes(p Product) []string {
	seen := make(map[string]struct{}, len(p.Variants))
	sizes := make([]string, 0, len(p.Variants))
	for _, v := range p.Variants {
		if _, ok := seen[v.Size]; ok {
			continue
		}
		seen[v.Size] = struct{}{}
		sizes = append(sizes, v.Size)
	}
	sort.Slice(sizes, func(i, j int) bool {
		a, errA := strconv.ParseFloat(sizes[i], 64)
		b, errB := strconv.ParseFloat(sizes[j], 64)
		if errA == nil && errB == nil {
			return a < b
		}
		if (errA == nil) != (errB == nil) {
			// numeric sizes sort before odd ones
			return errA == nil
		}
		return sizes[i] < sizes[j]
	})
	return sizes
}

// AvailableColors returns the distinct colors in first-seen order.
func AvailableColors(p Product) []string {
	seen := make(map[string]struct{}, len(p.Variants))
	colors := make([]string, 0, len(p.Variants))
	for _, v := range p.Variants {
		if _, ok := seen[v.Color]; ok {
			continue
		}
		seen[v.Color] = struct{}{}
		colors = append(colors, v.Color)
	}
	return colors
}

// IsPurchasable reports whether a variant can be added to the cart.
func IsPurchasable(v *Variant) bool {
	return v != nil && v.Stock > 0
}

// IsLowStock reports whether the detail page should warn about
// remaining pieces.
func IsLowStock(v *Variant) bool {
	return v != nil && v.Stock > 0 && v.Stock <= LowStockThreshold
}
