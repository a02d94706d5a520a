package services

import (
	"sort"

	"merchshop/internal/models"
)

// SortMode selects how a product listing is ordered.
type SortMode string

const (
	SortFeatured   SortMode = "featured"
	SortPriceAsc   SortMode = "price-asc"
	SortPriceDesc  SortMode = "price-desc"
	SortRatingDesc SortMode = "rating-desc"
)

// CategoryAll is the filter value meaning "no category filter".
const CategoryAll = "all"

// ValidSortMode reports whether m is one of the supported sort modes.
func ValidSortMode(m SortMode) bool {
	switch m {
	case SortFeatured, SortPriceAsc, SortPriceDesc, SortRatingDesc:
		return true
	}
	return false
}

// FilterByCategory returns the products matching the given category filter.
// "all" (or an empty filter) passes everything through. The input slice is
// never mutated.
func FilterByCategory(products []models.Product, category string) []models.Product {
	if category == "" || category == CategoryAll {
		out := make([]models.Product, len(products))
		copy(out, products)
		return out
	}
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.Category == models.Category(category) {
			out = append(out, p)
		}
	}
	return out
}

// SortProducts returns the products ordered by the given mode. Every mode
// sorts stably, so products comparing equal keep their input order and
// repeated listings are deterministic. An unknown mode returns the input
// order unchanged. The input slice is never mutated.
func SortProducts(products []models.Product, mode SortMode) []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)

	switch mode {
	case SortFeatured:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Featured && !out[j].Featured
		})
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price < out[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price > out[j].Price
		})
	case SortRatingDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Rating > out[j].Rating
		})
	}
	return out
}
