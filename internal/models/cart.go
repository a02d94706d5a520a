package models

import "math"

// CartItem is a single line in a cart. Product is a value copy taken at the
// moment the item was added, so later catalog edits do not retroactively
// change lines already in the cart.
type CartItem struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Product   Product `json:"product"` // snapshot at add time
}

// Cart holds a session's cart lines in insertion order plus the derived total.
// Total is kept at full float64 precision; rounding to the currency's two
// minor-unit decimals happens only at display/submission via RoundedTotal.
type Cart struct {
	ID    string     `json:"id"`
	Items []CartItem `json:"items"`
	Total float64    `json:"-"`
}

// RecomputeTotal rebuilds Total from scratch over every line. Callers must
// invoke it after each mutation; recomputing rather than incrementing is what
// keeps the total from drifting across many small changes.
func (c *Cart) RecomputeTotal() {
	var sum float64
	for _, item := range c.Items {
		sum += item.Product.Price * float64(item.Quantity)
	}
	c.Total = sum
}

// RoundedTotal returns Total rounded to 2 decimal places.
func (c *Cart) RoundedTotal() float64 {
	return math.Round(c.Total*100) / 100
}

// ItemCount returns the total number of units across all lines.
func (c *Cart) ItemCount() int {
	var n int
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
