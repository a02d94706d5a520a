package models

import "gorm.io/gorm"

// Category is the fixed set of merchandise categories.
type Category string

const (
	CategoryApparel     Category = "apparel"
	CategoryAccessories Category = "accessories"
	CategoryTech        Category = "tech"
	CategoryBooks       Category = "books"
	CategoryStickers    Category = "stickers"
)

// Categories lists every valid category, in display order.
var Categories = []Category{
	CategoryApparel,
	CategoryAccessories,
	CategoryTech,
	CategoryBooks,
	CategoryStickers,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Product represents a single piece of merchandise in the shop.
// OriginalPrice, when set, is the pre-discount price shown struck through.
type Product struct {
	ID            string   `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name          string   `json:"name" validate:"required,min=3,max=100"`
	Description   string   `json:"description" validate:"omitempty,max=500"`
	Price         float64  `json:"price" validate:"required,gt=0"`
	OriginalPrice float64  `json:"original_price,omitempty" validate:"omitempty,gt=0"`
	ImageURL      string   `json:"image_url" validate:"omitempty,url"`
	Category      Category `json:"category" gorm:"type:varchar(20)" validate:"required,oneof=apparel accessories tech books stickers"`
	InStock       bool     `json:"in_stock"`
	Rating        float64  `json:"rating" validate:"gte=0,lte=5"`
	ReviewCount   int      `json:"review_count" validate:"gte=0"`
	Featured      bool     `json:"featured"`
	Active        bool     `json:"active"`
	DisplayOrder  int      `json:"display_order"`
	gorm.Model             // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
