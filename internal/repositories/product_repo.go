package repositories

import (
	"merchshop/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	// GetActive returns the currently sellable products (Active flag set),
	// ordered by display order. This is what the shop catalog renders.
	GetActive() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}
