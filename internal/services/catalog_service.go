package services

import (
	"context"
	"fmt"

	"merchshop/internal/models"
	"merchshop/internal/repositories"
)

// CatalogService handles read access to the merchandise catalog.
type CatalogService struct {
	repo repositories.ProductRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo repositories.ProductRepository) *CatalogService {
	return &CatalogService{
		repo: repo,
	}
}

// ListActiveProducts retrieves the currently sellable products. A failure here
// is distinct from an empty catalog: callers render "couldn't load products"
// on error and "no products" on an empty slice. The call is not retried.
func (s *CatalogService) ListActiveProducts(ctx context.Context) ([]models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	products, err := s.repo.GetActive()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return products, nil
}

// GetProductByID retrieves a single product by its ID.
func (s *CatalogService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}
