package services_test

import (
	"context"
	"fmt"
	"testing"

	"merchshop/internal/models"
	"merchshop/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll() ([]models.Product, error) {
	args := m.Called()
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetActive() ([]models.Product, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func TestCatalogService_ListActiveProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewCatalogService(mockRepo)

	expected := []models.Product{
		{ID: "1", Name: "Conference Tee", Price: 29.0, Active: true},
		{ID: "2", Name: "Sticker Pack", Price: 9.0, Active: true},
	}

	mockRepo.On("GetActive").Return(expected, nil).Once()

	products, err := service.ListActiveProducts(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, expected, products)
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_ListActiveProducts_Failure(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewCatalogService(mockRepo)

	// A load failure surfaces as an error, not as an empty catalog.
	mockRepo.On("GetActive").Return(nil, fmt.Errorf("connection refused")).Once()

	products, err := service.ListActiveProducts(context.Background())
	assert.Error(t, err)
	assert.Nil(t, products)
	assert.Contains(t, err.Error(), "failed to load catalog")
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_ListActiveProducts_CanceledContext(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewCatalogService(mockRepo)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A torn-down caller never reaches the repository.
	_, err := service.ListActiveProducts(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	mockRepo.AssertNumberOfCalls(t, "GetActive", 0)
}

func TestCatalogService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewCatalogService(mockRepo)

	expected := &models.Product{ID: "1", Name: "Conference Tee", Price: 29.0}

	mockRepo.On("GetByID", "1").Return(expected, nil).Once()
	product, err := service.GetProductByID("1")
	assert.NoError(t, err)
	assert.Equal(t, expected, product)

	mockRepo.On("GetByID", "99").Return(nil, fmt.Errorf("product with ID 99 not found")).Once()
	product, err = service.GetProductByID("99")
	assert.Error(t, err)
	assert.Nil(t, product)
	assert.Contains(t, err.Error(), "not found")
	mockRepo.AssertExpectations(t)
}
