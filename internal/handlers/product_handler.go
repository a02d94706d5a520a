package handlers

import (
	"fmt"
	"log"

	"merchshop/internal/models"
	"merchshop/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the shop catalog.
type ProductHandler struct {
	catalog *services.CatalogService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(catalog *services.CatalogService) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
	}
}

// RegisterRoutes registers the catalog routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
}

// HandleListProducts returns the sellable catalog with the requested category
// filter and sort mode applied. A load failure is a 500 with an error body,
// never an empty list: "no products" and "couldn't load products" are
// different facts and the client renders them differently.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	category := c.Query("category", services.CategoryAll)
	if category != services.CategoryAll && !models.Category(category).Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": fmt.Sprintf("Unknown category %q", category),
		})
	}

	sortMode := services.SortMode(c.Query("sort", string(services.SortFeatured)))
	if !services.ValidSortMode(sortMode) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": fmt.Sprintf("Unknown sort mode %q", sortMode),
		})
	}

	products, err := h.catalog.ListActiveProducts(c.UserContext())
	if err != nil {
		log.Printf("Error loading catalog: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load products",
			"error":   err.Error(),
		})
	}

	products = services.FilterByCategory(products, category)
	products = services.SortProducts(products, sortMode)

	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	productID := c.Params("id")
	product, err := h.catalog.GetProductByID(productID)
	if err != nil {
		log.Printf("Error getting product by ID %s: %v", productID, err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Product with ID %s not found", productID),
		})
	}
	return c.JSON(product)
}
