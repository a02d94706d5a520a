package handlers

import (
	"fmt"
	"log"

	"merchshop/internal/middleware"
	"merchshop/internal/models"
	"merchshop/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the session cart and the transient
// "recently added" feedback markers.
type CartHandler struct {
	carts    *services.CartStore
	catalog  *services.CatalogService
	feedback *services.FeedbackTracker
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(carts *services.CartStore, catalog *services.CatalogService, feedback *services.FeedbackTracker) *CartHandler {
	return &CartHandler{
		carts:    carts,
		catalog:  catalog,
		feedback: feedback,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Get("/recent", h.HandleGetRecentlyAdded)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:productId", h.HandleUpdateQuantity)
	cartRoutes.Delete("/items/:productId", h.HandleRemoveItem)
}

// cartResponse renders a cart with its total rounded to currency precision.
// Rounding happens only here, at the display edge.
func cartResponse(cart *models.Cart) fiber.Map {
	return fiber.Map{
		"id":         cart.ID,
		"items":      cart.Items,
		"total":      cart.RoundedTotal(),
		"item_count": cart.ItemCount(),
	}
}

// HandleGetCart returns the session's current cart.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	cart := h.carts.Get(middleware.SessionID(c))
	return c.JSON(cartResponse(cart))
}

// HandleAddItem adds a product to the session's cart. The product must exist,
// be active, and be in stock; the cart itself stores whatever snapshot it is
// handed, so availability is enforced here at the edge.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var payload struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing add-to-cart body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if payload.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "product_id is required",
		})
	}
	if payload.Quantity == 0 {
		payload.Quantity = 1
	}

	product, err := h.catalog.GetProductByID(payload.ProductID)
	if err != nil {
		log.Printf("Error getting product %s for cart add: %v", payload.ProductID, err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Product with ID %s not found", payload.ProductID),
		})
	}
	if !product.Active || !product.InStock {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": fmt.Sprintf("Product %s is not available", product.Name),
		})
	}

	sessionID := middleware.SessionID(c)
	cart, err := h.carts.AddItem(sessionID, *product, payload.Quantity)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not add product to cart",
			"error":   err.Error(),
		})
	}

	// The same add event feeds the cosmetic marker; it has no bearing on
	// the cart's correctness.
	h.feedback.MarkAdded(product.ID)

	return c.Status(fiber.StatusCreated).JSON(cartResponse(cart))
}

// HandleUpdateQuantity replaces a line's quantity. A quantity of zero or less
// removes the line.
func (h *CartHandler) HandleUpdateQuantity(c *fiber.Ctx) error {
	productID := c.Params("productId")
	var payload struct {
		Quantity int `json:"quantity"`
	}
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing quantity update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	cart := h.carts.UpdateQuantity(middleware.SessionID(c), productID, payload.Quantity)
	return c.JSON(cartResponse(cart))
}

// HandleRemoveItem removes a line from the cart. Removing an absent product
// succeeds with the unchanged cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	productID := c.Params("productId")
	cart := h.carts.RemoveItem(middleware.SessionID(c), productID)
	return c.JSON(cartResponse(cart))
}

// HandleGetRecentlyAdded returns the product IDs whose "just added" markers
// are still visible.
func (h *CartHandler) HandleGetRecentlyAdded(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"product_ids": h.feedback.Recent(),
	})
}
