package handlers

import (
	"errors"
	"log"

	"merchshop/internal/gateway"
	"merchshop/internal/middleware"
	"merchshop/internal/models"
	"merchshop/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CheckoutHandler handles the checkout submission.
type CheckoutHandler struct {
	service *services.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
	}
}

// RegisterRoutes registers the checkout route with the Fiber app.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/checkout", h.HandleCheckout)
}

// HandleCheckout submits the session's cart for payment. The response uses
// the same success/data/error envelope the client consumes from the payment
// flow: on success data.paymentLink is the URL to navigate to, verbatim.
func (h *CheckoutHandler) HandleCheckout(c *fiber.Ctx) error {
	var customer models.CustomerInfo
	if err := c.BodyParser(&customer); err != nil {
		log.Printf("Error parsing checkout body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	result, err := h.service.Checkout(c.UserContext(), middleware.SessionID(c), customer)
	if err != nil {
		return h.checkoutError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"paymentLink": result.PaymentLink,
			"reference":   result.Reference,
		},
	})
}

// checkoutError maps the service's failure modes onto status codes. Every
// branch keeps the flow recoverable for the client: the entered values are
// theirs to retain, and a retry is always allowed once this response lands.
func (h *CheckoutHandler) checkoutError(c *fiber.Ctx, err error) error {
	log.Printf("Checkout failed: %v", err)

	var declined *gateway.DeclinedError
	switch {
	case errors.Is(err, services.ErrInvalidCustomer), errors.Is(err, services.ErrEmptyCart):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	case errors.Is(err, services.ErrCheckoutInFlight):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	case errors.As(err, &declined):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"error":   declined.Message,
		})
	default:
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"error":   "Could not reach the payment service. Please try again.",
		})
	}
}
