package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"merchshop/internal/gateway"
	"merchshop/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Checkout failure modes the handler maps to distinct responses. All of them
// are recoverable: the caller keeps the entered values and may retry.
var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrCheckoutInFlight = errors.New("a checkout for this session is already in progress")
	ErrInvalidCustomer  = errors.New("customer name, email and phone are all required")
)

// EventPublisher publishes checkout lifecycle events. Publishing is best
// effort; a failure is logged, never surfaced to the customer.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// CheckoutService turns a non-empty cart plus customer contact details into a
// payment-gateway redirect. It validates input, guards against duplicate
// submissions per session, and clears the cart once the gateway has issued a
// payment link.
type CheckoutService struct {
	carts     *CartStore
	initiator gateway.PaymentInitiator
	events    EventPublisher // may be nil
	validate  *validator.Validate

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewCheckoutService creates a new CheckoutService. events may be nil, in
// which case no lifecycle events are published.
func NewCheckoutService(carts *CartStore, initiator gateway.PaymentInitiator, events EventPublisher) *CheckoutService {
	return &CheckoutService{
		carts:     carts,
		initiator: initiator,
		events:    events,
		validate:  validator.New(),
		inFlight:  make(map[string]bool),
	}
}

// Checkout runs the full submission for one session: validate the customer
// fields, serialize the cart into identifier/quantity pairs, call the payment
// gateway, and on success clear the cart and hand back the redirect URL
// verbatim. Validation failures and an empty cart never reach the gateway.
func (s *CheckoutService) Checkout(ctx context.Context, sessionID string, customer models.CustomerInfo) (*models.CheckoutResult, error) {
	if err := s.validate.Struct(customer); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCustomer, err)
	}

	cart := s.carts.Get(sessionID)
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	// Re-entrancy guard: one outstanding submission per session. A second
	// submit while this one is in flight is rejected immediately instead of
	// producing a duplicate checkout request.
	if !s.acquire(sessionID) {
		return nil, ErrCheckoutInFlight
	}
	defer s.release(sessionID)

	req := gateway.PaymentRequest{
		Items:         make([]gateway.CheckoutItem, 0, len(cart.Items)),
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		CustomerPhone: customer.Phone,
	}
	for _, item := range cart.Items {
		req.Items = append(req.Items, gateway.CheckoutItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	session, err := s.initiator.CreatePayment(ctx, req)
	if err != nil {
		// Transport and gateway-declined failures are both recoverable;
		// the cart stays intact so the customer can correct and resubmit.
		return nil, err
	}

	// The redirect is treated as terminal for this cart: clearing here keeps
	// a back-navigation from showing items for an order already placed.
	s.carts.Clear(sessionID)

	result := &models.CheckoutResult{
		Reference:   uuid.New().String(),
		PaymentLink: session.PaymentLink,
	}
	s.publishInitiated(sessionID, result, cart)

	return result, nil
}

func (s *CheckoutService) acquire(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[sessionID] {
		return false
	}
	s.inFlight[sessionID] = true
	return true
}

func (s *CheckoutService) release(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, sessionID)
}

// publishInitiated emits a checkout.initiated event with enough detail for
// downstream consumers (fulfilment, notifications) to pick the order up.
func (s *CheckoutService) publishInitiated(sessionID string, result *models.CheckoutResult, cart *models.Cart) {
	if s.events == nil {
		log.Println("Event publisher is not initialized. Skipping checkout event publication.")
		return
	}

	event := map[string]interface{}{
		"reference": result.Reference,
		"sessionID": sessionID,
		"total":     cart.RoundedTotal(),
		"itemCount": cart.ItemCount(),
		"createdAt": time.Now().Format(time.RFC3339),
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal checkout event: %v", err)
		return
	}
	if err := s.events.Publish("checkout.initiated", body); err != nil {
		log.Printf("Warning: Failed to publish checkout event for reference %s: %v", result.Reference, err)
	} else {
		log.Printf("Successfully published checkout event for reference %s", result.Reference)
	}
}
