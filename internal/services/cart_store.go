package services

import (
	"fmt"
	"sync"

	"merchshop/internal/models"
)

// CartStore owns the in-memory carts, one per browsing session. Each session
// has a single logical writer (the user driving it), but HTTP requests from
// different sessions land concurrently, so access is mutex-guarded the same
// way the in-memory repositories are.
type CartStore struct {
	carts map[string]*models.Cart
	mu    sync.RWMutex
}

// NewCartStore creates an empty CartStore.
func NewCartStore() *CartStore {
	return &CartStore{
		carts: make(map[string]*models.Cart),
	}
}

// AddItem adds quantity units of product to the session's cart. If the
// product is already in the cart the quantities are summed rather than a
// second line being created. The stored line holds a value copy of product,
// so later catalog changes do not alter it. Quantity must be at least 1.
func (s *CartStore) AddItem(sessionID string, product models.Product, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1, got %d", quantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cartLocked(sessionID)
	for i := range cart.Items {
		if cart.Items[i].ProductID == product.ID {
			cart.Items[i].Quantity += quantity
			cart.RecomputeTotal()
			return copyCart(cart), nil
		}
	}

	cart.Items = append(cart.Items, models.CartItem{
		ProductID: product.ID,
		Quantity:  quantity,
		Product:   product,
	})
	cart.RecomputeTotal()
	return copyCart(cart), nil
}

// RemoveItem removes the product's line from the session's cart. Removing a
// product that is not in the cart is a no-op, not an error.
func (s *CartStore) RemoveItem(sessionID, productID string) *models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyCart(s.removeLocked(sessionID, productID))
}

// UpdateQuantity replaces the quantity of the product's line. A quantity of
// zero or less is defined to mean removal: there is no representable
// zero-quantity line.
func (s *CartStore) UpdateQuantity(sessionID, productID string, quantity int) *models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		return copyCart(s.removeLocked(sessionID, productID))
	}

	cart := s.cartLocked(sessionID)
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = quantity
			break
		}
	}
	cart.RecomputeTotal()
	return copyCart(cart)
}

// Get returns a copy of the session's cart. An unknown session yields an
// empty cart.
func (s *CartStore) Get(sessionID string) *models.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.carts[sessionID]
	if !ok {
		return &models.Cart{ID: sessionID, Items: []models.CartItem{}}
	}
	return copyCart(cart)
}

// Clear empties the session's cart. Idempotent for unknown sessions.
func (s *CartStore) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

// cartLocked returns the session's live cart, creating it on first use.
// Callers must hold the write lock.
func (s *CartStore) cartLocked(sessionID string) *models.Cart {
	cart, ok := s.carts[sessionID]
	if !ok {
		cart = &models.Cart{ID: sessionID, Items: []models.CartItem{}}
		s.carts[sessionID] = cart
	}
	return cart
}

// removeLocked drops the product's line and recomputes the total. Callers
// must hold the write lock.
func (s *CartStore) removeLocked(sessionID, productID string) *models.Cart {
	cart := s.cartLocked(sessionID)
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			break
		}
	}
	cart.RecomputeTotal()
	return cart
}

// copyCart returns a detached copy so callers cannot mutate store state.
func copyCart(cart *models.Cart) *models.Cart {
	out := &models.Cart{
		ID:    cart.ID,
		Items: make([]models.CartItem, len(cart.Items)),
		Total: cart.Total,
	}
	copy(out.Items, cart.Items)
	return out
}
