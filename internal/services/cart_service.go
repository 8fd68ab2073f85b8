package services

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jumx0202/ordersvc/domain"
	"github.com/jumx0202/ordersvc/internal/validation"
)

// CartServiceImpl implements domain.CartService with process-local state.
// Each instance owns its own item map and id counter; mutations across users
// and concurrent mutations of the same item are serialized by one mutex.
type CartServiceImpl struct {
	mu     sync.RWMutex
	items  map[int64]*domain.CartItem
	nextID int64
}

// NewCartService creates an empty cart engine
func NewCartService() domain.CartService {
	return &CartServiceImpl{items: make(map[int64]*domain.CartItem)}
}

// AddToCart validates the item, merges with an existing line for the same
// (user, food) pair, or inserts a new line with a fresh id.
func (s *CartServiceImpl) AddToCart(item *domain.CartItem) (outcome domain.CartOutcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = domain.CartSystemError
		}
	}()

	if item == nil {
		return domain.CartInvalidItem
	}
	if res := validation.Phone(item.UserPhone); !res.OK {
		return domain.CartInvalidUser
	}
	if res := validation.Quantity(&item.Quantity); !res.OK {
		return domain.CartQuantityOutOfRange
	}
	if res := validation.Amount(&item.UnitPrice); !res.OK {
		return domain.CartPriceOutOfRange
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing := s.findExistingLocked(item.UserPhone, item.FoodID); existing != nil {
		// Same food already in the cart: merge quantities instead of
		// inserting a duplicate line. A merge adds no distinct line, so
		// the capacity check does not apply.
		return s.updateQuantityLocked(existing.ID, existing.Quantity+item.Quantity)
	}

	prospective := s.countUserItemsLocked(item.UserPhone) + 1
	if res := validation.CartItemCount(&prospective); !res.OK {
		return domain.CartLimitExceeded
	}

	s.nextID++
	now := time.Now()
	item.ID = s.nextID
	item.IsValid = 1
	item.CreatedAt = now
	item.UpdatedAt = now
	item.CalculateTotalPrice()
	// The store keeps its own copy so the caller cannot mutate a line
	// behind the mutex after this call returns.
	stored := *item
	s.items[stored.ID] = &stored
	return domain.CartOK
}

// UpdateQuantity sets a new quantity on an existing line and recomputes its
// total price.
func (s *CartServiceImpl) UpdateQuantity(itemID int64, quantity int) (outcome domain.CartOutcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = domain.CartSystemError
		}
	}()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateQuantityLocked(itemID, quantity)
}

// updateQuantityLocked carries the shared quantity-change rules. Callers
// must hold s.mu.
func (s *CartServiceImpl) updateQuantityLocked(itemID int64, quantity int) domain.CartOutcome {
	if itemID <= 0 {
		return domain.CartInvalidItem
	}
	if res := validation.Quantity(&quantity); !res.OK {
		return domain.CartQuantityOutOfRange
	}

	item, ok := s.items[itemID]
	if !ok {
		return domain.CartItemNotFound
	}
	if !item.IsValidItem() {
		return domain.CartItemExpired
	}

	switch {
	case quantity == item.Quantity:
		return domain.CartOK
	case quantity > item.Quantity:
		if !item.CanIncreaseQuantity(quantity - item.Quantity) {
			return domain.CartQuantityAboveMax
		}
	default:
		if !item.CanDecreaseQuantity(item.Quantity - quantity) {
			return domain.CartQuantityBelowMin
		}
	}

	item.Quantity = quantity
	item.CalculateTotalPrice()
	item.UpdatedAt = time.Now()
	return domain.CartOK
}

// RemoveFromCart deletes a single line; false when the id is invalid or absent.
func (s *CartServiceImpl) RemoveFromCart(itemID int64) bool {
	if itemID <= 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[itemID]; !ok {
		return false
	}
	delete(s.items, itemID)
	return true
}

// GetCartItems returns a snapshot of the user's valid lines. The returned
// items are copies; readers never share memory with lines still being
// mutated under the store mutex. An invalid phone yields an empty list,
// not an error.
func (s *CartServiceImpl) GetCartItems(userPhone string) []*domain.CartItem {
	result := []*domain.CartItem{}
	if res := validation.Phone(userPhone); !res.OK {
		return result
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if item.UserPhone == userPhone && item.IsValid == 1 {
			cp := *item
			result = append(result, &cp)
		}
	}
	return result
}

// ClearCart removes every line for the user, valid or not.
func (s *CartServiceImpl) ClearCart(userPhone string) bool {
	if res := validation.Phone(userPhone); !res.OK {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, item := range s.items {
		if item.UserPhone == userPhone {
			delete(s.items, id)
		}
	}
	return true
}

// CalculateTotal sums TotalPrice over the user's valid lines. When the sum
// exceeds the single-order ceiling it returns (zero, true); a legitimate
// empty cart returns (zero, false).
func (s *CartServiceImpl) CalculateTotal(userPhone string) (decimal.Decimal, bool) {
	if res := validation.Phone(userPhone); !res.OK {
		return decimal.Zero, false
	}
	s.mu.RLock()
	total := decimal.Zero
	for _, item := range s.items {
		if item.UserPhone == userPhone && item.IsValid == 1 {
			total = total.Add(item.TotalPrice)
		}
	}
	s.mu.RUnlock()
	if total.GreaterThan(validation.MaxOrderAmount) {
		return decimal.Zero, true
	}
	return total, false
}

// ValidateForCheckout reports whether the cart may proceed to order creation.
func (s *CartServiceImpl) ValidateForCheckout(userPhone string) bool {
	if res := validation.Phone(userPhone); !res.OK {
		return false
	}
	items := s.GetCartItems(userPhone)
	if len(items) == 0 {
		return false
	}
	for _, item := range items {
		if !item.IsValidItem() {
			return false
		}
	}
	total, overLimit := s.CalculateTotal(userPhone)
	if overLimit {
		return false
	}
	if total.LessThanOrEqual(decimal.Zero) {
		return false
	}
	if res := validation.OrderAmount(&total); !res.OK {
		return false
	}
	return true
}

// Statistics renders a human-readable per-user cart summary.
func (s *CartServiceImpl) Statistics(userPhone string) string {
	items := s.GetCartItems(userPhone)
	total, overLimit := s.CalculateTotal(userPhone)

	var b strings.Builder
	fmt.Fprintf(&b, "user: %s\n", userPhone)
	fmt.Fprintf(&b, "distinct items: %d\n", len(items))
	fmt.Fprintf(&b, "total: %s\n", total.StringFixed(2))
	switch {
	case len(items) == 0:
		b.WriteString("status: cart is empty")
	case overLimit:
		b.WriteString("status: over the single-order limit")
	default:
		b.WriteString("status: ready for checkout")
	}
	return b.String()
}

// countUserItemsLocked counts the user's distinct valid lines. Callers must
// hold s.mu.
func (s *CartServiceImpl) countUserItemsLocked(userPhone string) int {
	count := 0
	for _, item := range s.items {
		if item.UserPhone == userPhone && item.IsValid == 1 {
			count++
		}
	}
	return count
}

// findExistingLocked returns the user's valid line for foodID, if any.
// Callers must hold s.mu.
func (s *CartServiceImpl) findExistingLocked(userPhone string, foodID int) *domain.CartItem {
	for _, item := range s.items {
		if item.UserPhone == userPhone && item.FoodID == foodID && item.IsValid == 1 {
			return item
		}
	}
	return nil
}
