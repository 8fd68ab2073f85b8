package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart and quantity limits enforced by the cart engine.
const (
	MinQuantity  = 1
	MaxQuantity  = 999
	MaxCartItems = 50
)

// Order payment states.
const (
	OrderStateUnpaid = 0
	OrderStatePaid   = 1
)

// User represents a registered account, keyed by phone number
type User struct {
	ID            uint
	Phone         string
	Password      string `gorm:"column:password"`
	Name          string
	Email         string
	Gender        string
	LoginAttempts int
	AccountLocked bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CartItem is a single line in a user's cart. Cart items live only in
// process memory and are never persisted.
type CartItem struct {
	ID         int64
	UserPhone  string
	FoodID     int
	FoodName   string
	Quantity   int
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
	BusinessID int
	IsValid    int // 0: invalid, 1: valid
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CalculateTotalPrice recomputes TotalPrice from quantity and unit price.
func (c *CartItem) CalculateTotalPrice() {
	c.TotalPrice = c.UnitPrice.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// IsValidItem reports whether the item satisfies all of its own invariants,
// including TotalPrice == Quantity * UnitPrice.
func (c *CartItem) IsValidItem() bool {
	if c.Quantity <= 0 {
		return false
	}
	if c.UnitPrice.LessThanOrEqual(decimal.Zero) {
		return false
	}
	if c.FoodID <= 0 {
		return false
	}
	if c.UserPhone == "" {
		return false
	}
	if c.BusinessID <= 0 {
		return false
	}
	expected := c.UnitPrice.Mul(decimal.NewFromInt(int64(c.Quantity)))
	if !c.TotalPrice.Equal(expected) {
		return false
	}
	return c.IsValid == 1
}

// CanIncreaseQuantity reports whether adding increment keeps the quantity
// within the upper bound.
func (c *CartItem) CanIncreaseQuantity(increment int) bool {
	if increment <= 0 {
		return false
	}
	return c.Quantity+increment <= MaxQuantity
}

// CanDecreaseQuantity reports whether subtracting decrement keeps the
// quantity within the lower bound.
func (c *CartItem) CanDecreaseQuantity(decrement int) bool {
	if decrement <= 0 {
		return false
	}
	return c.Quantity-decrement >= MinQuantity
}

// Order is a persisted user order. Items holds the ordered food ids as a
// "-" delimited list, matching the legacy storage format.
type Order struct {
	ID         int
	BusinessID int
	UserPhone  string
	Items      string
	Price      decimal.Decimal
	State      int
	CreatedAt  time.Time
}

// OrderDetail is the read-side projection of an order.
type OrderDetail struct {
	ID         int
	BusinessID int
	UserPhone  string
	Items      string
	Price      decimal.Decimal
	State      int
	CreatedAt  time.Time
}

// Session represents a logged-in user session
type Session struct {
	ID        string
	UserPhone string
	ExpiresAt time.Time
	CreatedAt time.Time
}
