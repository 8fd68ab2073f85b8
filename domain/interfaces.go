package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByPhone(ctx context.Context, phone string) (*User, error)
	FindByPhoneAndPassword(ctx context.Context, phone, password string) (*User, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	Update(ctx context.Context, user *User) error
}

// OrderRepository defines order data access operations
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id int) (*Order, error)
	Update(ctx context.Context, order *Order) error
	FindAllByUserPhone(ctx context.Context, phone string) ([]Order, error)
}

// SessionRepository defines session data access operations
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// CartService maintains per-user cart state and enforces checkout rules.
// Cart state is process-local; nothing here touches persistence.
type CartService interface {
	AddToCart(item *CartItem) CartOutcome
	UpdateQuantity(itemID int64, quantity int) CartOutcome
	RemoveFromCart(itemID int64) bool
	GetCartItems(userPhone string) []*CartItem
	ClearCart(userPhone string) bool
	// CalculateTotal returns the sum over valid items. When the sum exceeds
	// the single-order ceiling it returns (zero, true) so callers can tell
	// an over-limit cart from an empty one.
	CalculateTotal(userPhone string) (decimal.Decimal, bool)
	ValidateForCheckout(userPhone string) bool
	Statistics(userPhone string) string
}

// AccountService guards login attempts and owns the registration flow
type AccountService interface {
	Login(ctx context.Context, phone, password string) (*User, error)
	Register(ctx context.Context, phone, password, confirm, name, email string) RegisterOutcome
	CreditLevel(ctx context.Context, phone string) string
}

// OrderService owns the unpaid -> paid order lifecycle
type OrderService interface {
	CreateOrder(ctx context.Context, businessID int, userPhone string, itemIDs []int, price decimal.Decimal) (int, error)
	MarkPaid(ctx context.Context, orderID int) bool
	GetOrderDetail(ctx context.Context, orderID int) *OrderDetail
	ListByUser(ctx context.Context, phone string) ([]Order, error)
}

// CaptchaService issues and verifies single-use captcha challenges
type CaptchaService interface {
	Create() (id, code string, err error)
	Verify(id, code string) bool
}

// EmailVerificationService issues and verifies single-use e-mail codes
type EmailVerificationService interface {
	SendCode(ctx context.Context, email string) error
	VerifyCode(email, code string) bool
}

// CaptchaRenderer turns a captcha code into an image. Rendering is an
// external collaborator; the engine never depends on its output.
type CaptchaRenderer interface {
	Render(code string) (data []byte, contentType string, err error)
}

// TokenService defines access/refresh token operations
type TokenService interface {
	GenerateAccessToken(phone string, sessionID string) (string, error)
	GenerateRefreshToken(phone string, sessionID string) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
}

// TokenClaims represents JWT token claims
type TokenClaims struct {
	Phone     string `json:"phone"`
	SessionID string `json:"session_id,omitempty"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// NotificationService defines outbound notification operations
type NotificationService interface {
	SendSMS(to, message string) error
	SendEmail(to, subject, body string) error
}
