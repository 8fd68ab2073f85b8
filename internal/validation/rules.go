// Package validation holds the pure boundary-check rules shared by the cart
// engine, the account guard and the registration flow. Every rule is a total
// function: it never panics, performs no I/O and mutates nothing.
package validation

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Business boundaries. All bounds are inclusive on both ends.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 20
	MinUsernameLength = 2
	MaxUsernameLength = 20
	MinEmailLength    = 5
	MaxEmailLength    = 100
	PhoneLength       = 11
	MinAddressLength  = 5
	MaxAddressLength  = 200
	MinQuantity       = 1
	MaxQuantity       = 999
	MaxCartItems      = 50
	MaxLoginAttempts  = 5
)

// Monetary boundaries.
var (
	MinAmount      = decimal.RequireFromString("0.01")
	MaxAmount      = decimal.RequireFromString("9999.99")
	MaxOrderAmount = decimal.RequireFromString("5000.00")
)

var (
	phoneRE    = regexp.MustCompile(`^1[3-9]\d{9}$`)
	emailRE    = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	usernameRE = regexp.MustCompile(`^[\x{4e00}-\x{9fa5}A-Za-z0-9_]{2,20}$`)
)

// Result is the outcome of a single rule: success, or failure with a reason.
// Construct only via OK and Fail.
type Result struct {
	OK     bool
	Reason string
}

// OK returns a success result.
func OK() Result { return Result{OK: true} }

// Fail returns a failure result carrying the reason.
func Fail(reason string) Result { return Result{Reason: reason} }

// Phone validates an 11-digit mobile number: starts with 1, second digit 3-9.
func Phone(phone string) Result {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return Fail("phone number must not be empty")
	}
	if len(phone) < PhoneLength {
		return Fail("phone number too short, must be 11 digits")
	}
	if len(phone) > PhoneLength {
		return Fail("phone number too long, must be 11 digits")
	}
	if !phoneRE.MatchString(phone) {
		return Fail("phone number must start with 1 and have 3-9 as second digit")
	}
	return OK()
}

// Email validates address length [5,100] and an RFC-lite local@domain.tld shape.
func Email(email string) Result {
	email = strings.TrimSpace(email)
	if email == "" {
		return Fail("email must not be empty")
	}
	if len(email) < MinEmailLength {
		return Fail("email too short, at least 5 characters")
	}
	if len(email) > MaxEmailLength {
		return Fail("email too long, at most 100 characters")
	}
	if !emailRE.MatchString(email) {
		return Fail("email format is invalid")
	}
	return OK()
}

// Password validates length [6,20] and composition: at least one letter and
// one digit, optionally characters from @$!%*#?&.
func Password(password string) Result {
	if password == "" {
		return Fail("password must not be empty")
	}
	if len(password) < MinPasswordLength {
		return Fail("password too short, at least 6 characters")
	}
	if len(password) > MaxPasswordLength {
		return Fail("password too long, at most 20 characters")
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune("@$!%*#?&", r):
		default:
			return Fail("password must contain only letters, digits and @$!%*#?&")
		}
	}
	if !hasLetter || !hasDigit {
		return Fail("password must contain at least one letter and one digit")
	}
	return OK()
}

// Username validates length [2,20] over CJK ideographs, ASCII letters,
// digits and underscore.
func Username(username string) Result {
	username = strings.TrimSpace(username)
	if username == "" {
		return Fail("username must not be empty")
	}
	runes := []rune(username)
	if len(runes) < MinUsernameLength {
		return Fail("username too short, at least 2 characters")
	}
	if len(runes) > MaxUsernameLength {
		return Fail("username too long, at most 20 characters")
	}
	if !usernameRE.MatchString(username) {
		return Fail("username may contain only CJK characters, letters, digits and underscore")
	}
	return OK()
}

// Gender accepts exactly one of the closed three-value set.
func Gender(gender string) Result {
	gender = strings.TrimSpace(gender)
	if gender == "" {
		return Fail("gender must not be empty")
	}
	switch gender {
	case "male", "female", "unknown":
		return OK()
	}
	return Fail("gender must be one of male, female or unknown")
}

// Address validates length [5,200].
func Address(address string) Result {
	address = strings.TrimSpace(address)
	if address == "" {
		return Fail("address must not be empty")
	}
	runes := []rune(address)
	if len(runes) < MinAddressLength {
		return Fail("address too short, at least 5 characters")
	}
	if len(runes) > MaxAddressLength {
		return Fail("address too long, at most 200 characters")
	}
	return OK()
}

// Quantity validates an item quantity in [1,999]. A nil quantity fails.
func Quantity(quantity *int) Result {
	if quantity == nil {
		return Fail("quantity must not be empty")
	}
	if *quantity < MinQuantity {
		return Fail("quantity must not be less than 1")
	}
	if *quantity > MaxQuantity {
		return Fail("quantity must not be greater than 999")
	}
	return OK()
}

// Amount validates a monetary amount in [0.01,9999.99]. A nil amount fails.
func Amount(amount *decimal.Decimal) Result {
	if amount == nil {
		return Fail("amount must not be empty")
	}
	if amount.LessThan(MinAmount) {
		return Fail("amount must not be less than 0.01")
	}
	if amount.GreaterThan(MaxAmount) {
		return Fail("amount must not be greater than 9999.99")
	}
	return OK()
}

// OrderAmount applies Amount plus the single-order ceiling of 5000.00.
func OrderAmount(amount *decimal.Decimal) Result {
	if res := Amount(amount); !res.OK {
		return res
	}
	if amount.GreaterThan(MaxOrderAmount) {
		return Fail("a single order must not exceed 5000.00")
	}
	return OK()
}

// CartItemCount validates the number of distinct cart items in [0,50].
// Callers pass the count after the prospective add.
func CartItemCount(count *int) Result {
	if count == nil {
		return Fail("cart item count must not be empty")
	}
	if *count < 0 {
		return Fail("cart item count must not be negative")
	}
	if *count > MaxCartItems {
		return Fail("cart may hold at most 50 distinct items")
	}
	return OK()
}

// LoginAttempts fails once the attempt count reaches the lockout threshold.
// A nil count is treated as zero.
func LoginAttempts(attempts *int) Result {
	n := 0
	if attempts != nil {
		n = *attempts
	}
	if n >= MaxLoginAttempts {
		return Fail("too many failed logins, account is locked")
	}
	return OK()
}

// PasswordConfirmation fails when either password is empty or they differ.
func PasswordConfirmation(password, confirm string) Result {
	if password == "" || confirm == "" {
		return Fail("password confirmation must not be empty")
	}
	if password != confirm {
		return Fail("passwords do not match")
	}
	return OK()
}
