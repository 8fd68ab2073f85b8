package domain

// CartOutcome is the closed set of results a cart mutation can produce.
// Cart operations always return an outcome, never an error.
type CartOutcome int

const (
	CartOK CartOutcome = iota
	CartInvalidItem
	CartInvalidUser
	CartQuantityOutOfRange
	CartPriceOutOfRange
	CartLimitExceeded
	CartItemNotFound
	CartItemExpired
	CartQuantityAboveMax
	CartQuantityBelowMin
	CartSystemError
)

func (o CartOutcome) String() string {
	switch o {
	case CartOK:
		return "ok"
	case CartInvalidItem:
		return "invalid item"
	case CartInvalidUser:
		return "invalid user"
	case CartQuantityOutOfRange:
		return "quantity out of range"
	case CartPriceOutOfRange:
		return "price out of range"
	case CartLimitExceeded:
		return "cart item type limit exceeded"
	case CartItemNotFound:
		return "item not found"
	case CartItemExpired:
		return "item no longer valid"
	case CartQuantityAboveMax:
		return "quantity above maximum"
	case CartQuantityBelowMin:
		return "quantity below minimum"
	case CartSystemError:
		return "system error"
	}
	return "unknown"
}

// Success reports whether the outcome is the success variant.
func (o CartOutcome) Success() bool { return o == CartOK }

// RegisterOutcome is the closed set of results of a registration attempt.
type RegisterOutcome int

const (
	RegisterOK RegisterOutcome = iota
	RegisterPasswordMismatch
	RegisterPhoneTaken
	RegisterWeakPassword
	RegisterBadEmail
	RegisterBadPhone
	RegisterBadUsername
	RegisterSystemError
)

func (o RegisterOutcome) String() string {
	switch o {
	case RegisterOK:
		return "ok"
	case RegisterPasswordMismatch:
		return "passwords do not match"
	case RegisterPhoneTaken:
		return "phone number already registered"
	case RegisterWeakPassword:
		return "password does not meet requirements"
	case RegisterBadEmail:
		return "invalid email format"
	case RegisterBadPhone:
		return "invalid phone format"
	case RegisterBadUsername:
		return "invalid username format"
	case RegisterSystemError:
		return "system error"
	}
	return "unknown"
}

// Success reports whether the outcome is the success variant.
func (o RegisterOutcome) Success() bool { return o == RegisterOK }
