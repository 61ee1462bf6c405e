package orders

import "errors"

var (
	ErrNoLines          = errors.New("order has no lines")
	ErrBadQuantity      = errors.New("line quantity must be at least 1")
	ErrBadPaymentMethod = errors.New("unknown payment method")
	ErrAddressRequired  = errors.New("shipping address required")

	// ErrOrderNotFound covers both a genuinely absent order and an order
	// owned by someone else; callers cannot tell the two apart.
	ErrOrderNotFound = errors.New("order not found")

	ErrNoIdentity    = errors.New("a user or store identity is required")
	ErrBadTransition = errors.New("invalid status transition")
)
