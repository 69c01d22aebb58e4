package repository

import "errors"

// Store-level error taxonomy. Handlers map these onto HTTP status codes.
var (
	ErrNotFound          = errors.New("not found")
	ErrCouponInactive    = errors.New("coupon is not active")
	ErrCouponExpired     = errors.New("coupon has expired")
	ErrCouponLimit       = errors.New("coupon usage limit exceeded")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrConflict          = errors.New("conflicting concurrent update")
	ErrDuplicate         = errors.New("already exists")
)
