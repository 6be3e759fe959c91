package domain

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrDuplicateCode        = errors.New("discount code already exists")
	ErrDiscountCodeInUse    = errors.New("discount code has been used and cannot be deleted")
	ErrDiscountCodeUnusable = errors.New("discount code is not usable for this product")
	ErrProductUnavailable   = errors.New("product is not available for purchase")
	ErrMailerUnavailable    = errors.New("mailer is not configured")
)
