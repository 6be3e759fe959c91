package domain

import (
	"slices"
	"time"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "PERCENTAGE"
	DiscountTypeFixed      DiscountType = "FIXED"
)

// Valid reports whether t is one of the known discount types
func (t DiscountType) Valid() bool {
	switch t {
	case DiscountTypePercentage, DiscountTypeFixed:
		return true
	}
	return false
}

// DiscountCode is a redeemable code. DiscountAmount is a percentage for
// PERCENTAGE codes and whole major currency units for FIXED codes.
type DiscountCode struct {
	ID             string       `json:"id"`
	Code           string       `json:"code"`
	DiscountAmount int          `json:"discount_amount"`
	DiscountType   DiscountType `json:"discount_type"`
	IsActive       bool         `json:"is_active"`
	AllProducts    bool         `json:"all_products"`
	ProductIDs     []string     `json:"product_ids"`
	Limit          *int         `json:"limit,omitempty"`
	Uses           int          `json:"uses"`
	ExpiresAt      *time.Time   `json:"expires_at,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}

// ScopedTo reports whether the code applies to the given product
func (c DiscountCode) ScopedTo(productID string) bool {
	return c.AllProducts || slices.Contains(c.ProductIDs, productID)
}

// Exhausted is true once uses reached the redemption limit
func (c DiscountCode) Exhausted() bool {
	return c.Limit != nil && c.Uses >= *c.Limit
}

// ExpiredAt is true when the code has an expiry at or before now
func (c DiscountCode) ExpiredAt(now time.Time) bool {
	return c.ExpiresAt != nil && !c.ExpiresAt.After(now)
}
