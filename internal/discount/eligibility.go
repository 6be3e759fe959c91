// Package discount decides which discount codes may be redeemed and what
// they do to a price.
package discount

import (
	"time"

	"storefront/internal/domain"
)

// Filter is the usability predicate for one product. Now is fixed when the
// filter is built so a whole batch of codes is judged against one instant.
type Filter struct {
	ProductID string
	Now       time.Time
}

// UsableFor builds the predicate for productID at the current instant
func UsableFor(productID string) Filter {
	return UsableForAt(productID, time.Now())
}

func UsableForAt(productID string, now time.Time) Filter {
	return Filter{ProductID: productID, Now: now}
}

// Matches reports whether code can be redeemed against the filter's product:
// active, scoped to the product (or global), under its limit and unexpired.
func (f Filter) Matches(code domain.DiscountCode) bool {
	return code.IsActive &&
		code.ScopedTo(f.ProductID) &&
		!code.Exhausted() &&
		!code.ExpiredAt(f.Now)
}

// Select keeps the codes the filter matches, preserving order
func (f Filter) Select(codes []domain.DiscountCode) []domain.DiscountCode {
	usable := make([]domain.DiscountCode, 0, len(codes))
	for _, code := range codes {
		if f.Matches(code) {
			usable = append(usable, code)
		}
	}
	return usable
}
