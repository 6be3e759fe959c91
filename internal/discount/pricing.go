package discount

import (
	"fmt"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

// MinimumPriceInCents is the floor a discount can bring a price down to
const MinimumPriceInCents = 1

var hundred = decimal.NewFromInt(100)

// DiscountedPrice applies a discount to priceInCents. PERCENTAGE amounts are
// percentages; FIXED amounts are whole major units. The result is rounded up
// to a whole cent and never drops below MinimumPriceInCents.
//
// An unknown discount type is a programming error and panics.
func DiscountedPrice(discountType domain.DiscountType, discountAmount int, priceInCents int64) int64 {
	price := decimal.NewFromInt(priceInCents)
	amount := decimal.NewFromInt(int64(discountAmount))

	var discounted decimal.Decimal
	switch discountType {
	case domain.DiscountTypePercentage:
		discounted = price.Sub(price.Mul(amount).Div(hundred))
	case domain.DiscountTypeFixed:
		discounted = price.Sub(amount.Mul(hundred))
	default:
		panic(fmt.Sprintf("invalid discount code type %q", discountType))
	}

	return max(MinimumPriceInCents, discounted.Ceil().IntPart())
}

// Apply prices a product with the given code
func Apply(code domain.DiscountCode, priceInCents int64) int64 {
	return DiscountedPrice(code.DiscountType, code.DiscountAmount, priceInCents)
}
