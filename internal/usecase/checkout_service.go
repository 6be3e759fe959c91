package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/discount"
	"storefront/internal/domain"
	"storefront/pkg/format"
	"storefront/pkg/logger"
	"storefront/pkg/metrics"
)

// Quote is what a customer would pay for a product right now
type Quote struct {
	Product                domain.Product       `json:"product"`
	DiscountCode           *domain.DiscountCode `json:"discount_code,omitempty"`
	PriceInCents           int64                `json:"price_in_cents"`
	DiscountedPriceInCents int64                `json:"discounted_price_in_cents"`
}

type PurchaseResult struct {
	Order domain.Order `json:"order"`
	Quote Quote        `json:"quote"`
}

// CheckoutService prices products against discount codes and records purchases
type CheckoutService struct {
	products ProductRepository
	codes    DiscountCodeRepository
	orders   OrderRepository
	receipts ReceiptSender
	logger   *logger.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewCheckoutService wires the checkout flow. receipts may be nil when no
// mailer is configured.
func NewCheckoutService(
	products ProductRepository,
	codes DiscountCodeRepository,
	orders OrderRepository,
	receipts ReceiptSender,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *CheckoutService {
	return &CheckoutService{
		products: products,
		codes:    codes,
		orders:   orders,
		receipts: receipts,
		logger:   logger,
		metrics:  metrics,
		now:      time.Now,
	}
}

// Quote prices productID with coupon. A coupon that is unknown or not usable
// for the product leaves the price untouched.
func (s *CheckoutService) Quote(ctx context.Context, productID, coupon string) (*Quote, error) {
	quote, _, err := s.quote(ctx, productID, coupon)
	return quote, err
}

// Purchase records an order at the quoted price and mails the receipt
func (s *CheckoutService) Purchase(ctx context.Context, productID, email, coupon string) (*PurchaseResult, error) {
	log := s.logger.WithContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}

	quote, filter, err := s.quote(ctx, productID, coupon)
	if err != nil {
		return nil, err
	}

	purchase := domain.Purchase{
		Email:            email,
		ProductID:        quote.Product.ID,
		PricePaidInCents: quote.DiscountedPriceInCents,
	}
	if quote.DiscountCode != nil {
		purchase.DiscountCodeID = &quote.DiscountCode.ID
	}

	order, err := s.orders.RecordPurchase(ctx, purchase, filter)
	if err != nil {
		log.WithError(err).WithField("product_id", productID).Error("Failed to record purchase")
		return nil, fmt.Errorf("failed to record purchase: %w", err)
	}

	log.WithFields(map[string]any{
		"order_id":   order.ID,
		"product_id": order.ProductID,
		"price":      order.PricePaidInCents,
		"discounted": quote.DiscountCode != nil,
	}).Info("Purchase recorded")

	s.sendReceipt(ctx, domain.PurchaseReceipt{
		Email:     email,
		Order:     *order,
		Product:   quote.Product,
		PricePaid: format.CurrencyFromCents(order.PricePaidInCents),
	})

	return &PurchaseResult{Order: *order, Quote: *quote}, nil
}

func (s *CheckoutService) quote(ctx context.Context, productID, coupon string) (*Quote, discount.Filter, error) {
	filter := discount.UsableForAt(productID, s.now())

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, filter, fmt.Errorf("failed to load product %s: %w", productID, err)
	}
	if !product.IsAvailableForPurchase {
		return nil, filter, domain.ErrProductUnavailable
	}

	quote := &Quote{
		Product:                *product,
		PriceInCents:           product.PriceInCents,
		DiscountedPriceInCents: product.PriceInCents,
	}

	coupon = strings.TrimSpace(coupon)
	if coupon == "" {
		s.metrics.RecordDiscountLookup("none")
		return quote, filter, nil
	}

	code, err := s.codes.FindUsable(ctx, coupon, filter)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.metrics.RecordDiscountLookup("unusable")
		s.logger.WithContext(ctx).WithFields(map[string]any{
			"coupon":     coupon,
			"product_id": productID,
		}).Info("Coupon not usable for product")
		return quote, filter, nil
	case err != nil:
		return nil, filter, fmt.Errorf("failed to look up discount code: %w", err)
	}

	quote.DiscountCode = code
	quote.DiscountedPriceInCents = discount.Apply(*code, product.PriceInCents)
	s.metrics.RecordDiscountLookup("applied")
	s.metrics.RecordDiscountPrice(string(code.DiscountType))

	return quote, filter, nil
}

func (s *CheckoutService) sendReceipt(ctx context.Context, receipt domain.PurchaseReceipt) {
	if s.receipts == nil {
		return
	}
	if err := s.receipts.SendPurchaseReceipt(ctx, receipt); err != nil {
		s.logger.WithContext(ctx).WithError(err).WithField("order_id", receipt.Order.ID).Warn("Failed to send purchase receipt")
	}
}
