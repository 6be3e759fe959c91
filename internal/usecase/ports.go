package usecase

import (
	"context"

	"storefront/internal/analytics"
	"storefront/internal/discount"
	"storefront/internal/domain"
)

// Storage the services depend on. Implementations live in infrastructure;
// tests substitute in-memory fakes.

type DiscountCodeRepository interface {
	Create(ctx context.Context, code *domain.DiscountCode) error
	GetByID(ctx context.Context, id string) (*domain.DiscountCode, error)
	List(ctx context.Context) ([]domain.DiscountCode, error)
	// FindUsable returns the code named code if filter matches it, or domain.ErrNotFound
	FindUsable(ctx context.Context, code string, filter discount.Filter) (*domain.DiscountCode, error)
	SetActive(ctx context.Context, id string, active bool) error
	// Delete removes an unused code; used codes yield domain.ErrDiscountCodeInUse
	Delete(ctx context.Context, id string) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	SetAvailable(ctx context.Context, id string, available bool) error
	CountByAvailability(ctx context.Context) (active, inactive int64, err error)
}

type OrderRepository interface {
	// ListCreatedWithin returns orders oldest first
	ListCreatedWithin(ctx context.Context, r analytics.DateRange) ([]domain.Order, error)
	// Totals covers every order regardless of date
	Totals(ctx context.Context) (analytics.Summary, error)
	List(ctx context.Context) ([]domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	// RecordPurchase stores the order, upserts the buyer and, when a code is
	// attached, redeems it if filter still matches it
	RecordPurchase(ctx context.Context, purchase domain.Purchase, filter discount.Filter) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}

type UserRepository interface {
	// ListCreatedWithin returns users oldest first
	ListCreatedWithin(ctx context.Context, r analytics.DateRange) ([]domain.User, error)
	Count(ctx context.Context) (int64, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListWithStats(ctx context.Context) ([]domain.CustomerStats, error)
	Delete(ctx context.Context, id string) error
}

// ReceiptSender delivers customer mail through the external mailer
type ReceiptSender interface {
	SendPurchaseReceipt(ctx context.Context, receipt domain.PurchaseReceipt) error
	SendOrderHistory(ctx context.Context, history domain.OrderHistory) error
}
