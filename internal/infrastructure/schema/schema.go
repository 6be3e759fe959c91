// Package schema holds the gorm models backing the storefront tables.
package schema

import (
	"time"

	"storefront/internal/domain"
)

type Product struct {
	ID                     string `gorm:"primaryKey;size:36"`
	Name                   string `gorm:"not null"`
	Description            string
	PriceInCents           int64 `gorm:"not null"`
	IsAvailableForPurchase bool  `gorm:"not null;index"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

type User struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Email     string    `gorm:"not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

type Order struct {
	ID               string    `gorm:"primaryKey;size:36"`
	PricePaidInCents int64     `gorm:"not null"`
	UserID           string    `gorm:"not null;index;size:36"`
	ProductID        string    `gorm:"not null;index;size:36"`
	DiscountCodeID   *string   `gorm:"index;size:36"`
	CreatedAt        time.Time `gorm:"index"`
	UpdatedAt        time.Time
}

type DiscountCode struct {
	ID             string `gorm:"primaryKey;size:36"`
	Code           string `gorm:"not null;uniqueIndex"`
	DiscountAmount int    `gorm:"not null"`
	DiscountType   string `gorm:"not null;size:16"`
	IsActive       bool   `gorm:"not null"`
	AllProducts    bool   `gorm:"not null"`
	UsageLimit     *int   `gorm:"column:usage_limit"`
	Uses           int    `gorm:"not null;default:0"`
	ExpiresAt      *time.Time
	CreatedAt      time.Time
}

// DiscountCodeProduct scopes a non-global code to one product
type DiscountCodeProduct struct {
	DiscountCodeID string `gorm:"primaryKey;size:36"`
	ProductID      string `gorm:"primaryKey;size:36;index"`
}

// All lists every model for migration
func All() []any {
	return []any{&Product{}, &User{}, &Order{}, &DiscountCode{}, &DiscountCodeProduct{}}
}

func (p Product) ToDomain() domain.Product {
	return domain.Product{
		ID:                     p.ID,
		Name:                   p.Name,
		Description:            p.Description,
		PriceInCents:           p.PriceInCents,
		IsAvailableForPurchase: p.IsAvailableForPurchase,
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
	}
}

func (u User) ToDomain() domain.User {
	return domain.User{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}

func (o Order) ToDomain() domain.Order {
	return domain.Order{
		ID:               o.ID,
		PricePaidInCents: o.PricePaidInCents,
		UserID:           o.UserID,
		ProductID:        o.ProductID,
		DiscountCodeID:   o.DiscountCodeID,
		CreatedAt:        o.CreatedAt,
	}
}

// ToDomain converts the row; productIDs come from the join table
func (c DiscountCode) ToDomain(productIDs []string) domain.DiscountCode {
	if productIDs == nil {
		productIDs = []string{}
	}
	return domain.DiscountCode{
		ID:             c.ID,
		Code:           c.Code,
		DiscountAmount: c.DiscountAmount,
		DiscountType:   domain.DiscountType(c.DiscountType),
		IsActive:       c.IsActive,
		AllProducts:    c.AllProducts,
		ProductIDs:     productIDs,
		Limit:          c.UsageLimit,
		Uses:           c.Uses,
		ExpiresAt:      c.ExpiresAt,
		CreatedAt:      c.CreatedAt,
	}
}
