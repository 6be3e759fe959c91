package domain

import "time"

type Product struct {
	ID                     string    `json:"id"`
	Name                   string    `json:"name"`
	Description            string    `json:"description"`
	PriceInCents           int64     `json:"price_in_cents"`
	IsAvailableForPurchase bool      `json:"is_available_for_purchase"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

type Order struct {
	ID               string    `json:"id"`
	PricePaidInCents int64     `json:"price_paid_in_cents"`
	UserID           string    `json:"user_id"`
	ProductID        string    `json:"product_id"`
	DiscountCodeID   *string   `json:"discount_code_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// CustomerStats is a user together with their lifetime order figures
type CustomerStats struct {
	User
	OrderCount        int64 `json:"order_count"`
	TotalValueInCents int64 `json:"total_value_in_cents"`
}

// Purchase is what checkout asks storage to record
type Purchase struct {
	Email            string
	ProductID        string
	PricePaidInCents int64
	DiscountCodeID   *string
}
