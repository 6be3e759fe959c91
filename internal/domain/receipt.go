package domain

// PurchaseReceipt is handed to the mailer after a successful checkout
type PurchaseReceipt struct {
	Email   string  `json:"email"`
	Order   Order   `json:"order"`
	Product Product `json:"product"`
	// display form of Order.PricePaidInCents
	PricePaid string `json:"price_paid"`
}

type OrderHistoryEntry struct {
	Order     Order   `json:"order"`
	Product   Product `json:"product"`
	PricePaid string  `json:"price_paid"`
}

type OrderHistory struct {
	Email  string              `json:"email"`
	Orders []OrderHistoryEntry `json:"orders"`
}
