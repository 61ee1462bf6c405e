package orders

import "time"

type PaymentMethod string

const (
	PayCard     PaymentMethod = "card"
	PayCash     PaymentMethod = "cash"
	PayTransfer PaymentMethod = "transfer"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PayCard, PayCash, PayTransfer:
		return true
	}
	return false
}

// OrderLine snapshots a purchased product at placement time. Store id and
// unit price are denormalized so later catalog edits do not rewrite
// history.
type OrderLine struct {
	ProductID      string `json:"product_id"`
	StoreID        string `json:"store_id"`
	Qty            int    `json:"qty"`
	UnitPriceCents int    `json:"unit_price_cents"`
	SubtotalCents  int    `json:"subtotal_cents"`
}

type Order struct {
	ID              string        `json:"id"`
	UserID          string        `json:"user_id"`
	Lines           []OrderLine   `json:"lines"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
	ShippingAddress string        `json:"shipping_address"`
	Comments        string        `json:"comments,omitempty"`
	TotalCents      int           `json:"total_cents"`
	Status          Status        `json:"status"` // see status.go
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}
