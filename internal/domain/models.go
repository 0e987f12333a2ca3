package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem represents one product in a session cart
type LineItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	SellerID  string          `json:"seller_id"`
}

// Subtotal returns unit price times quantity
func (i LineItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// PromoCode represents a redeemable discount code
type PromoCode struct {
	ID             uuid.UUID
	Code           string
	DiscountType   DiscountType
	DiscountValue  decimal.Decimal
	MinOrderAmount decimal.Decimal
	MaxUses        *int
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DiscountFor computes the discount this promo yields against a subtotal.
// The result is capped at the subtotal so a total can never go negative.
func (p *PromoCode) DiscountFor(subtotal decimal.Decimal) decimal.Decimal {
	var raw decimal.Decimal
	switch p.DiscountType {
	case DiscountTypePercentage:
		raw = subtotal.Mul(p.DiscountValue).Div(decimal.NewFromInt(100))
	case DiscountTypeFixed:
		raw = p.DiscountValue
	}
	if raw.GreaterThan(subtotal) {
		return subtotal
	}
	return raw
}

// Order represents a submitted order
type Order struct {
	ID            uuid.UUID
	CustomerName  string
	CustomerPhone string
	Address       string
	Notes         *string
	SellerID      string
	PromoCode     *string
	Items         []OrderItem
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	Total         decimal.Decimal
	Status        OrderStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderItem is an immutable snapshot of a cart line item taken at
// submission time. Later catalog changes never touch it.
type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	SellerID  string
	CreatedAt time.Time
}

// OrderEvent represents an audit event for an order
type OrderEvent struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	EventType string
	EventData map[string]interface{} // JSONB
	CreatedAt time.Time
}

// Audit event types. Forced status overrides are recorded under their own
// type so they are distinguishable from engine-validated transitions.
const (
	EventTypeOrderCreated   = "order_created"
	EventTypeStatusChange   = "status_change"
	EventTypeStatusOverride = "status_override"
)

// NormalizePhone strips a phone number down to its digits for storage
// and lookup. Order lookup by phone is exact-or-substring on digits.
func NormalizePhone(phone string) string {
	out := make([]rune, 0, len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			out = append(out, r)
		}
	}
	return string(out)
}
