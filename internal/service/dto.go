package service

import (
	"github.com/shopspring/decimal"

	"github.com/matbakhapp/orderapi/internal/domain"
)

// UpsertItemRequest represents a cart add-or-update payload. Quantity 0
// removes the line item, so it carries no minimum.
type UpsertItemRequest struct {
	ProductID string          `json:"product_id" binding:"required"`
	Name      string          `json:"name" binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
	Quantity  int             `json:"quantity"`
	SellerID  string          `json:"seller_id" binding:"required"`
}

// LineItem converts the request into a domain line item
func (r UpsertItemRequest) LineItem() domain.LineItem {
	return domain.LineItem{
		ProductID: r.ProductID,
		Name:      r.Name,
		UnitPrice: r.UnitPrice,
		Quantity:  r.Quantity,
		SellerID:  r.SellerID,
	}
}

// ReplaceItemRequest represents a conflict resolution payload
type ReplaceItemRequest struct {
	ProductID string          `json:"product_id" binding:"required"`
	Name      string          `json:"name" binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	SellerID  string          `json:"seller_id" binding:"required"`
}

// LineItem converts the request into a domain line item
func (r ReplaceItemRequest) LineItem() domain.LineItem {
	return domain.LineItem{
		ProductID: r.ProductID,
		Name:      r.Name,
		UnitPrice: r.UnitPrice,
		Quantity:  r.Quantity,
		SellerID:  r.SellerID,
	}
}

// ApplyPromoRequest represents a promo application payload
type ApplyPromoRequest struct {
	Code string `json:"code" binding:"required"`
}

// CheckoutRequest represents the order submission payload
type CheckoutRequest struct {
	CustomerName string  `json:"customer_name" binding:"required"`
	Phone        string  `json:"phone" binding:"required"`
	Address      string  `json:"address" binding:"required"`
	Notes        *string `json:"notes,omitempty"`
}

// UpdateStatusRequest represents a status transition request. Forced
// transitions bypass the adjacency rule and are tagged separately in the
// audit trail.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Forced bool   `json:"forced"`
}

// CartView is the read-only projection of a session cart
type CartView struct {
	Items        []domain.LineItem `json:"items"`
	SellerID     string            `json:"seller_id,omitempty"`
	Subtotal     decimal.Decimal   `json:"subtotal"`
	AppliedPromo string            `json:"applied_promo,omitempty"`
	Discount     decimal.Decimal   `json:"discount"`
	Total        decimal.Decimal   `json:"total"`
}
