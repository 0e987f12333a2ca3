package errors

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/matbakhapp/orderapi/internal/domain"
)

// ErrNotFound indicates the requested resource does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrInvalidQuantity indicates a cart mutation with a negative quantity
type ErrInvalidQuantity struct {
	Quantity int
}

func (e *ErrInvalidQuantity) Error() string {
	return fmt.Sprintf("invalid quantity: %d", e.Quantity)
}

// ErrSellerConflict is returned when an item from a different seller is
// added to a non-empty cart. The cart is left unchanged; the caller must
// resolve by replacing the cart contents or keeping them.
type ErrSellerConflict struct {
	CurrentSeller   string
	CandidateSeller string
	Candidate       domain.LineItem
}

func (e *ErrSellerConflict) Error() string {
	return fmt.Sprintf("cart holds items from seller %q, cannot add item from seller %q",
		e.CurrentSeller, e.CandidateSeller)
}

// ErrPromoNotFound indicates the promo code is unknown or inactive
type ErrPromoNotFound struct {
	Code string
}

func (e *ErrPromoNotFound) Error() string {
	return fmt.Sprintf("promo code not found: %s", e.Code)
}

// ErrPromoMinimumNotMet indicates the subtotal is below the promo's minimum order amount
type ErrPromoMinimumNotMet struct {
	Code     string
	Minimum  decimal.Decimal
	Subtotal decimal.Decimal
}

func (e *ErrPromoMinimumNotMet) Error() string {
	return fmt.Sprintf("promo code %s requires a minimum order of %s, subtotal is %s",
		e.Code, e.Minimum.StringFixed(2), e.Subtotal.StringFixed(2))
}

// ErrInvalidStateTransition indicates an illegal order status transition
type ErrInvalidStateTransition struct {
	From domain.OrderStatus
	To   domain.OrderStatus
}

func (e *ErrInvalidStateTransition) Error() string {
	return fmt.Sprintf("invalid state transition from %s to %s", e.From, e.To)
}

// ErrSubmissionFailed indicates the persistence collaborator rejected an
// order submission. The session cart is preserved so the caller can retry.
type ErrSubmissionFailed struct {
	Cause error
}

func (e *ErrSubmissionFailed) Error() string {
	return fmt.Sprintf("order submission failed: %v", e.Cause)
}

func (e *ErrSubmissionFailed) Unwrap() error {
	return e.Cause
}
