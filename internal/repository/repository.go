package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/matbakhapp/orderapi/internal/domain"
)

// OrderRepository is the persistence collaborator for orders. It is the
// system of record once an order is created.
type OrderRepository interface {
	// Create stores the order aggregate, line-item snapshot included, as
	// one atomic write. On failure nothing of the order is visible.
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	// UpdateStatus applies a conditional write: the status only changes
	// if the stored status still equals expected. A lost race surfaces
	// as ErrNotFound on the conditional row.
	UpdateStatus(ctx context.Context, id uuid.UUID, expected, next domain.OrderStatus) (*domain.Order, error)
	// ForceStatus applies an administrative override without a status
	// precondition.
	ForceStatus(ctx context.Context, id uuid.UUID, next domain.OrderStatus) (*domain.Order, error)
	// SearchByPhone matches on normalized digits, exact or substring.
	SearchByPhone(ctx context.Context, digits string) ([]*domain.Order, error)
	List(ctx context.Context, status *domain.OrderStatus) ([]*domain.Order, error)
}

// PromoRepository looks up and manages promo codes
type PromoRepository interface {
	// GetByCode resolves a code case-insensitively.
	GetByCode(ctx context.Context, code string) (*domain.PromoCode, error)
	Create(ctx context.Context, promo *domain.PromoCode) error
}

// OrderEventRepository appends audit events for orders
type OrderEventRepository interface {
	Create(ctx context.Context, event *domain.OrderEvent) error
}

// Repositories aggregates all repository interfaces
type Repositories struct {
	Order      OrderRepository
	Promo      PromoRepository
	OrderEvent OrderEventRepository
}
