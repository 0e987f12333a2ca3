package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/matbakhapp/orderapi/internal/domain"
	"github.com/matbakhapp/orderapi/internal/notification"
	"github.com/matbakhapp/orderapi/internal/repository"
	"github.com/matbakhapp/orderapi/pkg/errors"
)

// OrderService assembles orders from carts and drives them through the
// fulfillment state machine. Status updates for the same order are
// serialized through a per-order lock, and the repository write is itself
// conditional on the expected current status.
type OrderService struct {
	repos      *repository.Repositories
	promos     *PromoService
	dispatcher notification.Dispatcher
	logger     *zap.Logger

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

// NewOrderService creates a new order service
func NewOrderService(repos *repository.Repositories, promos *PromoService, dispatcher notification.Dispatcher, logger *zap.Logger) *OrderService {
	return &OrderService{
		repos:      repos,
		promos:     promos,
		dispatcher: dispatcher,
		logger:     logger,
		locks:      make(map[uuid.UUID]*sync.Mutex),
	}
}

// Submit builds an order from the cart and checkout input and hands it to
// the persistence collaborator. On success the order is pending and an
// order-created event is emitted. On persistence failure the caller's
// cart must stay untouched, so no partial order is ever visible.
func (s *OrderService) Submit(ctx context.Context, c *domain.Cart, req CheckoutRequest) (*domain.Order, error) {
	if c.IsEmpty() {
		return nil, fmt.Errorf("cannot submit an empty cart")
	}

	subtotal := c.Subtotal()
	discount := decimal.Zero
	var promoCode *string

	if c.AppliedPromo != "" {
		promo, d, err := s.promos.Validate(ctx, c.AppliedPromo, subtotal)
		if err != nil {
			return nil, err
		}
		discount = d
		promoCode = &promo.Code
	}

	now := time.Now()
	order := &domain.Order{
		ID:            uuid.New(),
		CustomerName:  req.CustomerName,
		CustomerPhone: req.Phone,
		Address:       req.Address,
		Notes:         req.Notes,
		SellerID:      c.SellerID(),
		PromoCode:     promoCode,
		Subtotal:      subtotal,
		Discount:      discount,
		Total:         subtotal.Sub(discount),
		Status:        domain.OrderStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	for _, item := range c.Snapshot() {
		order.Items = append(order.Items, domain.OrderItem{
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			SellerID:  item.SellerID,
			CreatedAt: now,
		})
	}

	if err := s.repos.Order.Create(ctx, order); err != nil {
		return nil, &errors.ErrSubmissionFailed{Cause: err}
	}

	s.audit(ctx, &domain.OrderEvent{
		OrderID:   order.ID,
		EventType: domain.EventTypeOrderCreated,
		EventData: map[string]interface{}{
			"status": order.Status,
			"total":  order.Total.StringFixed(2),
		},
	})

	s.notify(ctx, notification.Event{
		OrderID:   order.ID,
		Kind:      notification.KindOrderCreated,
		ToStatus:  order.Status,
		Timestamp: order.CreatedAt,
	})

	return order, nil
}

// Transition moves the order to targetStatus if it is the immediate
// forward successor, or cancels it while still pending or preparing.
// The transition is durably applied before notification dispatch is
// attempted; a dispatch failure never rolls it back.
func (s *OrderService) Transition(ctx context.Context, orderID uuid.UUID, target domain.OrderStatus) (*domain.Order, error) {
	lock := s.orderLock(orderID)
	lock.Lock()
	defer lock.Unlock()

	order, err := s.repos.Order.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(target) {
		return nil, &errors.ErrInvalidStateTransition{From: order.Status, To: target}
	}

	from := order.Status
	updated, err := s.repos.Order.UpdateStatus(ctx, orderID, from, target)
	if err != nil {
		// The conditional write missed: another writer changed the status
		// between our read and update.
		if _, ok := err.(*errors.ErrNotFound); ok {
			return nil, &errors.ErrInvalidStateTransition{From: from, To: target}
		}
		return nil, err
	}

	s.audit(ctx, &domain.OrderEvent{
		OrderID:   orderID,
		EventType: domain.EventTypeStatusChange,
		EventData: map[string]interface{}{
			"from": from,
			"to":   target,
		},
	})

	s.notify(ctx, notification.Event{
		OrderID:    orderID,
		Kind:       notification.KindStatusChanged,
		FromStatus: from,
		ToStatus:   target,
		Timestamp:  updated.UpdatedAt,
	})

	return updated, nil
}

// ForceStatus applies an administrative override, bypassing the adjacency
// rule. Overrides are recorded under their own audit event type and the
// notification payload is flagged, so they are never mistaken for
// engine-validated transitions.
func (s *OrderService) ForceStatus(ctx context.Context, orderID uuid.UUID, target domain.OrderStatus) (*domain.Order, error) {
	lock := s.orderLock(orderID)
	lock.Lock()
	defer lock.Unlock()

	order, err := s.repos.Order.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	from := order.Status
	updated, err := s.repos.Order.ForceStatus(ctx, orderID, target)
	if err != nil {
		return nil, err
	}

	s.audit(ctx, &domain.OrderEvent{
		OrderID:   orderID,
		EventType: domain.EventTypeStatusOverride,
		EventData: map[string]interface{}{
			"from":   from,
			"to":     target,
			"forced": true,
		},
	})

	s.notify(ctx, notification.Event{
		OrderID:    orderID,
		Kind:       notification.KindStatusChanged,
		FromStatus: from,
		ToStatus:   target,
		Timestamp:  updated.UpdatedAt,
		Payload:    map[string]interface{}{"forced": true},
	})

	return updated, nil
}

func (s *OrderService) orderLock(orderID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[orderID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[orderID] = lock
	}
	return lock
}

func (s *OrderService) audit(ctx context.Context, event *domain.OrderEvent) {
	if err := s.repos.OrderEvent.Create(ctx, event); err != nil {
		s.logger.Warn("Failed to record order event",
			zap.String("order_id", event.OrderID.String()),
			zap.String("event_type", event.EventType),
			zap.Error(err),
		)
	}
}

// notify is fire-and-forget: failures are logged and never surfaced
func (s *OrderService) notify(ctx context.Context, event notification.Event) {
	if err := s.dispatcher.Send(ctx, event); err != nil {
		s.logger.Warn("Failed to dispatch notification",
			zap.String("order_id", event.OrderID.String()),
			zap.String("kind", string(event.Kind)),
			zap.Error(err),
		)
	}
}
