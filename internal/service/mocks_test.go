package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matbakhapp/orderapi/internal/domain"
	"github.com/matbakhapp/orderapi/internal/notification"
	"github.com/matbakhapp/orderapi/pkg/errors"
)

type mockPromoRepo struct {
	mu     sync.Mutex
	promos map[string]*domain.PromoCode
	err    error
}

func newMockPromoRepo(promos ...*domain.PromoCode) *mockPromoRepo {
	m := &mockPromoRepo{promos: make(map[string]*domain.PromoCode)}
	for _, p := range promos {
		m.promos[strings.ToLower(p.Code)] = p
	}
	return m
}

func (m *mockPromoRepo) GetByCode(_ context.Context, code string) (*domain.PromoCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	promo, ok := m.promos[strings.ToLower(code)]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "promo code", ID: code}
	}
	return promo, nil
}

func (m *mockPromoRepo) Create(_ context.Context, promo *domain.PromoCode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.promos[strings.ToLower(promo.Code)] = promo
	return nil
}

type mockOrderRepo struct {
	mu        sync.Mutex
	orders    map[uuid.UUID]*domain.Order
	createErr error
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[uuid.UUID]*domain.Order)}
}

func (m *mockOrderRepo) Create(_ context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	clone := *order
	m.orders[order.ID] = &clone
	return nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	clone := *order
	return &clone, nil
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, expected, next domain.OrderStatus) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id]
	if !ok || order.Status != expected {
		return nil, &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	order.Status = next
	order.UpdatedAt = time.Now()
	clone := *order
	return &clone, nil
}

func (m *mockOrderRepo) ForceStatus(_ context.Context, id uuid.UUID, next domain.OrderStatus) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	order.Status = next
	order.UpdatedAt = time.Now()
	clone := *order
	return &clone, nil
}

func (m *mockOrderRepo) SearchByPhone(_ context.Context, digits string) ([]*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	normalized := domain.NormalizePhone(digits)
	var out []*domain.Order
	for _, order := range m.orders {
		if strings.Contains(domain.NormalizePhone(order.CustomerPhone), normalized) {
			clone := *order
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (m *mockOrderRepo) List(_ context.Context, status *domain.OrderStatus) ([]*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Order
	for _, order := range m.orders {
		if status == nil || order.Status == *status {
			clone := *order
			out = append(out, &clone)
		}
	}
	return out, nil
}

type mockEventRepo struct {
	mu     sync.Mutex
	events []*domain.OrderEvent
	err    error
}

func (m *mockEventRepo) Create(_ context.Context, event *domain.OrderEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

func (m *mockEventRepo) byType(eventType string) []*domain.OrderEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.OrderEvent
	for _, e := range m.events {
		if e.EventType == eventType {
			out = append(out, e)
		}
	}
	return out
}

type mockDispatcher struct {
	mu     sync.Mutex
	events []notification.Event
	err    error
}

func (m *mockDispatcher) Send(_ context.Context, event notification.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

func (m *mockDispatcher) sent() []notification.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]notification.Event, len(m.events))
	copy(out, m.events)
	return out
}
