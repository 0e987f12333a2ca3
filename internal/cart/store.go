package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/matbakhapp/orderapi/internal/domain"
)

// ErrMiss is returned by a Store when no cart exists for the session
var ErrMiss = errors.New("cart not found for session")

// Store persists session carts. Exactly one logical owner mutates a given
// session's cart, so implementations only need to be safe for concurrent
// access across different sessions.
type Store interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	Save(ctx context.Context, sessionID string, cart *domain.Cart) error
	Delete(ctx context.Context, sessionID string) error
}

// MemoryStore is the default single-instance Store
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart
}

// NewMemoryStore creates an empty in-memory cart store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string]*domain.Cart)}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (*domain.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.carts[sessionID]
	if !ok {
		return nil, ErrMiss
	}

	// Copy out so callers never alias stored state
	clone := &domain.Cart{
		Items:        cart.Snapshot(),
		AppliedPromo: cart.AppliedPromo,
	}
	return clone, nil
}

func (s *MemoryStore) Save(_ context.Context, sessionID string, cart *domain.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[sessionID] = &domain.Cart{
		Items:        cart.Snapshot(),
		AppliedPromo: cart.AppliedPromo,
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, sessionID)
	return nil
}
