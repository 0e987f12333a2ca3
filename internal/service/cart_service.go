package service

import (
	"context"
	stderrors "errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/matbakhapp/orderapi/internal/cart"
	"github.com/matbakhapp/orderapi/internal/domain"
	"github.com/matbakhapp/orderapi/pkg/errors"
)

// CartService owns session cart mutation. Every operation loads the
// session's cart, applies the change in memory, and saves the result;
// an operation that fails validation never reaches the store.
type CartService struct {
	store  cart.Store
	promos *PromoService
	logger *zap.Logger
}

// NewCartService creates a new cart service
func NewCartService(store cart.Store, promos *PromoService, logger *zap.Logger) *CartService {
	return &CartService{
		store:  store,
		promos: promos,
		logger: logger,
	}
}

// Get returns the session's cart, empty if none exists yet
func (s *CartService) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	c, err := s.store.Get(ctx, sessionID)
	if stderrors.Is(err, cart.ErrMiss) {
		return domain.NewCart(), nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// AddOrUpdate sets the quantity for an item's product. A negative
// quantity is rejected before any mutation; quantity 0 removes the line
// item. Adding an item from a different seller to a non-empty cart
// returns ErrSellerConflict and leaves the cart exactly as it was.
func (s *CartService) AddOrUpdate(ctx context.Context, sessionID string, item domain.LineItem, quantity int) (*domain.Cart, error) {
	if quantity < 0 {
		return nil, &errors.ErrInvalidQuantity{Quantity: quantity}
	}

	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if quantity > 0 && c.ConflictsWith(item) {
		return nil, &errors.ErrSellerConflict{
			CurrentSeller:   c.SellerID(),
			CandidateSeller: item.SellerID,
			Candidate:       item,
		}
	}

	c.Upsert(item, quantity)

	if err := s.store.Save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ResolveConflictByReplacing clears the cart and inserts the candidate
// item. This is the only operation permitted to change a non-empty
// cart's seller.
func (s *CartService) ResolveConflictByReplacing(ctx context.Context, sessionID string, item domain.LineItem, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, &errors.ErrInvalidQuantity{Quantity: quantity}
	}

	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	c.ReplaceWith(item, quantity)

	if err := s.store.Save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Clear empties the session's cart unconditionally
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}

// ApplyPromo validates code against the cart's current subtotal and
// records it on the cart. The discount is recomputed (and re-validated)
// at submission time.
func (s *CartService) ApplyPromo(ctx context.Context, sessionID string, code string) (*domain.Cart, decimal.Decimal, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, decimal.Zero, err
	}

	promo, discount, err := s.promos.Validate(ctx, code, c.Subtotal())
	if err != nil {
		return nil, decimal.Zero, err
	}

	c.AppliedPromo = promo.Code
	if err := s.store.Save(ctx, sessionID, c); err != nil {
		return nil, decimal.Zero, err
	}
	return c, discount, nil
}

// RemovePromo clears the applied promo; the discount resets to 0
func (s *CartService) RemovePromo(ctx context.Context, sessionID string) (*domain.Cart, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	c.AppliedPromo = ""
	if err := s.store.Save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return c, nil
}

// View builds the read-only cart projection. A promo that no longer
// validates (for example, the subtotal dropped below its minimum)
// contributes a zero discount without being dropped from the cart.
func (s *CartService) View(ctx context.Context, sessionID string) (CartView, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return CartView{}, err
	}
	return s.view(ctx, c), nil
}

func (s *CartService) view(ctx context.Context, c *domain.Cart) CartView {
	subtotal := c.Subtotal()
	discount := decimal.Zero

	if c.AppliedPromo != "" {
		if _, d, err := s.promos.Validate(ctx, c.AppliedPromo, subtotal); err == nil {
			discount = d
		}
	}

	return CartView{
		Items:        c.Snapshot(),
		SellerID:     c.SellerID(),
		Subtotal:     subtotal,
		AppliedPromo: c.AppliedPromo,
		Discount:     discount,
		Total:        subtotal.Sub(discount),
	}
}

// ViewOf projects an already-loaded cart
func (s *CartService) ViewOf(ctx context.Context, c *domain.Cart) CartView {
	return s.view(ctx, c)
}
