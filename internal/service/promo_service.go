package service

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/matbakhapp/orderapi/internal/domain"
	"github.com/matbakhapp/orderapi/internal/repository"
	"github.com/matbakhapp/orderapi/pkg/errors"
)

// PromoService validates promo codes against a subtotal and computes the
// bounded discount. Usage-limit accounting (max_uses) is not enforced
// here; this layer only reflects whether a code is currently active.
type PromoService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewPromoService creates a new promo service
func NewPromoService(repos *repository.Repositories, logger *zap.Logger) *PromoService {
	return &PromoService{
		repos:  repos,
		logger: logger,
	}
}

// Validate resolves code case-insensitively and returns the discount it
// yields against subtotal, capped at the subtotal. Inactive and unknown
// codes are indistinguishable to the caller.
func (s *PromoService) Validate(ctx context.Context, code string, subtotal decimal.Decimal) (*domain.PromoCode, decimal.Decimal, error) {
	promo, err := s.repos.Promo.GetByCode(ctx, code)
	if err != nil {
		if _, ok := err.(*errors.ErrNotFound); ok {
			return nil, decimal.Zero, &errors.ErrPromoNotFound{Code: code}
		}
		return nil, decimal.Zero, err
	}

	if !promo.IsActive {
		return nil, decimal.Zero, &errors.ErrPromoNotFound{Code: code}
	}

	if subtotal.LessThan(promo.MinOrderAmount) {
		return nil, decimal.Zero, &errors.ErrPromoMinimumNotMet{
			Code:     promo.Code,
			Minimum:  promo.MinOrderAmount,
			Subtotal: subtotal,
		}
	}

	return promo, promo.DiscountFor(subtotal), nil
}
