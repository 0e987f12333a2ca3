package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/matbakhapp/orderapi/internal/domain"
	"github.com/matbakhapp/orderapi/internal/repository"
	"github.com/matbakhapp/orderapi/pkg/errors"
)

func save10() *domain.PromoCode {
	return &domain.PromoCode{
		Code:           "SAVE10",
		DiscountType:   domain.DiscountTypePercentage,
		DiscountValue:  decimal.NewFromInt(10),
		MinOrderAmount: decimal.NewFromInt(50),
		IsActive:       true,
	}
}

func newPromoService(promos ...*domain.PromoCode) *PromoService {
	repos := &repository.Repositories{Promo: newMockPromoRepo(promos...)}
	return NewPromoService(repos, zap.NewNop())
}

func TestPromoService_ValidatePercentage(t *testing.T) {
	svc := newPromoService(save10())

	promo, discount, err := svc.Validate(context.Background(), "SAVE10", decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", promo.Code)
	assert.True(t, discount.Equal(decimal.NewFromInt(10)), "got %s", discount)
}

func TestPromoService_ValidateIsCaseInsensitive(t *testing.T) {
	svc := newPromoService(save10())

	_, discount, err := svc.Validate(context.Background(), "save10", decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, discount.Equal(decimal.NewFromInt(10)))
}

func TestPromoService_UnknownCode(t *testing.T) {
	svc := newPromoService(save10())

	_, _, err := svc.Validate(context.Background(), "NOPE", decimal.NewFromInt(100))
	var notFound *errors.ErrPromoNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "NOPE", notFound.Code)
}

func TestPromoService_InactiveCodeLooksUnknown(t *testing.T) {
	promo := save10()
	promo.IsActive = false
	svc := newPromoService(promo)

	_, _, err := svc.Validate(context.Background(), "SAVE10", decimal.NewFromInt(100))
	var notFound *errors.ErrPromoNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestPromoService_MinimumNotMet(t *testing.T) {
	svc := newPromoService(save10())

	_, _, err := svc.Validate(context.Background(), "SAVE10", decimal.NewFromInt(40))
	var minErr *errors.ErrPromoMinimumNotMet
	require.ErrorAs(t, err, &minErr)
	assert.True(t, minErr.Minimum.Equal(decimal.NewFromInt(50)))
}

func TestPromoService_FixedDiscountCappedAtSubtotal(t *testing.T) {
	svc := newPromoService(&domain.PromoCode{
		Code:          "FLAT80",
		DiscountType:  domain.DiscountTypeFixed,
		DiscountValue: decimal.NewFromInt(80),
		IsActive:      true,
	})

	_, discount, err := svc.Validate(context.Background(), "FLAT80", decimal.NewFromInt(60))
	require.NoError(t, err)
	assert.True(t, discount.Equal(decimal.NewFromInt(60)), "discount capped at subtotal, got %s", discount)
}
