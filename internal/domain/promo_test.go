package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPromoCode_DiscountForPercentage(t *testing.T) {
	promo := &PromoCode{
		Code:          "SAVE10",
		DiscountType:  DiscountTypePercentage,
		DiscountValue: decimal.NewFromInt(10),
	}

	// subtotal 100 at 10% => 10
	got := promo.DiscountFor(decimal.NewFromInt(100))
	assert.True(t, got.Equal(decimal.NewFromInt(10)), "got %s", got)
}

func TestPromoCode_DiscountForFixed(t *testing.T) {
	promo := &PromoCode{
		Code:          "FLAT25",
		DiscountType:  DiscountTypeFixed,
		DiscountValue: decimal.NewFromInt(25),
	}

	got := promo.DiscountFor(decimal.NewFromInt(100))
	assert.True(t, got.Equal(decimal.NewFromInt(25)), "got %s", got)
}

func TestPromoCode_DiscountNeverExceedsSubtotal(t *testing.T) {
	fixed := &PromoCode{
		DiscountType:  DiscountTypeFixed,
		DiscountValue: decimal.NewFromInt(25),
	}

	subtotal := decimal.NewFromInt(15)
	got := fixed.DiscountFor(subtotal)
	assert.True(t, got.Equal(subtotal), "fixed discount must cap at subtotal, got %s", got)
	assert.False(t, subtotal.Sub(got).IsNegative())

	full := &PromoCode{
		DiscountType:  DiscountTypePercentage,
		DiscountValue: decimal.NewFromInt(100),
	}
	got = full.DiscountFor(subtotal)
	assert.True(t, got.Equal(subtotal), "100%% discount equals subtotal, got %s", got)
}
