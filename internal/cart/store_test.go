package cart

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matbakhapp/orderapi/internal/domain"
)

func TestMemoryStore_MissForUnknownSession(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryStore_SaveAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	c := domain.NewCart()
	c.Upsert(domain.LineItem{ProductID: "p1", Name: "Koshari", UnitPrice: decimal.NewFromInt(50), SellerID: "chef-a"}, 2)
	c.AppliedPromo = "SAVE10"
	require.NoError(t, store.Save(ctx, "s1", c))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "SAVE10", got.AppliedPromo)

	// Mutating the returned cart must not touch the stored one
	got.Clear()
	again, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, again.Items, 1)
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", domain.NewCart()))
	require.NoError(t, store.Delete(ctx, "s1"))

	_, err := store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrMiss)

	// Deleting an absent session is a no-op
	assert.NoError(t, store.Delete(ctx, "s1"))
}
