package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/matbakhapp/orderapi/internal/domain"
	"github.com/matbakhapp/orderapi/internal/notification"
	"github.com/matbakhapp/orderapi/internal/repository"
	"github.com/matbakhapp/orderapi/pkg/errors"
)

type orderFixture struct {
	svc        *OrderService
	orderRepo  *mockOrderRepo
	eventRepo  *mockEventRepo
	dispatcher *mockDispatcher
}

func newOrderFixture(promos ...*domain.PromoCode) *orderFixture {
	orderRepo := newMockOrderRepo()
	eventRepo := &mockEventRepo{}
	dispatcher := &mockDispatcher{}
	repos := &repository.Repositories{
		Order:      orderRepo,
		Promo:      newMockPromoRepo(promos...),
		OrderEvent: eventRepo,
	}
	promoSvc := NewPromoService(repos, zap.NewNop())
	return &orderFixture{
		svc:        NewOrderService(repos, promoSvc, dispatcher, zap.NewNop()),
		orderRepo:  orderRepo,
		eventRepo:  eventRepo,
		dispatcher: dispatcher,
	}
}

func twoItemCart() *domain.Cart {
	c := domain.NewCart()
	c.Upsert(domain.LineItem{ProductID: "1", Name: "Koshari", UnitPrice: decimal.NewFromInt(50), SellerID: "ChefA"}, 2)
	c.Upsert(domain.LineItem{ProductID: "2", Name: "Molokhia", UnitPrice: decimal.NewFromInt(40), SellerID: "ChefA"}, 1)
	return c
}

func checkout() CheckoutRequest {
	return CheckoutRequest{
		CustomerName: "Mona",
		Phone:        "+20 100 555 0101",
		Address:      "12 Tahrir St, Cairo",
	}
}

func TestOrderService_Submit(t *testing.T) {
	f := newOrderFixture()

	order, err := f.svc.Submit(context.Background(), twoItemCart(), checkout())
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(140)))
	assert.True(t, order.Discount.IsZero())
	assert.True(t, order.Total.Equal(decimal.NewFromInt(140)))
	assert.Equal(t, "ChefA", order.SellerID)
	require.Len(t, order.Items, 2)

	// Stored and visible through the repo
	stored, err := f.orderRepo.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, stored.Status)

	// Audit and created notification
	require.Len(t, f.eventRepo.byType(domain.EventTypeOrderCreated), 1)
	sent := f.dispatcher.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, notification.KindOrderCreated, sent[0].Kind)
	assert.Equal(t, order.ID, sent[0].OrderID)
}

func TestOrderService_SubmitWithPromo(t *testing.T) {
	f := newOrderFixture(save10())

	c := twoItemCart()
	c.AppliedPromo = "SAVE10"

	order, err := f.svc.Submit(context.Background(), c, checkout())
	require.NoError(t, err)

	assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(140)))
	assert.True(t, order.Discount.Equal(decimal.NewFromInt(14)), "got %s", order.Discount)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(126)))
	require.NotNil(t, order.PromoCode)
	assert.Equal(t, "SAVE10", *order.PromoCode)
}

func TestOrderService_SubmitSnapshotIsImmutable(t *testing.T) {
	f := newOrderFixture()

	c := twoItemCart()
	order, err := f.svc.Submit(context.Background(), c, checkout())
	require.NoError(t, err)

	// Mutating the live cart after submission must not touch the order
	c.Upsert(domain.LineItem{ProductID: "1", Name: "Koshari", UnitPrice: decimal.NewFromInt(99), SellerID: "ChefA"}, 7)

	require.Len(t, order.Items, 2)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.True(t, order.Items[0].UnitPrice.Equal(decimal.NewFromInt(50)))
}

func TestOrderService_SubmitPersistenceFailure(t *testing.T) {
	f := newOrderFixture()
	f.orderRepo.createErr = fmt.Errorf("connection refused")

	c := twoItemCart()
	_, err := f.svc.Submit(context.Background(), c, checkout())

	var failed *errors.ErrSubmissionFailed
	require.ErrorAs(t, err, &failed)

	// The cart keeps its two items; nothing was notified or audited
	assert.Len(t, c.Items, 2)
	assert.Empty(t, f.dispatcher.sent())
	assert.Empty(t, f.eventRepo.events)
}

func TestOrderService_SubmitEmptyCart(t *testing.T) {
	f := newOrderFixture()

	_, err := f.svc.Submit(context.Background(), domain.NewCart(), checkout())
	assert.Error(t, err)
}

func TestOrderService_TransitionSequence(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	order, err := f.svc.Submit(ctx, twoItemCart(), checkout())
	require.NoError(t, err)

	for _, target := range []domain.OrderStatus{
		domain.OrderStatusPreparing,
		domain.OrderStatusOutForDelivery,
		domain.OrderStatusDelivered,
	} {
		updated, err := f.svc.Transition(ctx, order.ID, target)
		require.NoError(t, err, "transition to %s", target)
		assert.Equal(t, target, updated.Status)
	}

	// created + three status changes
	sent := f.dispatcher.sent()
	require.Len(t, sent, 4)
	assert.Equal(t, domain.OrderStatusPreparing, sent[1].ToStatus)
	assert.Equal(t, domain.OrderStatusPending, sent[1].FromStatus)
	assert.Equal(t, domain.OrderStatusDelivered, sent[3].ToStatus)
}

func TestOrderService_TransitionSkippingStageFails(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	order, err := f.svc.Submit(ctx, twoItemCart(), checkout())
	require.NoError(t, err)

	_, err = f.svc.Transition(ctx, order.ID, domain.OrderStatusDelivered)
	var invalid *errors.ErrInvalidStateTransition
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, domain.OrderStatusPending, invalid.From)

	stored, err := f.orderRepo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, stored.Status)
}

func TestOrderService_CancelAfterDispatchFails(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	order, err := f.svc.Submit(ctx, twoItemCart(), checkout())
	require.NoError(t, err)
	_, err = f.svc.Transition(ctx, order.ID, domain.OrderStatusPreparing)
	require.NoError(t, err)
	_, err = f.svc.Transition(ctx, order.ID, domain.OrderStatusOutForDelivery)
	require.NoError(t, err)

	_, err = f.svc.Transition(ctx, order.ID, domain.OrderStatusCancelled)
	var invalid *errors.ErrInvalidStateTransition
	require.ErrorAs(t, err, &invalid)

	stored, err := f.orderRepo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusOutForDelivery, stored.Status)
}

func TestOrderService_CancelWhilePreparing(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	order, err := f.svc.Submit(ctx, twoItemCart(), checkout())
	require.NoError(t, err)
	_, err = f.svc.Transition(ctx, order.ID, domain.OrderStatusPreparing)
	require.NoError(t, err)

	updated, err := f.svc.Transition(ctx, order.ID, domain.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, updated.Status)
}

func TestOrderService_DispatchFailureDoesNotRollBack(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	order, err := f.svc.Submit(ctx, twoItemCart(), checkout())
	require.NoError(t, err)

	f.dispatcher.err = fmt.Errorf("webhook unreachable")

	updated, err := f.svc.Transition(ctx, order.ID, domain.OrderStatusPreparing)
	require.NoError(t, err, "dispatch failure must not surface")
	assert.Equal(t, domain.OrderStatusPreparing, updated.Status)

	stored, err := f.orderRepo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPreparing, stored.Status)
}

func TestOrderService_ForceStatusIsTaggedAsOverride(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	order, err := f.svc.Submit(ctx, twoItemCart(), checkout())
	require.NoError(t, err)

	// Jump straight to delivered, which the engine would refuse
	updated, err := f.svc.ForceStatus(ctx, order.ID, domain.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusDelivered, updated.Status)

	overrides := f.eventRepo.byType(domain.EventTypeStatusOverride)
	require.Len(t, overrides, 1)
	assert.Equal(t, true, overrides[0].EventData["forced"])
	assert.Empty(t, f.eventRepo.byType(domain.EventTypeStatusChange))

	sent := f.dispatcher.sent()
	require.Len(t, sent, 2)
	assert.Equal(t, true, sent[1].Payload["forced"])
}

func TestOrderService_ConcurrentTransitionsSerialized(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	order, err := f.svc.Submit(ctx, twoItemCart(), checkout())
	require.NoError(t, err)

	// Two racing requests for the same transition: exactly one wins
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := f.svc.Transition(ctx, order.ID, domain.OrderStatusPreparing)
			results <- err
		}()
	}

	errs := []error{<-results, <-results}
	var failures int
	for _, err := range errs {
		if err != nil {
			var invalid *errors.ErrInvalidStateTransition
			require.ErrorAs(t, err, &invalid)
			failures++
		}
	}
	assert.Equal(t, 1, failures)

	stored, err := f.orderRepo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPreparing, stored.Status)
}
