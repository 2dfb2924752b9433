package checkout

import (
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marocvoyages/marocvoyages-backend/internal/cart"
	"github.com/marocvoyages/marocvoyages-backend/internal/orders"
	"github.com/marocvoyages/marocvoyages-backend/pkg/config"
	"github.com/marocvoyages/marocvoyages-backend/pkg/db/models"
	pkgerrors "github.com/marocvoyages/marocvoyages-backend/pkg/errors"
	"github.com/marocvoyages/marocvoyages-backend/pkg/logger"
)

type stubCarts struct {
	snapshots map[string]cart.Snapshot
	cleared   []string
}

func (s *stubCarts) Snapshot(ctx context.Context, token string) (cart.Snapshot, error) {
	return s.snapshots[token], nil
}

func (s *stubCarts) Clear(ctx context.Context, token string) error {
	s.cleared = append(s.cleared, token)
	delete(s.snapshots, token)
	return nil
}

type stubOrders struct {
	created []orders.OrderInput
	err     error
}

func (s *stubOrders) Create(ctx context.Context, input orders.OrderInput) (*models.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = append(s.created, input)
	return &models.Order{ID: uint(len(s.created)), TotalAmount: input.TotalAmount, Items: input.Items}, nil
}

func newTestService(t *testing.T, carts *stubCarts, orderSvc *stubOrders) Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "checkout-test", Level: zerolog.ErrorLevel, Output: io.Discard})
	svc, err := NewService(carts, orderSvc, config.CheckoutConfig{ShippingFee: 50}, logg)
	require.NoError(t, err)
	return svc
}

func shipping() ShippingDetails {
	return ShippingDetails{
		CustomerName: "Amina",
		Email:        "amina@example.com",
		Phone:        "+212600000000",
		Address:      "12 Rue des Consuls",
		City:         "Rabat",
	}
}

func filledCart(token string) *stubCarts {
	return &stubCarts{snapshots: map[string]cart.Snapshot{
		token: {
			Items: []cart.Item{
				{ProductID: 1, Name: "Berber Rug", Price: 1200, Quantity: 1},
				{ProductID: 2, Name: "Argan Oil", Price: 150, Quantity: 2},
			},
			ItemCount: 3,
			Total:     1500,
		},
	}}
}

func TestFlowAdvancesThroughStages(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, filledCart("tok"), &stubOrders{})

	flow, err := svc.Begin("tok")
	require.NoError(t, err)
	assert.Equal(t, StageShipping, flow.Stage)

	flow, err = svc.SetShipping("tok", shipping())
	require.NoError(t, err)
	assert.Equal(t, StagePayment, flow.Stage)

	order, err := svc.Submit(context.Background(), "tok")
	require.NoError(t, err)
	require.NotNil(t, order)

	flow, err = svc.Flow("tok")
	require.NoError(t, err)
	assert.Equal(t, StageComplete, flow.Stage)
}

func TestSubmitRefusesEmptyCartBeforePersisting(t *testing.T) {
	t.Parallel()

	carts := &stubCarts{snapshots: map[string]cart.Snapshot{}}
	orderSvc := &stubOrders{}
	svc := newTestService(t, carts, orderSvc)

	_, err := svc.SetShipping("tok", shipping())
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), "tok")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodePrecondition, typed.Code())
	assert.Empty(t, orderSvc.created, "no order may be created for an empty cart")
	assert.Empty(t, carts.cleared)

	flow, err := svc.Flow("tok")
	require.NoError(t, err)
	assert.Equal(t, StagePayment, flow.Stage)
}

func TestSubmitAddsShippingFee(t *testing.T) {
	t.Parallel()

	orderSvc := &stubOrders{}
	svc := newTestService(t, filledCart("tok"), orderSvc)

	_, err := svc.SetShipping("tok", shipping())
	require.NoError(t, err)

	order, err := svc.Submit(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, 1550, order.TotalAmount, "subtotal 1500 plus 50 shipping")
	require.Len(t, orderSvc.created, 1)
	require.Len(t, orderSvc.created[0].Items, 2)
	assert.Equal(t, uint(1), orderSvc.created[0].Items[0].ProductID)
}

func TestSubmitClearsCartOnlyOnSuccess(t *testing.T) {
	t.Parallel()

	carts := filledCart("tok")
	orderSvc := &stubOrders{err: pkgerrors.New(pkgerrors.CodeDependency, "database unavailable")}
	svc := newTestService(t, carts, orderSvc)

	_, err := svc.SetShipping("tok", shipping())
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), "tok")
	require.Error(t, err)
	assert.Empty(t, carts.cleared, "cart must survive a failed submission")

	flow, err := svc.Flow("tok")
	require.NoError(t, err)
	assert.Equal(t, StageFailed, flow.Stage)
	assert.Equal(t, "Amina", flow.Shipping.CustomerName, "shipping retained after failure")

	// retry succeeds once the dependency recovers
	orderSvc.err = nil
	order, err := svc.Submit(context.Background(), "tok")
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, []string{"tok"}, carts.cleared)
}

func TestSubmitRequiresPaymentStage(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, filledCart("tok"), &stubOrders{})

	_, err := svc.Submit(context.Background(), "tok")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodePrecondition, typed.Code())
}

func TestSetShippingValidatesForm(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, filledCart("tok"), &stubOrders{})

	details := shipping()
	details.City = " "
	_, err := svc.SetShipping("tok", details)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestBeginAfterCompleteStartsFresh(t *testing.T) {
	t.Parallel()

	carts := filledCart("tok")
	svc := newTestService(t, carts, &stubOrders{})

	_, err := svc.SetShipping("tok", shipping())
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), "tok")
	require.NoError(t, err)

	flow, err := svc.Begin("tok")
	require.NoError(t, err)
	assert.Equal(t, StageShipping, flow.Stage)
	assert.Empty(t, flow.Shipping.CustomerName)
}
