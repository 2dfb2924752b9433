package checkout

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/marocvoyages/marocvoyages-backend/internal/cart"
	"github.com/marocvoyages/marocvoyages-backend/internal/orders"
	"github.com/marocvoyages/marocvoyages-backend/pkg/config"
	"github.com/marocvoyages/marocvoyages-backend/pkg/db/models"
	pkgerrors "github.com/marocvoyages/marocvoyages-backend/pkg/errors"
	"github.com/marocvoyages/marocvoyages-backend/pkg/logger"
)

type cartAccess interface {
	Snapshot(ctx context.Context, token string) (cart.Snapshot, error)
	Clear(ctx context.Context, token string) error
}

type orderCreator interface {
	Create(ctx context.Context, input orders.OrderInput) (*models.Order, error)
}

// Service drives the checkout state machine and order submission.
type Service interface {
	Begin(token string) (Flow, error)
	SetShipping(token string, details ShippingDetails) (Flow, error)
	Flow(token string) (Flow, error)
	Submit(ctx context.Context, token string) (*models.Order, error)
}

type service struct {
	mu          sync.Mutex
	flows       map[string]*Flow
	carts       cartAccess
	orders      orderCreator
	shippingFee int
	logg        *logger.Logger
}

// NewService builds a checkout service backed by the cart store and orders stack.
func NewService(carts cartAccess, orderSvc orderCreator, cfg config.CheckoutConfig, logg *logger.Logger) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if orderSvc == nil {
		return nil, fmt.Errorf("orders service required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if cfg.ShippingFee < 0 {
		return nil, fmt.Errorf("shipping fee cannot be negative")
	}
	return &service{
		flows:       make(map[string]*Flow),
		carts:       carts,
		orders:      orderSvc,
		shippingFee: cfg.ShippingFee,
		logg:        logg,
	}, nil
}

// Begin starts or restarts the flow at the shipping stage. A completed flow
// restarts clean; a failed one returns to payment with shipping retained.
func (s *service) Begin(token string) (Flow, error) {
	if token == "" {
		return Flow{}, pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	flow, ok := s.flows[token]
	if !ok || flow.Stage == StageComplete {
		flow = &Flow{Stage: StageShipping}
		s.flows[token] = flow
	}
	return *flow, nil
}

// SetShipping records the delivery form and advances to the payment stage.
func (s *service) SetShipping(token string, details ShippingDetails) (Flow, error) {
	if token == "" {
		return Flow{}, pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}
	if err := validateShipping(details); err != nil {
		return Flow{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	flow, ok := s.flows[token]
	if !ok || flow.Stage == StageComplete {
		flow = &Flow{}
		s.flows[token] = flow
	}
	flow.Shipping = details
	flow.Stage = StagePayment
	return *flow, nil
}

// Flow returns the current state for the token, defaulting to shipping.
func (s *service) Flow(token string) (Flow, error) {
	if token == "" {
		return Flow{}, pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if flow, ok := s.flows[token]; ok {
		return *flow, nil
	}
	return Flow{Stage: StageShipping}, nil
}

// Submit turns the cart into an order. The cart must not be empty; that is
// checked before anything is persisted. The cart is cleared only when the
// order was stored. A failed submission keeps the shipping data and can be
// retried from the payment step.
func (s *service) Submit(ctx context.Context, token string) (*models.Order, error) {
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}

	s.mu.Lock()
	flow, ok := s.flows[token]
	if !ok || (flow.Stage != StagePayment && flow.Stage != StageFailed) {
		s.mu.Unlock()
		return nil, pkgerrors.New(pkgerrors.CodePrecondition, "checkout is not at the payment stage")
	}
	shipping := flow.Shipping
	flow.Stage = StageSubmitting
	s.mu.Unlock()

	snap, err := s.carts.Snapshot(ctx, token)
	if err != nil {
		s.setStage(token, StagePayment)
		return nil, err
	}
	if len(snap.Items) == 0 {
		s.setStage(token, StagePayment)
		return nil, pkgerrors.New(pkgerrors.CodePrecondition, "cart is empty")
	}

	items := make([]models.OrderLineItem, 0, len(snap.Items))
	for _, item := range snap.Items {
		items = append(items, models.OrderLineItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	order, err := s.orders.Create(ctx, orders.OrderInput{
		CustomerName: shipping.CustomerName,
		Email:        shipping.Email,
		Phone:        shipping.Phone,
		Address:      shipping.Address,
		City:         shipping.City,
		ZipCode:      shipping.ZipCode,
		Items:        items,
		TotalAmount:  snap.Total + s.shippingFee,
	})
	if err != nil {
		s.setStage(token, StageFailed)
		return nil, err
	}

	if err := s.carts.Clear(ctx, token); err != nil {
		s.logg.Warn(s.logg.WithCartToken(ctx, token), "failed to clear cart after order: "+err.Error())
	}
	s.setStage(token, StageComplete)
	return order, nil
}

func (s *service) setStage(token string, stage Stage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if flow, ok := s.flows[token]; ok {
		flow.Stage = stage
	}
}

func validateShipping(details ShippingDetails) error {
	if strings.TrimSpace(details.CustomerName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	if strings.TrimSpace(details.Email) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if strings.TrimSpace(details.Phone) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "phone is required")
	}
	if strings.TrimSpace(details.Address) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "address is required")
	}
	if strings.TrimSpace(details.City) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "city is required")
	}
	return nil
}
