package orders

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/marocvoyages/marocvoyages-backend/pkg/db/models"
	"github.com/marocvoyages/marocvoyages-backend/pkg/enums"
	pkgerrors "github.com/marocvoyages/marocvoyages-backend/pkg/errors"
)

// OrderInput carries the payload accepted when submitting an order.
type OrderInput struct {
	CustomerName string
	Email        string
	Phone        string
	Address      string
	City         string
	ZipCode      *string
	Items        []models.OrderLineItem
	TotalAmount  int
}

type service struct {
	repo Repository
}

// NewService builds an orders service backed by the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input OrderInput) (*models.Order, error) {
	if err := validateOrderInput(input); err != nil {
		return nil, err
	}
	order := &models.Order{
		CustomerName: strings.TrimSpace(input.CustomerName),
		Email:        strings.TrimSpace(input.Email),
		Phone:        strings.TrimSpace(input.Phone),
		Address:      input.Address,
		City:         input.City,
		ZipCode:      input.ZipCode,
		Items:        input.Items,
		TotalAmount:  input.TotalAmount,
		Status:       enums.OrderStatusPending,
	}
	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}
	return created, nil
}

func (s *service) List(ctx context.Context) ([]models.Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return orders, nil
}

func (s *service) Get(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

// UpdateStatus replaces the order status. Any known status may replace any
// other; membership in the enum is the only gate.
func (s *service) UpdateStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	parsed, err := enums.ParseOrderStatus(status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	if err := s.repo.UpdateStatus(ctx, id, parsed); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	return s.Get(ctx, id)
}

func validateOrderInput(input OrderInput) error {
	if strings.TrimSpace(input.CustomerName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	if strings.TrimSpace(input.Email) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if strings.TrimSpace(input.Phone) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "phone is required")
	}
	if strings.TrimSpace(input.Address) == "" || strings.TrimSpace(input.City) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "shipping address is required")
	}
	if len(input.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}
	for _, item := range input.Items {
		if item.ProductID == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "order item product id is required")
		}
		if item.Quantity < 1 {
			return pkgerrors.New(pkgerrors.CodeValidation, "order item quantity must be positive")
		}
		if item.Price < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "order item price cannot be negative")
		}
	}
	if input.TotalAmount < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "total amount cannot be negative")
	}
	return nil
}
