package orders

import (
	"context"

	"gorm.io/gorm"

	"github.com/marocvoyages/marocvoyages-backend/pkg/db/models"
	"github.com/marocvoyages/marocvoyages-backend/pkg/enums"
)

// Repository defines persistence operations for orders.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	FindByID(ctx context.Context, id uint) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uint, status enums.OrderStatus) error
}

// Service exposes order submission and back-office operations.
type Service interface {
	Create(ctx context.Context, input OrderInput) (*models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	Get(ctx context.Context, id uint) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uint, status string) (*models.Order, error)
}
