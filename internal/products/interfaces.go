package products

import (
	"context"

	"gorm.io/gorm"

	"github.com/marocvoyages/marocvoyages-backend/internal/catalog"
	"github.com/marocvoyages/marocvoyages-backend/pkg/db/models"
)

// Repository defines persistence operations for products.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	List(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id uint) error
}

// Service exposes the store catalog and back-office operations.
type Service interface {
	List(ctx context.Context, criteria catalog.ProductCriteria) ([]models.Product, error)
	Get(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, input ProductInput) (*models.Product, error)
	Update(ctx context.Context, id uint, input ProductInput) (*models.Product, error)
	Delete(ctx context.Context, id uint) error
}
