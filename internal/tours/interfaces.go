package tours

import (
	"context"

	"gorm.io/gorm"

	"github.com/marocvoyages/marocvoyages-backend/internal/catalog"
	"github.com/marocvoyages/marocvoyages-backend/pkg/db/models"
)

// ListFilters narrow the tour listing at the database level.
type ListFilters struct {
	Featured   *bool
	CategoryID *uint
	Limit      int
}

// Repository defines persistence operations for tours.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	List(ctx context.Context, filters ListFilters) ([]models.Tour, error)
	FindByID(ctx context.Context, id uint) (*models.Tour, error)
	Create(ctx context.Context, tour *models.Tour) (*models.Tour, error)
	Update(ctx context.Context, tour *models.Tour) (*models.Tour, error)
	Delete(ctx context.Context, id uint) error
}

// Service exposes tour catalog and back-office operations.
type Service interface {
	List(ctx context.Context, filters ListFilters, criteria catalog.TourCriteria) ([]models.Tour, error)
	Get(ctx context.Context, id uint) (*models.Tour, error)
	Create(ctx context.Context, input TourInput) (*models.Tour, error)
	Update(ctx context.Context, id uint, input TourInput) (*models.Tour, error)
	Delete(ctx context.Context, id uint) error
}
