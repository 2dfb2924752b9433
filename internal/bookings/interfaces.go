package bookings

import (
	"context"

	"gorm.io/gorm"

	"github.com/marocvoyages/marocvoyages-backend/pkg/db/models"
	"github.com/marocvoyages/marocvoyages-backend/pkg/enums"
)

// Repository defines persistence operations for bookings.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, booking *models.Booking) (*models.Booking, error)
	List(ctx context.Context) ([]models.Booking, error)
	FindByID(ctx context.Context, id uint) (*models.Booking, error)
	UpdateStatus(ctx context.Context, id uint, status enums.BookingStatus) error
}

// TourLoader resolves the tour a booking refers to.
type TourLoader interface {
	Get(ctx context.Context, id uint) (*models.Tour, error)
}

// Service exposes booking submission and back-office operations.
type Service interface {
	Create(ctx context.Context, input BookingInput) (*models.Booking, error)
	List(ctx context.Context) ([]models.Booking, error)
	Get(ctx context.Context, id uint) (*models.Booking, error)
	UpdateStatus(ctx context.Context, id uint, status string) (*models.Booking, error)
}
