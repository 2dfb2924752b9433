package blog

import (
	"context"

	"gorm.io/gorm"

	"github.com/marocvoyages/marocvoyages-backend/internal/catalog"
	"github.com/marocvoyages/marocvoyages-backend/pkg/db/models"
)

// Repository defines persistence operations for blog posts.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	List(ctx context.Context) ([]models.BlogPost, error)
	FindByID(ctx context.Context, id uint) (*models.BlogPost, error)
	Create(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error)
	Update(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error)
	Delete(ctx context.Context, id uint) error
}

// Service exposes the blog listing and back-office operations.
type Service interface {
	List(ctx context.Context, criteria catalog.BlogCriteria) ([]models.BlogPost, error)
	Get(ctx context.Context, id uint) (*models.BlogPost, error)
	Create(ctx context.Context, input PostInput) (*models.BlogPost, error)
	Update(ctx context.Context, id uint, input PostInput) (*models.BlogPost, error)
	Delete(ctx context.Context, id uint) error
}
