package tours

import (
	"context"

	"gorm.io/gorm"

	"github.com/marocvoyages/marocvoyages-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a tours repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]models.Tour, error) {
	query := r.db.WithContext(ctx).Model(&models.Tour{})
	if filters.Featured != nil {
		query = query.Where("featured = ?", *filters.Featured)
	}
	if filters.CategoryID != nil {
		query = query.Where("category_id = ?", *filters.CategoryID)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	var tours []models.Tour
	if err := query.Order("id ASC").Find(&tours).Error; err != nil {
		return nil, err
	}
	return tours, nil
}

func (r *repository) FindByID(ctx context.Context, id uint) (*models.Tour, error) {
	var tour models.Tour
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&tour).Error; err != nil {
		return nil, err
	}
	return &tour, nil
}

func (r *repository) Create(ctx context.Context, tour *models.Tour) (*models.Tour, error) {
	if err := r.db.WithContext(ctx).Create(tour).Error; err != nil {
		return nil, err
	}
	return tour, nil
}

func (r *repository) Update(ctx context.Context, tour *models.Tour) (*models.Tour, error) {
	if err := r.db.WithContext(ctx).Save(tour).Error; err != nil {
		return nil, err
	}
	return tour, nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Tour{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
