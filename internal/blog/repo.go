package blog

import (
	"context"

	"gorm.io/gorm"

	"github.com/marocvoyages/marocvoyages-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a blog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) List(ctx context.Context) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	if err := r.db.WithContext(ctx).Order("publish_date DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *repository) FindByID(ctx context.Context, id uint) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *repository) Create(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error) {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

func (r *repository) Update(ctx context.Context, post *models.BlogPost) (*models.BlogPost, error) {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.BlogPost{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
