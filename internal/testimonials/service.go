package testimonials

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/marocvoyages/marocvoyages-backend/pkg/db/models"
	pkgerrors "github.com/marocvoyages/marocvoyages-backend/pkg/errors"
)

// TestimonialInput carries the fields accepted when publishing a testimonial.
type TestimonialInput struct {
	Name    string
	Country string
	Avatar  *string
	Rating  int
	Comment string
}

// Repository defines persistence operations for testimonials.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	List(ctx context.Context) ([]models.Testimonial, error)
	Create(ctx context.Context, testimonial *models.Testimonial) (*models.Testimonial, error)
}

// Service exposes testimonial listing and publication.
type Service interface {
	List(ctx context.Context) ([]models.Testimonial, error)
	Create(ctx context.Context, input TestimonialInput) (*models.Testimonial, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a testimonials repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) List(ctx context.Context) ([]models.Testimonial, error) {
	var testimonials []models.Testimonial
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&testimonials).Error; err != nil {
		return nil, err
	}
	return testimonials, nil
}

func (r *repository) Create(ctx context.Context, testimonial *models.Testimonial) (*models.Testimonial, error) {
	if err := r.db.WithContext(ctx).Create(testimonial).Error; err != nil {
		return nil, err
	}
	return testimonial, nil
}

type service struct {
	repo Repository
}

// NewService builds a testimonials service backed by the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("testimonials repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]models.Testimonial, error) {
	testimonials, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list testimonials")
	}
	return testimonials, nil
}

func (s *service) Create(ctx context.Context, input TestimonialInput) (*models.Testimonial, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if strings.TrimSpace(input.Country) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "country is required")
	}
	if strings.TrimSpace(input.Comment) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "comment is required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	created, err := s.repo.Create(ctx, &models.Testimonial{
		Name:    strings.TrimSpace(input.Name),
		Country: strings.TrimSpace(input.Country),
		Avatar:  input.Avatar,
		Rating:  input.Rating,
		Comment: input.Comment,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create testimonial")
	}
	return created, nil
}
