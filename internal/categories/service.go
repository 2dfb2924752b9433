package categories

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/marocvoyages/marocvoyages-backend/pkg/db/models"
	pkgerrors "github.com/marocvoyages/marocvoyages-backend/pkg/errors"
)

// CategoryInput carries the fields accepted when creating or updating a category.
type CategoryInput struct {
	Name        string
	Description *string
	ImageURL    *string
}

// Service exposes category browsing and back-office operations.
type Service interface {
	List(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, id uint) (*models.Category, error)
	Create(ctx context.Context, input CategoryInput) (*models.Category, error)
	Update(ctx context.Context, id uint, input CategoryInput) (*models.Category, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

// NewService builds a categories service backed by the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("categories repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return categories, nil
}

func (s *service) Get(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	return category, nil
}

func (s *service) Create(ctx context.Context, input CategoryInput) (*models.Category, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	created, err := s.repo.Create(ctx, &models.Category{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		ImageURL:    input.ImageURL,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id uint, input CategoryInput) (*models.Category, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Name = strings.TrimSpace(input.Name)
	existing.Description = input.Description
	existing.ImageURL = input.ImageURL
	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update category")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
	}
	return nil
}
