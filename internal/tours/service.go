package tours

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/marocvoyages/marocvoyages-backend/internal/catalog"
	"github.com/marocvoyages/marocvoyages-backend/pkg/db/models"
	pkgerrors "github.com/marocvoyages/marocvoyages-backend/pkg/errors"
)

// TourInput carries the fields accepted when creating or updating a tour.
type TourInput struct {
	Title            string
	Description      string
	ShortDescription *string
	ImageURL         *string
	DurationDays     int
	Price            int
	DiscountPrice    *int
	Locations        []string
	Featured         bool
	CategoryID       *uint
	Rating           float64
	ReviewCount      int
	Plan             []models.TourPlanDay
	MapPoints        []models.MapPoint
}

type service struct {
	repo Repository
}

// NewService builds a tours service backed by the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("tours repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, filters ListFilters, criteria catalog.TourCriteria) ([]models.Tour, error) {
	tours, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tours")
	}
	return catalog.FilterTours(tours, criteria), nil
}

func (s *service) Get(ctx context.Context, id uint) (*models.Tour, error) {
	tour, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tour not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tour")
	}
	return tour, nil
}

func (s *service) Create(ctx context.Context, input TourInput) (*models.Tour, error) {
	if err := validateTourInput(input); err != nil {
		return nil, err
	}
	tour := tourFromInput(input)
	created, err := s.repo.Create(ctx, tour)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create tour")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id uint, input TourInput) (*models.Tour, error) {
	if err := validateTourInput(input); err != nil {
		return nil, err
	}
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	tour := tourFromInput(input)
	tour.ID = existing.ID
	updated, err := s.repo.Update(ctx, tour)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update tour")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "tour not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete tour")
	}
	return nil
}

func validateTourInput(input TourInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if strings.TrimSpace(input.Description) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "description is required")
	}
	if input.DurationDays < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "duration must be at least one day")
	}
	if input.Price < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.DiscountPrice != nil && *input.DiscountPrice < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount price cannot be negative")
	}
	return nil
}

func tourFromInput(input TourInput) *models.Tour {
	return &models.Tour{
		Title:            strings.TrimSpace(input.Title),
		Description:      input.Description,
		ShortDescription: input.ShortDescription,
		ImageURL:         input.ImageURL,
		DurationDays:     input.DurationDays,
		Price:            input.Price,
		DiscountPrice:    input.DiscountPrice,
		Locations:        input.Locations,
		Featured:         input.Featured,
		CategoryID:       input.CategoryID,
		Rating:           input.Rating,
		ReviewCount:      input.ReviewCount,
		Plan:             input.Plan,
		MapPoints:        input.MapPoints,
	}
}
