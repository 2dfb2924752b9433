package customrequests

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/marocvoyages/marocvoyages-backend/pkg/db/models"
	"github.com/marocvoyages/marocvoyages-backend/pkg/enums"
	pkgerrors "github.com/marocvoyages/marocvoyages-backend/pkg/errors"
)

// RequestInput carries the payload accepted for a tailor-made trip inquiry.
type RequestInput struct {
	FullName          string
	Email             string
	Phone             *string
	Destination       string
	Budget            string
	DepartureDate     string
	Persons           int
	DurationDays      *int
	Interests         []string
	AdditionalDetails *string
}

// Repository defines persistence operations for custom requests.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, request *models.CustomRequest) (*models.CustomRequest, error)
	List(ctx context.Context) ([]models.CustomRequest, error)
	FindByID(ctx context.Context, id uint) (*models.CustomRequest, error)
	UpdateStatus(ctx context.Context, id uint, status enums.RequestStatus) error
}

// Service exposes custom request submission and back-office operations.
type Service interface {
	Create(ctx context.Context, input RequestInput) (*models.CustomRequest, error)
	List(ctx context.Context) ([]models.CustomRequest, error)
	Get(ctx context.Context, id uint) (*models.CustomRequest, error)
	UpdateStatus(ctx context.Context, id uint, status string) (*models.CustomRequest, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a custom requests repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, request *models.CustomRequest) (*models.CustomRequest, error) {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		return nil, err
	}
	return request, nil
}

func (r *repository) List(ctx context.Context) ([]models.CustomRequest, error) {
	var requests []models.CustomRequest
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *repository) FindByID(ctx context.Context, id uint) (*models.CustomRequest, error) {
	var request models.CustomRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uint, status enums.RequestStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.CustomRequest{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type service struct {
	repo Repository
}

// NewService builds a custom requests service backed by the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("custom requests repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input RequestInput) (*models.CustomRequest, error) {
	if strings.TrimSpace(input.FullName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "full name is required")
	}
	if strings.TrimSpace(input.Email) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if strings.TrimSpace(input.Destination) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "destination is required")
	}
	if strings.TrimSpace(input.Budget) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "budget is required")
	}
	if strings.TrimSpace(input.DepartureDate) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "departure date is required")
	}
	if input.Persons < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one traveler is required")
	}
	request := &models.CustomRequest{
		FullName:          strings.TrimSpace(input.FullName),
		Email:             strings.TrimSpace(input.Email),
		Phone:             input.Phone,
		Destination:       strings.TrimSpace(input.Destination),
		Budget:            input.Budget,
		DepartureDate:     input.DepartureDate,
		Persons:           input.Persons,
		DurationDays:      input.DurationDays,
		Interests:         input.Interests,
		AdditionalDetails: input.AdditionalDetails,
		Status:            enums.RequestStatusNew,
	}
	created, err := s.repo.Create(ctx, request)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create custom request")
	}
	return created, nil
}

func (s *service) List(ctx context.Context) ([]models.CustomRequest, error) {
	requests, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list custom requests")
	}
	return requests, nil
}

func (s *service) Get(ctx context.Context, id uint) (*models.CustomRequest, error) {
	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "custom request not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load custom request")
	}
	return request, nil
}

// UpdateStatus replaces the request status; enum membership is the only gate.
func (s *service) UpdateStatus(ctx context.Context, id uint, status string) (*models.CustomRequest, error) {
	parsed, err := enums.ParseRequestStatus(status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	if err := s.repo.UpdateStatus(ctx, id, parsed); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "custom request not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update custom request status")
	}
	return s.Get(ctx, id)
}
