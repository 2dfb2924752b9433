package bookings

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/marocvoyages/marocvoyages-backend/pkg/db/models"
	"github.com/marocvoyages/marocvoyages-backend/pkg/enums"
	pkgerrors "github.com/marocvoyages/marocvoyages-backend/pkg/errors"
)

const dateLayout = "2006-01-02"

// BookingInput carries the payload accepted when reserving a tour.
type BookingInput struct {
	TourID     uint
	FullName   string
	Email      string
	Phone      string
	StartDate  string
	Persons    int
	TotalPrice int
}

type service struct {
	repo  Repository
	tours TourLoader
	now   func() time.Time
}

// NewService builds a bookings service backed by the provided stack.
func NewService(repo Repository, tours TourLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("bookings repository required")
	}
	if tours == nil {
		return nil, fmt.Errorf("tour loader required")
	}
	return &service{repo: repo, tours: tours, now: time.Now}, nil
}

// Create validates the request against the referenced tour and persists the
// booking. The total is recomputed server-side; a client total that disagrees
// is rejected.
func (s *service) Create(ctx context.Context, input BookingInput) (*models.Booking, error) {
	if input.TourID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tour id is required")
	}
	if strings.TrimSpace(input.FullName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "full name is required")
	}
	if strings.TrimSpace(input.Email) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if strings.TrimSpace(input.Phone) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone is required")
	}
	if input.Persons < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one traveler is required")
	}

	if _, err := time.Parse(dateLayout, input.StartDate); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "start date must use YYYY-MM-DD")
	}
	if input.StartDate < s.now().Format(dateLayout) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "start date cannot be in the past")
	}

	tour, err := s.tours.Get(ctx, input.TourID)
	if err != nil {
		return nil, err
	}

	expected := tour.Price * input.Persons
	if input.TotalPrice != 0 && input.TotalPrice != expected {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "total price does not match tour price")
	}

	booking := &models.Booking{
		TourID:     tour.ID,
		FullName:   strings.TrimSpace(input.FullName),
		Email:      strings.TrimSpace(input.Email),
		Phone:      strings.TrimSpace(input.Phone),
		StartDate:  input.StartDate,
		Persons:    input.Persons,
		TotalPrice: expected,
		Status:     enums.BookingStatusPending,
	}
	created, err := s.repo.Create(ctx, booking)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create booking")
	}
	return created, nil
}

func (s *service) List(ctx context.Context) ([]models.Booking, error) {
	bookings, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list bookings")
	}
	return bookings, nil
}

func (s *service) Get(ctx context.Context, id uint) (*models.Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking")
	}
	return booking, nil
}

// UpdateStatus replaces the booking status; enum membership is the only gate.
func (s *service) UpdateStatus(ctx context.Context, id uint, status string) (*models.Booking, error) {
	parsed, err := enums.ParseBookingStatus(status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	if err := s.repo.UpdateStatus(ctx, id, parsed); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update booking status")
	}
	return s.Get(ctx, id)
}
