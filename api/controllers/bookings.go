package controllers

import (
	"net/http"

	"github.com/marocvoyages/marocvoyages-backend/api/responses"
	"github.com/marocvoyages/marocvoyages-backend/api/validators"
	bookingsvc "github.com/marocvoyages/marocvoyages-backend/internal/bookings"
	pkgerrors "github.com/marocvoyages/marocvoyages-backend/pkg/errors"
	"github.com/marocvoyages/marocvoyages-backend/pkg/logger"
)

type createBookingRequest struct {
	TourID     uint   `json:"tourId" validate:"required"`
	FullName   string `json:"fullName" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required"`
	StartDate  string `json:"startDate" validate:"required"`
	Persons    int    `json:"persons" validate:"required,min=1"`
	TotalPrice int    `json:"totalPrice" validate:"omitempty,min=0"`
}

// CreateBooking accepts a tour reservation. The total is recomputed from the
// tour price, so the client-sent value only has to match when present.
func CreateBooking(svc bookingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "booking service unavailable"))
			return
		}

		var payload createBookingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		booking, err := svc.Create(r.Context(), bookingsvc.BookingInput{
			TourID:     payload.TourID,
			FullName:   payload.FullName,
			Email:      payload.Email,
			Phone:      payload.Phone,
			StartDate:  payload.StartDate,
			Persons:    payload.Persons,
			TotalPrice: payload.TotalPrice,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, booking)
	}
}
