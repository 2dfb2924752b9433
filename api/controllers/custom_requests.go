package controllers

import (
	"net/http"

	"github.com/marocvoyages/marocvoyages-backend/api/responses"
	"github.com/marocvoyages/marocvoyages-backend/api/validators"
	requestsvc "github.com/marocvoyages/marocvoyages-backend/internal/customrequests"
	pkgerrors "github.com/marocvoyages/marocvoyages-backend/pkg/errors"
	"github.com/marocvoyages/marocvoyages-backend/pkg/logger"
)

type createCustomRequestRequest struct {
	FullName          string   `json:"fullName" validate:"required"`
	Email             string   `json:"email" validate:"required,email"`
	Phone             *string  `json:"phone,omitempty"`
	Destination       string   `json:"destination" validate:"required"`
	Budget            string   `json:"budget" validate:"required"`
	DepartureDate     string   `json:"departureDate" validate:"required"`
	Persons           int      `json:"persons" validate:"required,min=1"`
	DurationDays      *int     `json:"durationDays,omitempty" validate:"omitempty,min=1"`
	Interests         []string `json:"interests,omitempty"`
	AdditionalDetails *string  `json:"additionalDetails,omitempty"`
}

// CreateCustomRequest accepts a tailor-made trip enquiry.
func CreateCustomRequest(svc requestsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "custom request service unavailable"))
			return
		}

		var payload createCustomRequestRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		request, err := svc.Create(r.Context(), requestsvc.RequestInput{
			FullName:          payload.FullName,
			Email:             payload.Email,
			Phone:             payload.Phone,
			Destination:       payload.Destination,
			Budget:            payload.Budget,
			DepartureDate:     payload.DepartureDate,
			Persons:           payload.Persons,
			DurationDays:      payload.DurationDays,
			Interests:         payload.Interests,
			AdditionalDetails: payload.AdditionalDetails,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, request)
	}
}
