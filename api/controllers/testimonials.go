package controllers

import (
	"net/http"

	"github.com/marocvoyages/marocvoyages-backend/api/responses"
	"github.com/marocvoyages/marocvoyages-backend/api/validators"
	testimonialsvc "github.com/marocvoyages/marocvoyages-backend/internal/testimonials"
	pkgerrors "github.com/marocvoyages/marocvoyages-backend/pkg/errors"
	"github.com/marocvoyages/marocvoyages-backend/pkg/logger"
)

func ListTestimonials(svc testimonialsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "testimonial service unavailable"))
			return
		}

		testimonials, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, testimonials)
	}
}

type createTestimonialRequest struct {
	Name    string  `json:"name" validate:"required"`
	Country string  `json:"country" validate:"required"`
	Avatar  *string `json:"avatar,omitempty"`
	Rating  int     `json:"rating" validate:"required,min=1,max=5"`
	Comment string  `json:"comment" validate:"required"`
}

// CreateTestimonial accepts visitor reviews.
func CreateTestimonial(svc testimonialsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "testimonial service unavailable"))
			return
		}

		var payload createTestimonialRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		testimonial, err := svc.Create(r.Context(), testimonialsvc.TestimonialInput{
			Name:    payload.Name,
			Country: payload.Country,
			Avatar:  payload.Avatar,
			Rating:  payload.Rating,
			Comment: payload.Comment,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, testimonial)
	}
}
