package controllers

import (
	"net/http"

	"github.com/marocvoyages/marocvoyages-backend/api/responses"
	"github.com/marocvoyages/marocvoyages-backend/api/validators"
	toursvc "github.com/marocvoyages/marocvoyages-backend/internal/tours"
	"github.com/marocvoyages/marocvoyages-backend/pkg/db/models"
	pkgerrors "github.com/marocvoyages/marocvoyages-backend/pkg/errors"
	"github.com/marocvoyages/marocvoyages-backend/pkg/logger"
)

type tourPlanDayRequest struct {
	Day         int    `json:"day" validate:"required,min=1"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

type mapPointRequest struct {
	Lat   float64 `json:"lat" validate:"required"`
	Lng   float64 `json:"lng" validate:"required"`
	Title string  `json:"title"`
}

type tourRequest struct {
	Title            string               `json:"title" validate:"required"`
	Description      string               `json:"description" validate:"required"`
	ShortDescription *string              `json:"shortDescription,omitempty"`
	ImageURL         *string              `json:"imageUrl,omitempty"`
	DurationDays     int                  `json:"durationDays" validate:"required,min=1"`
	Price            int                  `json:"price" validate:"required,min=0"`
	DiscountPrice    *int                 `json:"discountPrice,omitempty" validate:"omitempty,min=0"`
	Locations        []string             `json:"locations,omitempty"`
	Featured         bool                 `json:"featured"`
	CategoryID       *uint                `json:"categoryId,omitempty"`
	Rating           float64              `json:"rating" validate:"omitempty,gte=0,lte=5"`
	ReviewCount      int                  `json:"reviewCount" validate:"omitempty,min=0"`
	Plan             []tourPlanDayRequest `json:"plan,omitempty" validate:"omitempty,dive"`
	MapPoints        []mapPointRequest    `json:"mapPoints,omitempty" validate:"omitempty,dive"`
}

func (r tourRequest) toInput() toursvc.TourInput {
	plan := make([]models.TourPlanDay, 0, len(r.Plan))
	for _, day := range r.Plan {
		plan = append(plan, models.TourPlanDay{
			Day:         day.Day,
			Title:       day.Title,
			Description: day.Description,
		})
	}
	points := make([]models.MapPoint, 0, len(r.MapPoints))
	for _, point := range r.MapPoints {
		points = append(points, models.MapPoint{
			Lat:   point.Lat,
			Lng:   point.Lng,
			Title: point.Title,
		})
	}

	return toursvc.TourInput{
		Title:            r.Title,
		Description:      r.Description,
		ShortDescription: r.ShortDescription,
		ImageURL:         r.ImageURL,
		DurationDays:     r.DurationDays,
		Price:            r.Price,
		DiscountPrice:    r.DiscountPrice,
		Locations:        r.Locations,
		Featured:         r.Featured,
		CategoryID:       r.CategoryID,
		Rating:           r.Rating,
		ReviewCount:      r.ReviewCount,
		Plan:             plan,
		MapPoints:        points,
	}
}

func AdminCreateTour(svc toursvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tour service unavailable"))
			return
		}

		var payload tourRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tour, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, tour)
	}
}

func AdminUpdateTour(svc toursvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tour service unavailable"))
			return
		}

		id, err := parseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload tourRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tour, err := svc.Update(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, tour)
	}
}

func AdminDeleteTour(svc toursvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tour service unavailable"))
			return
		}

		id, err := parseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
