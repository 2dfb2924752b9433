package controllers

import (
	"net/http"

	"github.com/marocvoyages/marocvoyages-backend/api/responses"
	"github.com/marocvoyages/marocvoyages-backend/internal/catalog"
	toursvc "github.com/marocvoyages/marocvoyages-backend/internal/tours"
	pkgerrors "github.com/marocvoyages/marocvoyages-backend/pkg/errors"
	"github.com/marocvoyages/marocvoyages-backend/pkg/logger"
)

// ListTours serves the public tour catalog with optional search filters.
func ListTours(svc toursvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tour service unavailable"))
			return
		}

		filters := toursvc.ListFilters{
			Featured:   queryBool(r, "featured"),
			CategoryID: queryUint(r, "categoryId"),
			Limit:      queryInt(r, "limit"),
		}

		criteria := catalog.TourCriteria{
			Query:    queryParam(r, "q"),
			Duration: catalog.ParseRange(queryParam(r, "duration")),
			Price:    catalog.ParseRange(queryParam(r, "price")),
		}
		if id := queryUint(r, "categoryId"); id != nil {
			criteria.CategoryID = *id
		}

		tours, err := svc.List(r.Context(), filters, criteria)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, tours)
	}
}

func GetTour(svc toursvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		tour, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, tour)
	}
}
