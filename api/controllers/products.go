package controllers

import (
	"net/http"

	"github.com/marocvoyages/marocvoyages-backend/api/responses"
	"github.com/marocvoyages/marocvoyages-backend/internal/catalog"
	productsvc "github.com/marocvoyages/marocvoyages-backend/internal/products"
	"github.com/marocvoyages/marocvoyages-backend/pkg/enums"
	pkgerrors "github.com/marocvoyages/marocvoyages-backend/pkg/errors"
	"github.com/marocvoyages/marocvoyages-backend/pkg/logger"
)

// ListProducts serves the public store catalog with optional search filters.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		inStock := false
		if v := queryBool(r, "inStock"); v != nil {
			inStock = *v
		}

		criteria := catalog.ProductCriteria{
			Query:       queryParam(r, "q"),
			Category:    queryParam(r, "category"),
			Price:       catalog.ParseRange(queryParam(r, "price")),
			InStockOnly: inStock,
			Sort:        enums.NormalizeProductSort(queryParam(r, "sort")),
		}

		products, err := svc.List(r.Context(), criteria)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}

func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := parseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}
