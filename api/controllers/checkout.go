package controllers

import (
	"net/http"

	"github.com/marocvoyages/marocvoyages-backend/api/middleware"
	"github.com/marocvoyages/marocvoyages-backend/api/responses"
	"github.com/marocvoyages/marocvoyages-backend/api/validators"
	checkoutsvc "github.com/marocvoyages/marocvoyages-backend/internal/checkout"
	pkgerrors "github.com/marocvoyages/marocvoyages-backend/pkg/errors"
	"github.com/marocvoyages/marocvoyages-backend/pkg/logger"
)

// GetCheckout reports the current checkout stage for the caller's cart.
func GetCheckout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		token := middleware.CartTokenFromContext(r.Context())
		flow, err := svc.Flow(token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, flow)
	}
}

type checkoutRequest struct {
	CustomerName string  `json:"customerName" validate:"required"`
	Email        string  `json:"email" validate:"required,email"`
	Phone        string  `json:"phone" validate:"required"`
	Address      string  `json:"address" validate:"required"`
	City         string  `json:"city" validate:"required"`
	ZipCode      *string `json:"zipCode,omitempty"`
}

// SubmitOrder runs the full checkout for the caller's cart: shipping details
// are captured, then the cart is converted into an order.
func SubmitOrder(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		token := middleware.CartTokenFromContext(r.Context())
		if token == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart token missing"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if _, err := svc.Begin(token); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if _, err := svc.SetShipping(token, checkoutsvc.ShippingDetails{
			CustomerName: payload.CustomerName,
			Email:        payload.Email,
			Phone:        payload.Phone,
			Address:      payload.Address,
			City:         payload.City,
			ZipCode:      payload.ZipCode,
		}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Submit(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
