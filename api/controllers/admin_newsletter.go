package controllers

import (
	"net/http"

	"github.com/marocvoyages/marocvoyages-backend/api/responses"
	newslettersvc "github.com/marocvoyages/marocvoyages-backend/internal/newsletter"
	pkgerrors "github.com/marocvoyages/marocvoyages-backend/pkg/errors"
	"github.com/marocvoyages/marocvoyages-backend/pkg/logger"
)

func AdminListNewsletter(svc newslettersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "newsletter service unavailable"))
			return
		}

		entries, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, entries)
	}
}
