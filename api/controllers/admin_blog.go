package controllers

import (
	"net/http"

	"github.com/marocvoyages/marocvoyages-backend/api/responses"
	"github.com/marocvoyages/marocvoyages-backend/api/validators"
	blogsvc "github.com/marocvoyages/marocvoyages-backend/internal/blog"
	pkgerrors "github.com/marocvoyages/marocvoyages-backend/pkg/errors"
	"github.com/marocvoyages/marocvoyages-backend/pkg/logger"
)

type blogPostRequest struct {
	Title    string  `json:"title" validate:"required"`
	Content  string  `json:"content" validate:"required"`
	Excerpt  *string `json:"excerpt,omitempty"`
	ImageURL *string `json:"imageUrl,omitempty"`
	Category string  `json:"category" validate:"required"`
	Author   string  `json:"author"`
}

func (r blogPostRequest) toInput() blogsvc.PostInput {
	return blogsvc.PostInput{
		Title:    r.Title,
		Content:  r.Content,
		Excerpt:  r.Excerpt,
		ImageURL: r.ImageURL,
		Category: r.Category,
		Author:   r.Author,
	}
}

func AdminCreateBlogPost(svc blogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "blog service unavailable"))
			return
		}

		var payload blogPostRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		post, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, post)
	}
}

func AdminUpdateBlogPost(svc blogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "blog service unavailable"))
			return
		}

		id, err := parseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload blogPostRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		post, err := svc.Update(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, post)
	}
}

func AdminDeleteBlogPost(svc blogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "blog service unavailable"))
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
