package blog

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/marocvoyages/marocvoyages-backend/internal/catalog"
	"github.com/marocvoyages/marocvoyages-backend/pkg/db/models"
	pkgerrors "github.com/marocvoyages/marocvoyages-backend/pkg/errors"
)

// PostInput carries the fields accepted when creating or updating a post.
type PostInput struct {
	Title    string
	Content  string
	Excerpt  *string
	ImageURL *string
	Category string
	Author   string
}

type service struct {
	repo Repository
}

// NewService builds a blog service backed by the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("blog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, criteria catalog.BlogCriteria) ([]models.BlogPost, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list blog posts")
	}
	return catalog.FilterBlogPosts(posts, criteria), nil
}

func (s *service) Get(ctx context.Context, id uint) (*models.BlogPost, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "blog post not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load blog post")
	}
	return post, nil
}

func (s *service) Create(ctx context.Context, input PostInput) (*models.BlogPost, error) {
	if err := validatePostInput(input); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, postFromInput(input))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create blog post")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id uint, input PostInput) (*models.BlogPost, error) {
	if err := validatePostInput(input); err != nil {
		return nil, err
	}
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	post := postFromInput(input)
	post.ID = existing.ID
	post.PublishDate = existing.PublishDate
	updated, err := s.repo.Update(ctx, post)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update blog post")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "blog post not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete blog post")
	}
	return nil
}

func validatePostInput(input PostInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if strings.TrimSpace(input.Content) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "content is required")
	}
	if strings.TrimSpace(input.Category) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}
	return nil
}

func postFromInput(input PostInput) *models.BlogPost {
	author := strings.TrimSpace(input.Author)
	if author == "" {
		author = "Admin"
	}
	return &models.BlogPost{
		Title:    strings.TrimSpace(input.Title),
		Content:  input.Content,
		Excerpt:  input.Excerpt,
		ImageURL: input.ImageURL,
		Category: input.Category,
		Author:   author,
	}
}
