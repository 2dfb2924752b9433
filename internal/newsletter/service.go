package newsletter

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/marocvoyages/marocvoyages-backend/pkg/db/models"
	pkgerrors "github.com/marocvoyages/marocvoyages-backend/pkg/errors"
)

// Repository defines persistence operations for newsletter subscriptions.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, entry *models.Newsletter) (*models.Newsletter, error)
	List(ctx context.Context) ([]models.Newsletter, error)
}

// Service exposes newsletter subscription handling.
type Service interface {
	Subscribe(ctx context.Context, email string) (*models.Newsletter, error)
	List(ctx context.Context) ([]models.Newsletter, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a newsletter repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, entry *models.Newsletter) (*models.Newsletter, error) {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *repository) List(ctx context.Context) ([]models.Newsletter, error) {
	var entries []models.Newsletter
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

type service struct {
	repo Repository
}

// NewService builds a newsletter service backed by the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("newsletter repository required")
	}
	return &service{repo: repo}, nil
}

// Subscribe registers the email; an address already on the list is a conflict.
func (s *service) Subscribe(ctx context.Context, email string) (*models.Newsletter, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	entry, err := s.repo.Create(ctx, &models.Newsletter{Email: email})
	if err != nil {
		if isDuplicate(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email is already subscribed")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "subscribe email")
	}
	return entry, nil
}

func (s *service) List(ctx context.Context) ([]models.Newsletter, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list subscriptions")
	}
	return entries, nil
}

func isDuplicate(err error) bool {
	if stderrors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return false
}
