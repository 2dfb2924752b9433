package newsletter

import (
	"context"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/marocvoyages/marocvoyages-backend/pkg/db/models"
	pkgerrors "github.com/marocvoyages/marocvoyages-backend/pkg/errors"
)

type stubRepo struct {
	entries map[string]*models.Newsletter
	err     error
}

func newStubRepo() *stubRepo {
	return &stubRepo{entries: make(map[string]*models.Newsletter)}
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Create(ctx context.Context, entry *models.Newsletter) (*models.Newsletter, error) {
	if s.err != nil {
		return nil, s.err
	}
	if _, exists := s.entries[entry.Email]; exists {
		return nil, &pq.Error{Code: "23505"}
	}
	entry.ID = uint(len(s.entries) + 1)
	s.entries[entry.Email] = entry
	return entry, nil
}

func (s *stubRepo) List(ctx context.Context) ([]models.Newsletter, error) {
	out := make([]models.Newsletter, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, *e)
	}
	return out, nil
}

func TestSubscribeNormalizesEmail(t *testing.T) {
	t.Parallel()

	svc, err := NewService(newStubRepo())
	require.NoError(t, err)

	entry, err := svc.Subscribe(context.Background(), "  Traveler@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "traveler@example.com", entry.Email)
}

func TestSubscribeDuplicateIsConflict(t *testing.T) {
	t.Parallel()

	repo := newStubRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)

	_, err = svc.Subscribe(context.Background(), "traveler@example.com")
	require.NoError(t, err)

	_, err = svc.Subscribe(context.Background(), "TRAVELER@example.com")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestSubscribeDuplicateViaGormError(t *testing.T) {
	t.Parallel()

	repo := newStubRepo()
	repo.err = gorm.ErrDuplicatedKey
	svc, err := NewService(repo)
	require.NoError(t, err)

	_, err = svc.Subscribe(context.Background(), "traveler@example.com")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestSubscribeRequiresEmail(t *testing.T) {
	t.Parallel()

	svc, err := NewService(newStubRepo())
	require.NoError(t, err)

	_, err = svc.Subscribe(context.Background(), "   ")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
