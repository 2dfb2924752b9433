package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	pkgauth "github.com/marocvoyages/marocvoyages-backend/pkg/auth"
	"github.com/marocvoyages/marocvoyages-backend/pkg/config"
	"github.com/marocvoyages/marocvoyages-backend/pkg/db/models"
	pkgerrors "github.com/marocvoyages/marocvoyages-backend/pkg/errors"
	"github.com/marocvoyages/marocvoyages-backend/pkg/security"
)

type stubUsers struct {
	user *models.User
}

func (s *stubUsers) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if s.user == nil || s.user.Username != username {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUsers) FindByID(ctx context.Context, id uint) (*models.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

type stubSessions struct {
	created []string
	revoked []string
}

func (s *stubSessions) Create(ctx context.Context, accessID string) error {
	s.created = append(s.created, accessID)
	return nil
}

func (s *stubSessions) Revoke(ctx context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "marocvoyages-test",
		ExpirationMinutes: 60,
		SessionTTLMinutes: 60,
	}
}

func adminUser(t *testing.T) *models.User {
	t.Helper()
	hash, err := security.HashPassword("s3cret-pass", config.PasswordConfig{
		ArgonMemoryKB: 8 * 1024, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32,
	})
	require.NoError(t, err)
	return &models.User{ID: 1, Username: "admin", Email: "admin@example.com", PasswordHash: hash, IsAdmin: true}
}

func newTestService(t *testing.T, usersRepo userRepository, sessions sessionManager) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:       usersRepo,
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
	})
	require.NoError(t, err)
	return svc
}

func TestLoginIssuesTokenAndSession(t *testing.T) {
	t.Parallel()

	sessions := &stubSessions{}
	svc := newTestService(t, &stubUsers{user: adminUser(t)}, sessions)

	resp, err := svc.Login(context.Background(), LoginRequest{Username: "admin", Password: "s3cret-pass"})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.True(t, resp.User.IsAdmin)

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
	assert.True(t, claims.IsAdmin)
	require.Len(t, sessions.created, 1)
	assert.Equal(t, claims.ID, sessions.created[0])
}

func TestLoginRejectsBadPassword(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubUsers{user: adminUser(t)}, &stubSessions{})

	_, err := svc.Login(context.Background(), LoginRequest{Username: "admin", Password: "wrong"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}

func TestLoginUnknownUserLooksIdentical(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubUsers{}, &stubSessions{})

	_, err := svc.Login(context.Background(), LoginRequest{Username: "ghost", Password: "whatever"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
	assert.Equal(t, "invalid credentials", typed.Message())
}

func TestLogoutRevokesSession(t *testing.T) {
	t.Parallel()

	sessions := &stubSessions{}
	svc := newTestService(t, &stubUsers{user: adminUser(t)}, sessions)

	require.NoError(t, svc.Logout(context.Background(), "access-1"))
	assert.Equal(t, []string{"access-1"}, sessions.revoked)
}

func TestSessionReturnsUser(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubUsers{user: adminUser(t)}, &stubSessions{})

	info, err := svc.Session(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "admin", info.User.Username)

	_, err = svc.Session(context.Background(), 99)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}
