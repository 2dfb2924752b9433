package session

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/marocvoyages/marocvoyages-backend/pkg/config"
	"github.com/marocvoyages/marocvoyages-backend/pkg/errors"
	"github.com/marocvoyages/marocvoyages-backend/pkg/redis"
)

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type sessionKeyer interface {
	AccessSessionKey(accessID string) string
}

// AccessSessionChecker reports whether an access token id still maps to a
// live session.
type AccessSessionChecker interface {
	HasSession(ctx context.Context, accessID string) (bool, error)
}

// Manager tracks live admin sessions in redis keyed by the access token's
// JTI. Revoking a session invalidates the token before it expires.
type Manager struct {
	store sessionStore
	keyer sessionKeyer
	ttl   time.Duration
}

func NewManager(client *redis.Client, cfg config.JWTConfig) (*Manager, error) {
	if client == nil {
		return nil, errors.New(errors.CodeInternal, "session manager requires a redis client")
	}
	ttl := cfg.SessionTTL()
	if ttl <= 0 {
		return nil, errors.New(errors.CodeInternal, "session TTL must be positive")
	}
	return &Manager{store: client, keyer: client, ttl: ttl}, nil
}

// Create registers the access token id as a live session.
func (m *Manager) Create(ctx context.Context, accessID string) error {
	if accessID == "" {
		return errors.New(errors.CodeInternal, "session requires an access token id")
	}
	key := m.keyer.AccessSessionKey(accessID)
	if err := m.store.Set(ctx, key, "1", m.ttl); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "failed to persist session")
	}
	return nil
}

// HasSession reports whether the access token id still maps to a live session.
func (m *Manager) HasSession(ctx context.Context, accessID string) (bool, error) {
	if accessID == "" {
		return false, nil
	}
	key := m.keyer.AccessSessionKey(accessID)
	if _, err := m.store.Get(ctx, key); err != nil {
		if stderrors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, errors.Wrap(errors.CodeDependency, err, "failed to read session")
	}
	return true, nil
}

// Revoke drops the session so the matching token stops being honored.
func (m *Manager) Revoke(ctx context.Context, accessID string) error {
	if accessID == "" {
		return nil
	}
	key := m.keyer.AccessSessionKey(accessID)
	if err := m.store.Del(ctx, key); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "failed to revoke session")
	}
	return nil
}
