package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

type mockStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string]string)}
}

func (m *mockStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = fmt.Sprint(value)
	return nil
}

func (m *mockStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return val, nil
}

func (m *mockStore) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *mockStore) AccessSessionKey(accessID string) string {
	return fmt.Sprintf("sess:%s", accessID)
}

func TestManagerLifecycle(t *testing.T) {
	store := newMockStore()
	manager := &Manager{store: store, keyer: store, ttl: time.Hour}

	ctx := context.Background()
	accessID := "access-123"

	live, err := manager.HasSession(ctx, accessID)
	if err != nil {
		t.Fatalf("has session: %v", err)
	}
	if live {
		t.Fatalf("expected no session before create")
	}

	if err := manager.Create(ctx, accessID); err != nil {
		t.Fatalf("create: %v", err)
	}
	live, err = manager.HasSession(ctx, accessID)
	if err != nil {
		t.Fatalf("has session: %v", err)
	}
	if !live {
		t.Fatalf("expected live session after create")
	}

	if err := manager.Revoke(ctx, accessID); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	live, err = manager.HasSession(ctx, accessID)
	if err != nil {
		t.Fatalf("has session: %v", err)
	}
	if live {
		t.Fatalf("expected session gone after revoke")
	}
}

func TestManagerEmptyAccessID(t *testing.T) {
	store := newMockStore()
	manager := &Manager{store: store, keyer: store, ttl: time.Hour}

	ctx := context.Background()
	if err := manager.Create(ctx, ""); err == nil {
		t.Fatalf("expected error creating session without access id")
	}
	live, err := manager.HasSession(ctx, "")
	if err != nil {
		t.Fatalf("has session: %v", err)
	}
	if live {
		t.Fatalf("empty access id should never be live")
	}
	if err := manager.Revoke(ctx, ""); err != nil {
		t.Fatalf("revoke of empty id should be a no-op, got %v", err)
	}
}
