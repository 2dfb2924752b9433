package cart

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/marocvoyages/marocvoyages-backend/pkg/config"
	"github.com/marocvoyages/marocvoyages-backend/pkg/redis"
)

// ErrMalformedPayload reports a stored cart that no longer parses as JSON.
var ErrMalformedPayload = stderrors.New("malformed cart payload")

// Storage persists serialized carts between visits.
type Storage interface {
	Load(ctx context.Context, token string) ([]Item, bool, error)
	Save(ctx context.Context, token string, items []Item) error
	Delete(ctx context.Context, token string) error
}

type redisStorage struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStorage wires cart persistence onto the shared redis client.
func NewRedisStorage(client *redis.Client, cfg config.CartConfig) (Storage, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("cart TTL must be positive")
	}
	return &redisStorage{client: client, ttl: cfg.TTL}, nil
}

func (s *redisStorage) Load(ctx context.Context, token string) ([]Item, bool, error) {
	raw, err := s.client.Get(ctx, s.client.CartKey(token))
	if err != nil {
		if stderrors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("load cart: %w", err)
	}
	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, true, ErrMalformedPayload
	}
	return items, true, nil
}

func (s *redisStorage) Save(ctx context.Context, token string, items []Item) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.client.Set(ctx, s.client.CartKey(token), string(payload), s.ttl); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (s *redisStorage) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.client.CartKey(token)); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}
