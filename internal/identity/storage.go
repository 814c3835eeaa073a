package identity

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultSessionKey is the fixed key the provider session lives under.
const DefaultSessionKey = "autoful:console:provider_session"

// RedisSessionStorage keeps the provider session as JSON under a single
// key so it survives gateway restarts.
type RedisSessionStorage struct {
	client *redis.Client
	key    string
}

func NewRedisSessionStorage(client *redis.Client) *RedisSessionStorage {
	return &RedisSessionStorage{client: client, key: DefaultSessionKey}
}

func (r *RedisSessionStorage) Load(ctx context.Context) (*Session, error) {
	val, err := r.client.Get(ctx, r.key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load provider session: %w", err)
	}

	var s Session
	if err := json.Unmarshal([]byte(val), &s); err != nil {
		return nil, fmt.Errorf("decode provider session: %w", err)
	}
	return &s, nil
}

func (r *RedisSessionStorage) Save(ctx context.Context, s *Session) error {
	if s == nil {
		return r.Clear(ctx)
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode provider session: %w", err)
	}
	return r.client.Set(ctx, r.key, data, 0).Err()
}

func (r *RedisSessionStorage) Clear(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}
