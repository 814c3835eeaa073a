package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultUserKey is the single fixed key holding the persisted user.
const DefaultUserKey = "autoful:console:user"

// Persistence mirrors the signed-in user to durable storage so a
// gateway restart does not force a re-login. The record is a cache,
// never authoritative: the bridge only adopts it when its subject id
// matches the identity provider's live session.
type Persistence interface {
	Load(ctx context.Context) (*User, error)
	Save(ctx context.Context, u *User) error
	Clear(ctx context.Context) error
}

// RedisPersistence stores the user snapshot as JSON under a single key.
type RedisPersistence struct {
	client *redis.Client
	key    string
}

func NewRedisPersistence(client *redis.Client) *RedisPersistence {
	return &RedisPersistence{client: client, key: DefaultUserKey}
}

func (p *RedisPersistence) Load(ctx context.Context) (*User, error) {
	val, err := p.client.Get(ctx, p.key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load persisted user: %w", err)
	}

	var u User
	if err := json.Unmarshal([]byte(val), &u); err != nil {
		return nil, fmt.Errorf("decode persisted user: %w", err)
	}
	return &u, nil
}

func (p *RedisPersistence) Save(ctx context.Context, u *User) error {
	if u == nil {
		return p.Clear(ctx)
	}
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode persisted user: %w", err)
	}
	return p.client.Set(ctx, p.key, data, 0).Err()
}

func (p *RedisPersistence) Clear(ctx context.Context) error {
	return p.client.Del(ctx, p.key).Err()
}
