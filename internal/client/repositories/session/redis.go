package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/cateringplus/internal/client/models"
	"github.com/dmitrijs2005/cateringplus/internal/common"
	"github.com/redis/go-redis/v9"
)

// RedisRepository keeps the session record in Redis under a fixed key.
// The record has no TTL; it lives until logout.
type RedisRepository struct {
	client *redis.Client
	key    string
}

// NewRedisRepository stores the record under prefix + common.SessionStorageKey.
// The prefix lets several kiosks share one Redis.
func NewRedisRepository(client *redis.Client, prefix string) *RedisRepository {
	return &RedisRepository{client: client, key: prefix + common.SessionStorageKey}
}

func (r *RedisRepository) Load(ctx context.Context) (models.Session, error) {
	b, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Session{}, nil
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("redis get failed: %w", err)
	}
	return decode(b)
}

func (r *RedisRepository) Save(ctx context.Context, s models.Session) error {
	b, err := encode(s)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key, b, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisRepository) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}
