package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Mooyguy/Travel-Magazine-Secure/internal/cache"
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/model"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:"

var (
	jsonMarshal   = json.Marshal
	jsonUnmarshal = json.Unmarshal
)

// RedisStore 以 JSON 存放於 session:<id>，TTL 為剩餘有效時間
type RedisStore struct {
	cache cache.Cache
}

func NewRedisStore(c cache.Cache) *RedisStore {
	return &RedisStore{cache: c}
}

func redisKey(id string) string {
	return redisKeyPrefix + id
}

func (r *RedisStore) Save(ctx context.Context, s model.Session) error {
	ttl := s.ExpiresAt.Sub(timeNow())
	if ttl <= 0 {
		return fmt.Errorf("RedisStore.Save: session %s already expired", s.ID)
	}
	b, err := jsonMarshal(s)
	if err != nil {
		return fmt.Errorf("RedisStore.Save: %w", err)
	}
	if err := r.cache.Set(ctx, redisKey(s.ID), b, ttl).Err(); err != nil {
		return fmt.Errorf("RedisStore.Save: %w", err)
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, id string) (*model.Session, error) {
	val, err := r.cache.Get(ctx, redisKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("RedisStore.Get: %w", err)
	}

	var s model.Session
	if err := jsonUnmarshal([]byte(val), &s); err != nil {
		return nil, fmt.Errorf("RedisStore.Get: %w", err)
	}
	// key TTL 與 ExpiresAt 之間可能有時鐘誤差
	if s.Expired(timeNow()) {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.cache.Del(ctx, redisKey(id)).Err(); err != nil {
		return fmt.Errorf("RedisStore.Delete: %w", err)
	}
	return nil
}
