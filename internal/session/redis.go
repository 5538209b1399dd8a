package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each session under "<prefix><sid>" with a TTL equal to
// the session's remaining lifetime, so Redis does the expiry.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
	now    func() time.Time
}

func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "sess:"
	}
	return &RedisStore{rdb: rdb, prefix: prefix, now: time.Now}
}

func (r *RedisStore) key(sid string) string { return r.prefix + sid }

func (r *RedisStore) Get(ctx context.Context, sid string) (*Data, error) {
	raw, err := r.rdb.Get(ctx, r.key(sid)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session: %w", err)
	}
	var d Data
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if d.Expired(r.now()) {
		return nil, nil
	}
	return &d, nil
}

func (r *RedisStore) Save(ctx context.Context, sid string, d Data) error {
	ttl := d.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return r.Destroy(ctx, sid)
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.rdb.Set(ctx, r.key(sid), raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (r *RedisStore) Destroy(ctx context.Context, sid string) error {
	if err := r.rdb.Del(ctx, r.key(sid)).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}
	return nil
}
