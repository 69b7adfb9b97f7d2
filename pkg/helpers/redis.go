package helpers

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient returns a client with short dial and I/O timeouts; sessions
// and rate limits should fail fast instead of stalling requests.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
}

// SessionKey names the hash that holds a user's live refresh token.
func SessionKey(userID string) string { return "user:session:" + userID }

// RedisHSetTTL sets fields on key and (re)arms its expiry atomically.
func RedisHSetTTL(ctx context.Context, rdb redis.Cmdable, key string, fields map[string]any, ttl time.Duration) error {
	_, err := rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, key, fields)
		p.Expire(ctx, key, ttl)
		return nil
	})
	return err
}

func RedisDel(ctx context.Context, rdb redis.Cmdable, key string) error {
	return rdb.Del(ctx, key).Err()
}
