// Package cache keeps replayable HTTP responses in Redis, keyed by the
// client's Idempotency-Key.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/DanielPopoola/claimpay/internal/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Key prefixes
const (
	responsePrefix = "idempotency:response:"
	lockPrefix     = "idempotency:lock:"
)

// DefaultLockTTL bounds how long an in-flight request can hold its key.
const DefaultLockTTL = 30 * time.Second

// unlockScript deletes the lock only if it still holds our token.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// CachedResponse is a completed response stored for replay.
type CachedResponse struct {
	StatusCode  int             `json:"status_code"`
	ContentType string          `json:"content_type"`
	Body        json.RawMessage `json:"body"`
	RequestHash string          `json:"request_hash"`
}

type IdempotencyStore struct {
	client  *redis.Client
	ttl     time.Duration
	lockTTL time.Duration
}

func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewIdempotencyStore(client *redis.Client, ttl, lockTTL time.Duration) *IdempotencyStore {
	if lockTTL <= 0 {
		lockTTL = DefaultLockTTL
	}
	return &IdempotencyStore{
		client:  client,
		ttl:     ttl,
		lockTTL: lockTTL,
	}
}

// Get returns nil, nil on a cache miss.
func (s *IdempotencyStore) Get(ctx context.Context, key string) (*CachedResponse, error) {
	data, err := s.client.Get(ctx, responsePrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cached response: %w", err)
	}

	var cached CachedResponse
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("decode cached response: %w", err)
	}
	return &cached, nil
}

func (s *IdempotencyStore) Save(ctx context.Context, key string, response *CachedResponse) error {
	data, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("encode cached response: %w", err)
	}
	return s.client.Set(ctx, responsePrefix+key, data, s.ttl).Err()
}

// Lock claims key for one in-flight request. It returns the token needed to
// Unlock, and false if another request already holds the key.
func (s *IdempotencyStore) Lock(ctx context.Context, key string) (string, bool, error) {
	token := uuid.NewString()

	ok, err := s.client.SetNX(ctx, lockPrefix+key, token, s.lockTTL).Result()
	if err != nil {
		return "", false, fmt.Errorf("acquire idempotency lock: %w", err)
	}
	return token, ok, nil
}

func (s *IdempotencyStore) Unlock(ctx context.Context, key, token string) error {
	return unlockScript.Run(ctx, s.client, []string{lockPrefix + key}, token).Err()
}

func (s *IdempotencyStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
