package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/cafeteria-service/internal/domain"
)

const keyPrefix = "session:"

// Record is the server-held identity bound to one session. At most one
// principal per session; the record is written once at login and only ever
// read afterwards.
type Record struct {
	UserID  string      `json:"user_id"`
	Name    string      `json:"name"`
	Email   string      `json:"email"`
	Role    domain.Role `json:"role"`
	LoginAt time.Time   `json:"login_at"`
}

// Store persists session records keyed by opaque identifier. Expiry is
// passive: expired records simply stop resolving.
type Store interface {
	Save(ctx context.Context, id string, rec *Record) error
	Get(ctx context.Context, id string) (*Record, error)
	Delete(ctx context.Context, id string) error
}

// RedisStore keeps session records in Redis with the session TTL. Redis
// serializes per-key operations, so concurrent requests on distinct sessions
// never interfere.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore builds a store around an existing client.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Save writes the record under the session key with the configured TTL.
func (s *RedisStore) Save(ctx context.Context, id string, rec *Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, keyPrefix+id, payload, s.ttl).Err()
}

// Get returns the record for id, or nil when the session is unknown or
// expired.
func (s *RedisStore) Get(ctx context.Context, id string) (*Record, error) {
	payload, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var rec Record
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Delete removes the record; deleting an unknown session is not an error.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, keyPrefix+id).Err()
}
