package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisLoginCodeStore keeps one-time codes in Redis. GETDEL makes redeeming
// atomic, so a code can be used exactly once across server instances.
type redisLoginCodeStore struct {
	client *redis.Client
	prefix string
}

// NewRedisLoginCodeStore creates a Redis-backed LoginCodeStore.
func NewRedisLoginCodeStore(client *redis.Client) LoginCodeStore {
	return &redisLoginCodeStore{client: client, prefix: "logincode:"}
}

func (s *redisLoginCodeStore) Save(ctx context.Context, code, value string, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+code, value, ttl).Err()
}

func (s *redisLoginCodeStore) Redeem(ctx context.Context, code string) (string, error) {
	value, err := s.client.GetDel(ctx, s.prefix+code).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCodeInvalid
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

type codeEntry struct {
	value     string
	expiresAt time.Time
}

// memoryLoginCodeStore is the single-process fallback when Redis is not
// configured.
type memoryLoginCodeStore struct {
	mu      sync.Mutex
	entries map[string]codeEntry
}

// NewMemoryLoginCodeStore creates an in-memory LoginCodeStore.
func NewMemoryLoginCodeStore() LoginCodeStore {
	return &memoryLoginCodeStore{entries: make(map[string]codeEntry)}
}

func (s *memoryLoginCodeStore) Save(_ context.Context, code, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Opportunistic cleanup keeps the map from growing with abandoned codes.
	now := time.Now()
	for k, e := range s.entries {
		if e.expiresAt.Before(now) {
			delete(s.entries, k)
		}
	}

	s.entries[code] = codeEntry{value: value, expiresAt: now.Add(ttl)}
	return nil
}

func (s *memoryLoginCodeStore) Redeem(_ context.Context, code string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[code]
	if !ok {
		return "", ErrCodeInvalid
	}
	delete(s.entries, code)
	if entry.expiresAt.Before(time.Now()) {
		return "", ErrCodeInvalid
	}
	return entry.value, nil
}
