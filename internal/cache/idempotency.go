package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/set-night/eventledger/internal/service"
)

const idempotencyPrefix = "ledger:idem:"

// RedisIdempotencyStore keeps withdrawal idempotency keys in Redis so that
// retries are recognised across instances.
type RedisIdempotencyStore struct {
	client *redis.Client
}

func NewRedisIdempotencyStore(client *redis.Client) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{client: client}
}

func (s *RedisIdempotencyStore) Get(ctx context.Context, key string) (*service.IdempotencyRecord, error) {
	raw, err := s.client.Get(ctx, idempotencyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var rec service.IdempotencyRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *RedisIdempotencyStore) Reserve(ctx context.Context, key, requestHash string, ttl time.Duration) (bool, error) {
	raw, err := json.Marshal(service.IdempotencyRecord{RequestHash: requestHash})
	if err != nil {
		return false, err
	}
	return s.client.SetNX(ctx, idempotencyPrefix+key, raw, ttl).Result()
}

func (s *RedisIdempotencyStore) Complete(ctx context.Context, key string, rec service.IdempotencyRecord, ttl time.Duration) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, idempotencyPrefix+key, raw, ttl).Err()
}

func (s *RedisIdempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, idempotencyPrefix+key).Err()
}

type memoryEntry struct {
	rec       service.IdempotencyRecord
	expiresAt time.Time
}

// MemoryIdempotencyStore is the single-process fallback used when no Redis
// URL is configured.
type MemoryIdempotencyStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryIdempotencyStore() *MemoryIdempotencyStore {
	return &MemoryIdempotencyStore{entries: make(map[string]memoryEntry), now: time.Now}
}

// lookup returns the live entry for key, dropping it when expired. Caller
// holds mu.
func (s *MemoryIdempotencyStore) lookup(key string) (memoryEntry, bool) {
	e, ok := s.entries[key]
	if !ok {
		return memoryEntry{}, false
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.entries, key)
		return memoryEntry{}, false
	}
	return e, true
}

func (s *MemoryIdempotencyStore) Get(_ context.Context, key string) (*service.IdempotencyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.lookup(key)
	if !ok {
		return nil, nil
	}
	rec := e.rec
	return &rec, nil
}

func (s *MemoryIdempotencyStore) Reserve(_ context.Context, key, requestHash string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lookup(key); ok {
		return false, nil
	}
	s.entries[key] = memoryEntry{
		rec:       service.IdempotencyRecord{RequestHash: requestHash},
		expiresAt: s.now().Add(ttl),
	}
	return true, nil
}

func (s *MemoryIdempotencyStore) Complete(_ context.Context, key string, rec service.IdempotencyRecord, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{rec: rec, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemoryIdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

var (
	_ service.IdempotencyStore = (*RedisIdempotencyStore)(nil)
	_ service.IdempotencyStore = (*MemoryIdempotencyStore)(nil)
)
