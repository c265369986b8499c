package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"social-analytics/internal/common/errors"
	"social-analytics/internal/models"
)

const keyPrefix = "analysis:"

// retryScript swaps a Failed entry for a fresh Pending one only when the
// stored payload still matches what the caller read. Returning the current
// payload instead of swapping lets the caller join whatever replaced it.
var retryScript = redis.NewScript(`
local current = redis.call("GET", KEYS[1])
if not current then
	return false
end
if current ~= ARGV[1] then
	return current
end
redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
return ""
`)

// RedisStore keeps entries in Redis so multiple instances share a single
// in-flight computation per topic. SET NX provides the atomic
// create-or-join; entries are stored as JSON.
type RedisStore struct {
	client     *redis.Client
	defaultTTL time.Duration
	pendingTTL time.Duration
}

// RedisConfig carries connection settings for the shared store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisStore connects to Redis and verifies the connection. Pending
// entries carry pendingTTL as a stale-job guard: if a worker dies without
// transitioning its entry, the key frees itself instead of wedging the
// topic forever.
func NewRedisStore(ctx context.Context, cfg RedisConfig, defaultTTL, pendingTTL time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.TransportError("redis connection failed", err).
			WithContext("addr", cfg.Addr)
	}
	return &RedisStore{
		client:     client,
		defaultTTL: defaultTTL,
		pendingTTL: pendingTTL,
	}, nil
}

func (s *RedisStore) GetOrCreate(ctx context.Context, key string, attempts int) (*Entry, bool, error) {
	for {
		entry := newPending(key, attempts)
		payload, err := json.Marshal(entry)
		if err != nil {
			return nil, false, errors.InternalError("failed to encode cache entry", err)
		}
		created, err := s.client.SetNX(ctx, keyPrefix+key, payload, s.pendingTTL).Result()
		if err != nil {
			return nil, false, errors.TransportError("redis setnx failed", err).
				WithContext("key", key)
		}
		if created {
			return entry, true, nil
		}
		existing, found, err := s.Get(ctx, key)
		if err != nil {
			return nil, false, err
		}
		if found {
			return existing, false, nil
		}
		// the racing entry expired between SETNX and GET, try again
	}
}

func (s *RedisStore) Get(ctx context.Context, key string) (*Entry, bool, error) {
	payload, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.TransportError("redis get failed", err).
			WithContext("key", key)
	}
	var entry Entry
	if err := json.Unmarshal(payload, &entry); err != nil {
		return nil, false, errors.InternalError("failed to decode cache entry", err).
			WithContext("key", key)
	}
	if entry.Expired(time.Now().UTC()) {
		s.client.Del(ctx, keyPrefix+key)
		return nil, false, nil
	}
	return &entry, true, nil
}

func (s *RedisStore) MarkReady(ctx context.Context, key string, value *models.AnalysisResult, ttl time.Duration) error {
	prev, err := s.pending(ctx, key)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	return s.set(ctx, key, &Entry{
		Key:       key,
		State:     StateReady,
		Value:     value,
		Attempts:  prev.Attempts,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}, ttl)
}

func (s *RedisStore) MarkFailed(ctx context.Context, key string, cause error) error {
	prev, err := s.pending(ctx, key)
	if err != nil {
		return err
	}
	return s.set(ctx, key, &Entry{
		Key:       key,
		State:     StateFailed,
		Error:     cause.Error(),
		Attempts:  prev.Attempts + 1,
		CreatedAt: time.Now().UTC(),
	}, s.defaultTTL)
}

func (s *RedisStore) Retry(ctx context.Context, key string) (*Entry, bool, error) {
	raw, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.TransportError("redis get failed", err).
			WithContext("key", key)
	}
	var prev Entry
	if err := json.Unmarshal(raw, &prev); err != nil {
		return nil, false, errors.InternalError("failed to decode cache entry", err).
			WithContext("key", key)
	}
	if prev.State != StateFailed {
		return &prev, false, nil
	}

	fresh := newPending(key, prev.Attempts)
	payload, err := json.Marshal(fresh)
	if err != nil {
		return nil, false, errors.InternalError("failed to encode cache entry", err)
	}

	reply, err := retryScript.Run(ctx, s.client,
		[]string{keyPrefix + key}, raw, payload, s.pendingTTL.Milliseconds()).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.TransportError("redis retry script failed", err).
			WithContext("key", key)
	}

	current, ok := reply.(string)
	if !ok {
		return nil, false, errors.InternalError("unexpected retry script reply", nil).
			WithContext("key", key)
	}
	if current == "" {
		return fresh, true, nil
	}
	var entry Entry
	if err := json.Unmarshal([]byte(current), &entry); err != nil {
		return nil, false, errors.InternalError("failed to decode cache entry", err).
			WithContext("key", key)
	}
	return &entry, false, nil
}

func (s *RedisStore) Evict(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return errors.TransportError("redis del failed", err).
			WithContext("key", key)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) set(ctx context.Context, key string, entry *Entry, ttl time.Duration) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return errors.InternalError("failed to encode cache entry", err)
	}
	if err := s.client.Set(ctx, keyPrefix+key, payload, ttl).Err(); err != nil {
		return errors.TransportError("redis set failed", err).
			WithContext("key", key)
	}
	return nil
}

func (s *RedisStore) pending(ctx context.Context, key string) (*Entry, error) {
	entry, found, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.InternalError("no entry to transition", nil).
			WithContext("key", key)
	}
	if entry.State != StatePending {
		return nil, errors.InternalError("entry is not pending", nil).
			WithContext("key", key).
			WithContext("state", string(entry.State))
	}
	return entry, nil
}
