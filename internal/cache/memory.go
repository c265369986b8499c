package cache

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"social-analytics/internal/common/errors"
	"social-analytics/internal/models"
)

// MemoryStore keeps entries in-process. Ready entries expire on their own
// TTL; Failed entries reuse the store's default TTL so a permanently
// failing topic eventually gets a clean slate; Pending entries never
// expire on their own and are cleared by a transition or Evict.
type MemoryStore struct {
	cache      *gocache.Cache
	defaultTTL time.Duration
	mu         sync.Mutex
}

// NewMemoryStore builds a store whose Failed entries linger for
// defaultTTL before self-clearing.
func NewMemoryStore(defaultTTL, cleanupInterval time.Duration) *MemoryStore {
	return &MemoryStore{
		cache:      gocache.New(defaultTTL, cleanupInterval),
		defaultTTL: defaultTTL,
	}
}

func (s *MemoryStore) GetOrCreate(_ context.Context, key string, attempts int) (*Entry, bool, error) {
	for {
		entry := newPending(key, attempts)
		if err := s.cache.Add(key, entry, gocache.NoExpiration); err == nil {
			return entry, true, nil
		}
		if existing, found := s.cache.Get(key); found {
			entry := existing.(*Entry)
			if !entry.Expired(time.Now().UTC()) {
				return entry, false, nil
			}
			s.cache.Delete(key)
		}
		// the racing entry vanished between Add and Get, try again
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (*Entry, bool, error) {
	existing, found := s.cache.Get(key)
	if !found {
		return nil, false, nil
	}
	entry := existing.(*Entry)
	if entry.Expired(time.Now().UTC()) {
		s.cache.Delete(key)
		return nil, false, nil
	}
	return entry, true, nil
}

func (s *MemoryStore) MarkReady(_ context.Context, key string, value *models.AnalysisResult, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, err := s.pending(key)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	s.cache.Set(key, &Entry{
		Key:       key,
		State:     StateReady,
		Value:     value,
		Attempts:  prev.Attempts,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}, ttl)
	return nil
}

func (s *MemoryStore) MarkFailed(_ context.Context, key string, cause error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, err := s.pending(key)
	if err != nil {
		return err
	}
	s.cache.Set(key, &Entry{
		Key:       key,
		State:     StateFailed,
		Error:     cause.Error(),
		Attempts:  prev.Attempts + 1,
		CreatedAt: time.Now().UTC(),
	}, s.defaultTTL)
	return nil
}

func (s *MemoryStore) Retry(_ context.Context, key string) (*Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, found := s.cache.Get(key)
	if !found {
		return nil, false, nil
	}
	entry := existing.(*Entry)
	if entry.Expired(time.Now().UTC()) {
		s.cache.Delete(key)
		return nil, false, nil
	}
	if entry.State != StateFailed {
		return entry, false, nil
	}

	fresh := newPending(key, entry.Attempts)
	s.cache.Set(key, fresh, gocache.NoExpiration)
	return fresh, true, nil
}

func (s *MemoryStore) Evict(_ context.Context, key string) error {
	s.cache.Delete(key)
	return nil
}

func (s *MemoryStore) pending(key string) (*Entry, error) {
	existing, found := s.cache.Get(key)
	if !found {
		return nil, errors.InternalError("no entry to transition", nil).
			WithContext("key", key)
	}
	entry := existing.(*Entry)
	if entry.State != StatePending {
		return nil, errors.InternalError("entry is not pending", nil).
			WithContext("key", key).
			WithContext("state", string(entry.State))
	}
	return entry, nil
}
