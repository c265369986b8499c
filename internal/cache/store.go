package cache

import (
	"context"
	"time"

	"social-analytics/internal/models"
)

// Store is the contract both the in-memory and Redis backends satisfy.
// GetOrCreate must be atomic: when two callers race on the same absent
// key, exactly one observes created=true.
type Store interface {
	// GetOrCreate returns the existing entry for key, or atomically
	// installs a new Pending entry carrying the given attempt count.
	// created is true only for the caller that installed the entry.
	GetOrCreate(ctx context.Context, key string, attempts int) (entry *Entry, created bool, err error)

	// Get returns the entry for key, or found=false when absent.
	// Expired Ready entries are evicted and reported as absent.
	Get(ctx context.Context, key string) (entry *Entry, found bool, err error)

	// MarkReady transitions key from Pending to Ready with the given
	// result value and TTL.
	MarkReady(ctx context.Context, key string, value *models.AnalysisResult, ttl time.Duration) error

	// MarkFailed transitions key from Pending to Failed, recording the
	// cause and incrementing the attempt count.
	MarkFailed(ctx context.Context, key string, cause error) error

	// Retry atomically replaces a Failed entry with a fresh Pending entry
	// carrying the same attempt count. swapped is true only for the caller
	// that performed the swap; when the entry is absent or no longer
	// Failed, the current entry (nil when absent) is returned instead.
	Retry(ctx context.Context, key string) (entry *Entry, swapped bool, err error)

	// Evict removes the entry for key if present.
	Evict(ctx context.Context, key string) error
}
