// Package cache provides the topic-keyed result store backing the
// coordinator's single-flight semantics. A store holds at most one entry
// per key; the atomic create-or-join in GetOrCreate is what bounds
// external fetches to one in-flight computation per topic.
package cache

import (
	"time"

	"social-analytics/internal/models"
)

// State is the lifecycle phase of a cache entry. Transitions are one-way:
// Pending becomes Ready or Failed exactly once. A Failed key is retried by
// creating a fresh Pending entry, never by mutating the old one.
type State string

const (
	// StatePending marks a key whose job is queued or running
	StatePending State = "pending"
	// StateReady marks a key with a computed result
	StateReady State = "ready"
	// StateFailed marks a key whose job failed
	StateFailed State = "failed"
)

// Entry is one cached computation. Entries are immutable once stored;
// transitions replace the entry rather than mutating it.
type Entry struct {
	Key       string                 `json:"key"`
	State     State                  `json:"state"`
	Value     *models.AnalysisResult `json:"value,omitempty"`
	Error     string                 `json:"error,omitempty"`
	Attempts  int                    `json:"attempts"`
	CreatedAt time.Time              `json:"created_at"`
	ExpiresAt time.Time              `json:"expires_at,omitempty"`
}

// Expired reports whether a Ready entry's TTL has lapsed. Pending and
// Failed entries never expire through this check.
func (e *Entry) Expired(now time.Time) bool {
	return e.State == StateReady && !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

func newPending(key string, attempts int) *Entry {
	return &Entry{
		Key:       key,
		State:     StatePending,
		Attempts:  attempts,
		CreatedAt: time.Now().UTC(),
	}
}
