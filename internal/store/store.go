// Package store owns the bounded, newest-first cache of generated
// posts, persisted in an external key-value binding.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/epf-2025/blogpress/internal/config"
	"github.com/epf-2025/blogpress/internal/post"
)

const (
	postsKey   = "generated-posts"
	lastRunKey = "generated-posts:lastRun"
)

// ErrUnconfigured means no persistence binding is set for this
// deployment. Writes refuse up front; reads degrade to empty.
var ErrUnconfigured = errors.New("persistence binding not configured")

// Store maintains the rolling post cache behind a KV binding. A nil
// Store is valid and represents an unconfigured binding.
type Store struct {
	kv KV
}

// New wraps a KV binding.
func New(kv KV) *Store {
	return &Store{kv: kv}
}

// Open builds the store for the configured driver. Returns (nil, nil)
// when no driver is configured.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.Store.Driver {
	case "":
		return nil, nil
	case "redis":
		kv, err := OpenRedis(ctx, cfg.Store.RedisAddr)
		if err != nil {
			return nil, err
		}
		return New(kv), nil
	case "sqlite":
		kv, err := OpenSQLite(cfg.SQLitePath())
		if err != nil {
			return nil, err
		}
		return New(kv), nil
	case "memory":
		return New(NewMemory()), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// Load reads the current cache. A cold cache, an unreadable value or
// an absent binding all yield an empty list; absence of history is a
// valid state, not a failure.
func (s *Store) Load(ctx context.Context) []post.Post {
	if s == nil {
		return nil
	}

	data, err := s.kv.Get(ctx, postsKey)
	if err != nil {
		log.Printf("Unable to read post cache: %v", err)
		return nil
	}
	if data == nil {
		return nil
	}

	var posts []post.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		log.Printf("Unable to parse post cache: %v", err)
		return nil
	}
	return posts
}

// Append prepends a new post, trims the cache to limit, and persists
// the whole sequence in a single write together with the last-run
// timestamp. Returns the truncated sequence.
//
// This is a plain read-modify-write: two concurrent appends can both
// read the same prior state and the later write wins, dropping the
// other's post. Refreshes run at most a few times a day, so the race
// stays open rather than paying for conditional writes.
func (s *Store) Append(ctx context.Context, p post.Post, limit int) ([]post.Post, error) {
	if s == nil {
		return nil, ErrUnconfigured
	}

	existing := s.Load(ctx)
	next := make([]post.Post, 0, len(existing)+1)
	next = append(next, p)
	next = append(next, existing...)
	if len(next) > limit {
		next = next[:limit]
	}

	data, err := json.Marshal(next)
	if err != nil {
		return nil, fmt.Errorf("marshaling post cache: %w", err)
	}
	if err := s.kv.Set(ctx, postsKey, data); err != nil {
		return nil, fmt.Errorf("writing post cache: %w", err)
	}

	stamp := time.Now().UTC().Format(time.RFC3339)
	if err := s.kv.Set(ctx, lastRunKey, []byte(stamp)); err != nil {
		// The cache itself is already written; a missing run stamp
		// only affects the status display.
		log.Printf("Unable to record last run: %v", err)
	}

	return next, nil
}

// LastRun returns the ISO-8601 timestamp of the last successful
// append, or empty when none is recorded.
func (s *Store) LastRun(ctx context.Context) string {
	if s == nil {
		return ""
	}
	data, err := s.kv.Get(ctx, lastRunKey)
	if err != nil || data == nil {
		return ""
	}
	return string(data)
}

// Close releases the underlying binding.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.kv.Close()
}
