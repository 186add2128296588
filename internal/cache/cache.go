// Package cache provides the process-wide, in-memory store for provider results.
//
// Entries expire a fixed TTL after insertion and are never mutated in place:
// Set replaces an entry wholesale. Nothing is persisted across restarts.
package cache

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/samber/mo"
)

// Store is a key-value store with per-entry expiration.
// It is safe for concurrent use; concurrent writers of one key race and the last write wins.
type Store struct {
	entries *expirable.LRU[string, any]
	ttl     time.Duration
}

// New creates a store holding at most size entries (0 means unbounded), each living for ttl.
func New(size int, ttl time.Duration) *Store {
	if size < 0 {
		size = 0
	}
	return &Store{
		entries: expirable.NewLRU[string, any](size, nil, ttl),
		ttl:     ttl,
	}
}

// Get returns the live value stored under key. Expired entries behave as absent.
func (s *Store) Get(key string) mo.Option[any] {
	value, ok := s.entries.Get(key)
	if !ok {
		return mo.None[any]()
	}
	return mo.Some(value)
}

// Set stores value under key, replacing any previous entry and restarting its expiration.
func (s *Store) Set(key string, value any) {
	s.entries.Add(key, value)
}

// Len returns the number of entries currently held, expired ones included until they are evicted.
func (s *Store) Len() int {
	return s.entries.Len()
}

// TTL returns the lifetime of a single entry.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Purge drops every entry.
func (s *Store) Purge() {
	s.entries.Purge()
}

// Get returns the value stored under key when it is present and of type T.
func Get[T any](s *Store, key string) mo.Option[T] {
	value, ok := s.Get(key).Get()
	if !ok {
		return mo.None[T]()
	}

	typed, ok := value.(T)
	if !ok {
		return mo.None[T]()
	}
	return mo.Some(typed)
}

// Key composes the cache key {provider}-{operation}-{json-args}.
// A single argument is serialized on its own, several as a JSON array,
// and the argument part is omitted when there are none.
func Key(provider, operation string, args ...any) string {
	var b strings.Builder
	b.WriteString(provider)
	b.WriteByte('-')
	b.WriteString(operation)

	if len(args) == 0 {
		return b.String()
	}

	var payload any = args
	if len(args) == 1 {
		payload = args[0]
	}

	b.WriteByte('-')
	data, err := json.Marshal(payload)
	if err != nil {
		// Unserializable arguments still need a stable, distinct key.
		b.WriteString(fmt.Sprintf("%#v", payload))
		return b.String()
	}
	b.Write(data)
	return b.String()
}
