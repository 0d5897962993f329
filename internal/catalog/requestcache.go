package catalog

import (
	"context"
	"reflect"
	"sync"

	appErrors "github.com/noah-isme/course-compass/pkg/errors"
)

// Store memoizes resolved catalog queries by composed string key for the
// process lifetime. First writer wins for a key; payloads for a key are
// assumed immutable, so entries are never invalidated.
type Store interface {
	// Get loads the cached value for key into dest, returning
	// ErrCacheMiss when absent.
	Get(ctx context.Context, key string, dest interface{}) error
	// Set stores the value unless the key is already present.
	Set(ctx context.Context, key string, value interface{}) error
}

// MemoryStore is the default in-process Store: an unbounded map guarded
// by a mutex. Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]interface{}
}

// NewMemoryStore builds an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]interface{})}
}

func (s *MemoryStore) Get(_ context.Context, key string, dest interface{}) error {
	s.mu.RLock()
	v, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return appErrors.ErrCacheMiss
	}

	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return appErrors.ErrCacheMiss
	}
	sv := reflect.ValueOf(v)
	if !sv.IsValid() || !sv.Type().AssignableTo(rv.Elem().Type()) {
		return appErrors.ErrCacheMiss
	}
	rv.Elem().Set(sv)
	return nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entries[key]; !exists {
		s.entries[key] = value
	}
	return nil
}

// Len reports the number of cached keys.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Fetch returns the cached value for key or invokes produce and stores
// its result. Concurrent callers racing on a cold key may both invoke
// produce; the store keeps the first result. Cache backend failures fall
// through to produce rather than surfacing.
func Fetch[T any](ctx context.Context, store Store, key string, produce func(context.Context) (T, error)) (T, error) {
	var cached T
	if store != nil {
		// Backend trouble is treated like a miss, never surfaced.
		if err := store.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	value, err := produce(ctx)
	if err != nil {
		return value, err
	}
	if store != nil {
		_ = store.Set(ctx, key, value)
	}
	return value, nil
}
