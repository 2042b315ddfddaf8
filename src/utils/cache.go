package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrCacheMiss is returned by cache handlers when a key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// CacheHandlerI is implemented by the in-memory handler below and by the
// Redis handler in utils/redis.
type CacheHandlerI interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string, result interface{}) error
	Delete(key string) error
}

type Cache[T any] struct {
	value      T
	cachedAt   time.Time
	expiration time.Time
	mutex      sync.RWMutex
}

// NewCache initializes a new cache with an empty value.
func NewCache[T any]() *Cache[T] {
	var zero T
	return &Cache[T]{
		value: zero,
	}
}

// Set sets a new value in the cache with an expiration time.
func (c *Cache[T]) Set(value T, duration time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.value = value
	c.cachedAt = time.Now()
	c.expiration = c.cachedAt.Add(duration)
}

// Get returns the cached value while it has not expired.
func (c *Cache[T]) Get() (T, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if c.expiration.IsZero() || time.Now().After(c.expiration) {
		var zero T
		return zero, false
	}
	return c.value, true
}

// Clear removes the cached value.
func (c *Cache[T]) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	var zero T
	c.value = zero
	c.expiration = time.Time{}
}

// MemoryCacheHandler keeps JSON encoded values in process memory. It is used
// when no Redis instance is configured.
type MemoryCacheHandler struct {
	mutex   sync.Mutex
	entries map[string]*Cache[[]byte]
}

func NewMemoryCacheHandler() *MemoryCacheHandler {
	return &MemoryCacheHandler{entries: map[string]*Cache[[]byte]{}}
}

func (m *MemoryCacheHandler) Set(key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize value: %w", err)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	entry, ok := m.entries[key]
	if !ok {
		entry = NewCache[[]byte]()
		m.entries[key] = entry
	}
	entry.Set(data, expiration)
	return nil
}

func (m *MemoryCacheHandler) Get(key string, result interface{}) error {
	m.mutex.Lock()
	entry, ok := m.entries[key]
	m.mutex.Unlock()
	if !ok {
		return fmt.Errorf("key %s: %w", key, ErrCacheMiss)
	}

	data, ok := entry.Get()
	if !ok {
		m.mutex.Lock()
		delete(m.entries, key)
		m.mutex.Unlock()
		return fmt.Errorf("key %s: %w", key, ErrCacheMiss)
	}
	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("failed to deserialize value: %w", err)
	}
	return nil
}

func (m *MemoryCacheHandler) Delete(key string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.entries, key)
	return nil
}
