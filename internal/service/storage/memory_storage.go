package storage

import (
	"sync"
	"time"
)

// MemoryStorage - in-memory object storage with optional expiry and size bound
// K - key type, V - stored object type
type MemoryStorage[K comparable, V any] struct {
	data       map[K]V
	mutex      sync.RWMutex
	lastUpdate map[K]time.Time
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// NewMemoryStorage creates a new storage. ttl <= 0 disables expiry and
// maxEntries <= 0 disables the size bound.
func NewMemoryStorage[K comparable, V any](ttl time.Duration, maxEntries int) *MemoryStorage[K, V] {
	return &MemoryStorage[K, V]{
		data:       make(map[K]V),
		lastUpdate: make(map[K]time.Time),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Set adds or updates an object. When the storage is full the oldest
// entry is evicted first.
func (s *MemoryStorage[K, V]) Set(key K, value V) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.data[key]; !exists && s.maxEntries > 0 && len(s.data) >= s.maxEntries {
		s.evictOldestLocked()
	}

	s.data[key] = value
	s.lastUpdate[key] = s.now()
}

// Get returns an object by key. Expired objects are reported as missing.
func (s *MemoryStorage[K, V]) Get(key K) (V, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	value, exists := s.data[key]
	if !exists || s.expiredLocked(key) {
		var zero V
		return zero, false
	}
	return value, true
}

// Delete removes an object by key
func (s *MemoryStorage[K, V]) Delete(key K) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.data[key]; !exists {
		return false
	}

	delete(s.data, key)
	delete(s.lastUpdate, key)
	return true
}

// ForEach executes a function for each live object
func (s *MemoryStorage[K, V]) ForEach(fn func(key K, value V) bool) {
	// Copy data under lock for subsequent processing
	s.mutex.RLock()
	items := make(map[K]V, len(s.data))
	for k, v := range s.data {
		if !s.expiredLocked(k) {
			items[k] = v
		}
	}
	s.mutex.RUnlock()

	for k, v := range items {
		if !fn(k, v) {
			break
		}
	}
}

// Count returns the number of stored objects, expired ones included until purged
func (s *MemoryStorage[K, V]) Count() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.data)
}

// PurgeExpired drops every expired object and returns how many were dropped
func (s *MemoryStorage[K, V]) PurgeExpired() int {
	if s.ttl <= 0 {
		return 0
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	purged := 0
	for k := range s.data {
		if s.expiredLocked(k) {
			delete(s.data, k)
			delete(s.lastUpdate, k)
			purged++
		}
	}
	return purged
}

func (s *MemoryStorage[K, V]) expiredLocked(key K) bool {
	return s.ttl > 0 && s.now().Sub(s.lastUpdate[key]) >= s.ttl
}

func (s *MemoryStorage[K, V]) evictOldestLocked() {
	var (
		oldestKey K
		oldest    time.Time
		found     bool
	)
	for k, t := range s.lastUpdate {
		if !found || t.Before(oldest) {
			oldestKey, oldest, found = k, t, true
		}
	}
	if found {
		delete(s.data, oldestKey)
		delete(s.lastUpdate, oldestKey)
	}
}
