package mem

import (
	"sync"
	"time"
)

// TTLStore is a small in-process cache with per-entry expiry. The external
// data adapters use it to avoid re-fetching identical forecast and place
// lookups within a request burst.
type TTLStore interface {
	Set(key string, value any, ttl time.Duration)
	Get(key string) (any, bool)
	Delete(key string)
}

type entry struct {
	value     any
	expiresAt time.Time
}

type TTLCache struct {
	mu   sync.RWMutex
	data map[string]entry
}

func NewTTLCache() *TTLCache {
	return &TTLCache{
		data: make(map[string]entry),
	}
}

func (s *TTLCache) Set(key string, value any, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = entry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
}

func (s *TTLCache) Get(key string) (any, bool) {
	s.mu.RLock()
	e, ok := s.data[key]
	s.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.data, key) // cleanup expired
		s.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

func (s *TTLCache) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}
