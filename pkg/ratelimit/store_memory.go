package ratelimit

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// DefaultMaxKeys bounds the in-memory store when no limit is configured.
const DefaultMaxKeys = 10000

// MemoryStore is a thread-safe in-memory Store with LRU eviction.
type MemoryStore struct {
	mu      sync.Mutex
	maxKeys int
	entries map[string]*list.Element
	lru     *list.List // front is most recently used
}

type memoryEntry struct {
	key        string
	timestamps []time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a store tracking at most maxKeys keys.
func NewMemoryStore(maxKeys int) *MemoryStore {
	if maxKeys <= 0 {
		maxKeys = DefaultMaxKeys
	}
	return &MemoryStore{
		maxKeys: maxKeys,
		entries: make(map[string]*list.Element),
		lru:     list.New(),
	}
}

// CheckAndAdd implements Store.
func (s *MemoryStore) CheckAndAdd(_ context.Context, key string, now, cutoff time.Time, limit int) (bool, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.entries[key]
	var entry *memoryEntry
	if ok {
		entry = el.Value.(*memoryEntry)
		entry.timestamps = after(entry.timestamps, cutoff)
	}

	count := 0
	if entry != nil {
		count = len(entry.timestamps)
	}
	if count >= limit {
		return false, count, nil
	}

	if !ok {
		if len(s.entries) >= s.maxKeys {
			s.evict()
		}
		entry = &memoryEntry{key: key}
		el = s.lru.PushFront(entry)
		s.entries[key] = el
	} else {
		s.lru.MoveToFront(el)
	}
	entry.timestamps = append(entry.timestamps, now)

	return true, count + 1, nil
}

// Cleanup implements Store.
func (s *MemoryStore) Cleanup(_ context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, el := range s.entries {
		entry := el.Value.(*memoryEntry)
		entry.timestamps = after(entry.timestamps, cutoff)
		if len(entry.timestamps) == 0 {
			s.lru.Remove(el)
			delete(s.entries, key)
			removed++
		}
	}
	return removed, nil
}

// KeyCount implements Store.
func (s *MemoryStore) KeyCount(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries), nil
}

// evict removes the least recently used tenth of the keys. Caller holds mu.
func (s *MemoryStore) evict() {
	n := max(s.maxKeys/10, 1)
	for i := 0; i < n; i++ {
		el := s.lru.Back()
		if el == nil {
			return
		}
		s.lru.Remove(el)
		delete(s.entries, el.Value.(*memoryEntry).key)
	}
}

// after filters ts in place, keeping timestamps strictly after cutoff.
func after(ts []time.Time, cutoff time.Time) []time.Time {
	kept := ts[:0]
	for _, t := range ts {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}
