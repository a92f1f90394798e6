package cache

import (
	"sync"
	"time"
)

// sweepInterval is the minimum time between two bulk expiry passes
const sweepInterval = time.Minute

// ttlMap is a mutex-guarded map whose entries expire lazily on read.
// Writes also drop every expired entry, at most once per sweepInterval.
type ttlMap[V any] struct {
	mu        sync.Mutex
	entries   map[string]ttlEntry[V]
	now       func() time.Time
	lastSweep time.Time
}

type ttlEntry[V any] struct {
	value     V
	expiresAt time.Time
}

func newTTLMap[V any]() *ttlMap[V] {
	return &ttlMap[V]{
		entries:   make(map[string]ttlEntry[V]),
		now:       time.Now,
		lastSweep: time.Now(),
	}
}

func (m *ttlMap[V]) get(key string) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getLocked(key)
}

func (m *ttlMap[V]) getLocked(key string) (V, bool) {
	e, ok := m.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if !m.now().Before(e.expiresAt) {
		delete(m.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

func (m *ttlMap[V]) set(key string, value V, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.maybeSweepLocked()
	m.entries[key] = ttlEntry[V]{value: value, expiresAt: m.now().Add(ttl)}
}

// setIfAbsent stores the value unless a live entry exists
func (m *ttlMap[V]) setIfAbsent(key string, value V, ttl time.Duration) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.getLocked(key); ok {
		return false
	}
	m.maybeSweepLocked()
	m.entries[key] = ttlEntry[V]{value: value, expiresAt: m.now().Add(ttl)}
	return true
}

func (m *ttlMap[V]) delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}

// sweep removes expired entries and returns how many were removed
func (m *ttlMap[V]) sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sweepLocked()
}

func (m *ttlMap[V]) maybeSweepLocked() {
	if m.now().Sub(m.lastSweep) >= sweepInterval {
		m.sweepLocked()
	}
}

func (m *ttlMap[V]) sweepLocked() int {
	now := m.now()
	m.lastSweep = now
	removed := 0
	for key, e := range m.entries {
		if !now.Before(e.expiresAt) {
			delete(m.entries, key)
			removed++
		}
	}
	return removed
}

// len returns the number of stored entries, expired or not
func (m *ttlMap[V]) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
