package cache

import (
	"context"
	"sync"
	"time"

	"github.com/example/room-schedule/internal/clock"
)

type entry struct {
	data      []byte
	expiresAt time.Time
}

// Memory is an in-process Cache. It is safe for concurrent use.
type Memory struct {
	ttl   time.Duration
	clock clock.Clock

	mu      sync.Mutex
	entries map[string]entry
}

func NewMemory(ttl time.Duration, c clock.Clock) *Memory {
	if c == nil {
		c = clock.NewSystem()
	}
	return &Memory{ttl: ttl, clock: c, entries: make(map[string]entry)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, ErrMiss
	}
	if !m.clock.Now().Before(e.expiresAt) {
		delete(m.entries, key)
		return nil, ErrMiss
	}
	return clone(e.data), nil
}

func (m *Memory) Set(_ context.Context, key string, val []byte) error {
	if m.ttl <= 0 {
		return nil
	}
	now := m.clock.Now()
	m.mu.Lock()
	m.entries[key] = entry{data: clone(val), expiresAt: now.Add(m.ttl)}
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	m.entries = make(map[string]entry)
	m.mu.Unlock()
	return nil
}

// Len counts stored entries, expired ones included until they are read.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
