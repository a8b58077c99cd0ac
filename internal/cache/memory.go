package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value       []byte
	absDeadline time.Time
	sliding     time.Duration
	slideUntil  time.Time
}

func (e *memoryEntry) expired(now time.Time) bool {
	return now.After(e.absDeadline) || now.After(e.slideUntil)
}

// Memory is an in-process Store with absolute and sliding expiration.
// It backs tests and single-instance deployments without Redis.
type Memory struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	done    chan struct{}
	once    sync.Once
}

func NewMemory() *Memory {
	m := &Memory{
		entries: make(map[string]*memoryEntry),
		done:    make(chan struct{}),
	}
	go m.janitor(time.Minute)
	return m
}

func (m *Memory) janitor(interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case now := <-t.C:
			m.mu.Lock()
			for k, e := range m.entries {
				if e.expired(now) {
					delete(m.entries, k)
				}
			}
			m.mu.Unlock()
		case <-m.done:
			return
		}
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, ErrMiss
	}
	now := time.Now()
	if e.expired(now) {
		delete(m.entries, key)
		return nil, ErrMiss
	}

	// Reading resets the sliding window, capped by the absolute deadline.
	if e.sliding > 0 {
		e.slideUntil = now.Add(e.sliding)
		if e.slideUntil.After(e.absDeadline) {
			e.slideUntil = e.absDeadline
		}
	}
	// Callers get their own copy; the stored bytes stay immutable.
	return append([]byte(nil), e.value...), nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, exp Expiration) error {
	now := time.Now()
	e := &memoryEntry{
		value:       append([]byte(nil), value...),
		absDeadline: now.Add(exp.Absolute),
		sliding:     exp.Sliding,
		slideUntil:  now.Add(exp.Absolute),
	}
	if exp.Sliding > 0 && exp.Sliding < exp.Absolute {
		e.slideUntil = now.Add(exp.Sliding)
	}

	m.mu.Lock()
	m.entries[key] = e
	m.mu.Unlock()
	return nil
}

func (m *Memory) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Close() {
	m.once.Do(func() { close(m.done) })
}
