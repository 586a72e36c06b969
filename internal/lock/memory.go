package lock

import (
	"context"
	"sync"
)

// Memory is an in-process keyed mutex. It only serializes callers that share
// the same Memory value, so it is correct for a single server instance.
type Memory struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	// ch has capacity one; holding the token means holding the lock.
	ch   chan struct{}
	refs int
}

// NewMemory returns an empty keyed mutex.
func NewMemory() *Memory {
	return &Memory{locks: make(map[string]*entry)}
}

// WithLock waits for the key, or for ctx to be done, then runs fn.
func (m *Memory) WithLock(ctx context.Context, key string, fn func(context.Context) error) error {
	if err := checkKey(key); err != nil {
		return err
	}

	e := m.acquireEntry(key)
	defer m.releaseEntry(key, e)

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		return acquireErr(key, ctx.Err())
	}
	defer func() { <-e.ch }()

	return fn(ctx)
}

func (m *Memory) acquireEntry(key string) *entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.locks[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		m.locks[key] = e
	}
	e.refs++
	return e
}

func (m *Memory) releaseEntry(key string, e *entry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(m.locks, key)
	}
}

// size reports how many keys are currently tracked.
func (m *Memory) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.locks)
}
