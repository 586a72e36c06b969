// Package lock serializes critical sections by key. Settlement uses it so
// that two concurrent settle calls for the same counterparty cannot both read
// a non-zero balance and both insert an offsetting transaction.
package lock

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Backend names accepted by the SETTLE_LOCK setting.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// ErrEmptyKey is returned when a lock is requested without a key.
var ErrEmptyKey = errors.New("lock key cannot be empty")

// Locker runs fn while holding the lock identified by key.
// The error returned by fn is passed through unchanged.
type Locker interface {
	WithLock(ctx context.Context, key string, fn func(context.Context) error) error
}

// Noop performs no locking at all.
type Noop struct{}

// WithLock runs fn immediately.
func (Noop) WithLock(ctx context.Context, key string, fn func(context.Context) error) error {
	return fn(ctx)
}

// ValidBackend reports whether name is a known backend.
func ValidBackend(name string) bool {
	switch name {
	case BackendNone, BackendMemory, BackendRedis:
		return true
	}
	return false
}

func checkKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	return nil
}

func acquireErr(key string, err error) error {
	return fmt.Errorf("failed to acquire lock %s: %w", key, err)
}
