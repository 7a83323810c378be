// Package lock provides the bounded-wait mutex that serializes access to the
// active game.
package lock

import (
	"context"
	"time"
)

// DefaultTimeout bounds how long a caller waits for the lock when none is configured.
const DefaultTimeout = 2 * time.Second

// GameLock is a mutex whose acquisition gives up after a timeout or when the
// caller's context ends.
type GameLock struct {
	sem     chan struct{}
	timeout time.Duration
}

// NewGameLock creates an unlocked GameLock.
func NewGameLock(timeout time.Duration) *GameLock {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &GameLock{
		sem:     make(chan struct{}, 1),
		timeout: timeout,
	}
}

// Timeout returns the configured wait bound.
func (l *GameLock) Timeout() time.Duration {
	return l.timeout
}

// Lock acquires the lock, waiting at most the configured timeout.
// Returns ErrLockTimeout on timeout, or the context error if ctx ends first.
func (l *GameLock) Lock(ctx context.Context) error {
	select {
	case l.sem <- struct{}{}:
		return nil
	default:
	}

	timer := time.NewTimer(l.timeout)
	defer timer.Stop()

	select {
	case l.sem <- struct{}{}:
		return nil
	case <-timer.C:
		return ErrLockTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Unlock releases the lock. Unlocking an unlocked GameLock panics, like sync.Mutex.
func (l *GameLock) Unlock() {
	select {
	case <-l.sem:
	default:
		panic("lock: unlock of unlocked GameLock")
	}
}

// TryLock attempts to acquire the lock without blocking.
func (l *GameLock) TryLock() bool {
	select {
	case l.sem <- struct{}{}:
		return true
	default:
		return false
	}
}

// WithLock executes fn while holding the lock.
func (l *GameLock) WithLock(ctx context.Context, fn func() error) error {
	if err := l.Lock(ctx); err != nil {
		return err
	}
	defer l.Unlock()
	return fn()
}

// IsLocked reports whether the lock is currently held.
// This is a point-in-time check and may change immediately after.
func (l *GameLock) IsLocked() bool {
	return len(l.sem) == 1
}
