package ledger

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"
)

// ErrLockHeld is returned by TryAcquire when another process holds the
// ledger lock.
var ErrLockHeld = errors.New("ledger lock held by another process")

// Lock is an advisory exclusive lock on the ledger's companion lock file.
// It serializes sync and fix across processes; check never takes it.
type Lock struct {
	fl *flock.Flock
}

// NewLock returns an unacquired lock for the given lock file path.
func NewLock(path string) *Lock {
	return &Lock{fl: flock.New(path)}
}

// Acquire blocks until the lock is held. Callers that need bounded waiting
// should use TryAcquire and retry themselves.
func (l *Lock) Acquire() error {
	if err := l.fl.Lock(); err != nil {
		return fmt.Errorf("acquiring ledger lock %s: %w", l.fl.Path(), err)
	}
	return nil
}

// TryAcquire attempts the lock without blocking. Returns ErrLockHeld when
// another process has it.
func (l *Lock) TryAcquire() error {
	ok, err := l.fl.TryLock()
	if err != nil {
		return fmt.Errorf("acquiring ledger lock %s: %w", l.fl.Path(), err)
	}
	if !ok {
		return ErrLockHeld
	}
	return nil
}

// Release drops the lock. Safe to call when not held.
func (l *Lock) Release() error {
	return l.fl.Unlock()
}
