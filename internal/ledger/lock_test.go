package ledger

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestLockAcquireRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.lock")
	l := NewLock(path)

	if err := l.Acquire(); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if err := l.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
}

func TestTryAcquire(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.lock")
	l := NewLock(path)

	if err := l.TryAcquire(); err != nil {
		t.Fatalf("TryAcquire failed: %v", err)
	}
	defer l.Release()
}

func TestReleaseWithoutAcquire(t *testing.T) {
	l := NewLock(filepath.Join(t.TempDir(), "ledger.lock"))
	if err := l.Release(); err != nil {
		t.Errorf("Release of unheld lock failed: %v", err)
	}
}

func TestErrLockHeldIsSentinel(t *testing.T) {
	err := ErrLockHeld
	if !errors.Is(err, ErrLockHeld) {
		t.Fatal("ErrLockHeld does not match itself")
	}
}
