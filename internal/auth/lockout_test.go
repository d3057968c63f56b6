package auth

import (
	"testing"
	"time"
)

func TestLockoutAfterMaxAttempts(t *testing.T) {
	tr := NewLockoutTracker(3, 24*time.Hour)
	now := time.Date(2024, time.July, 15, 10, 0, 0, 0, time.UTC)

	if remaining, locked := tr.Fail("client", now); locked || remaining != 2 {
		t.Fatalf("after 1 failure: remaining=%d locked=%v, want 2/false", remaining, locked)
	}
	if remaining, locked := tr.Fail("client", now); locked || remaining != 1 {
		t.Fatalf("after 2 failures: remaining=%d locked=%v, want 1/false", remaining, locked)
	}
	if _, locked := tr.Fail("client", now); !locked {
		t.Fatal("third failure should trigger the lockout")
	}

	locked, remaining := tr.Locked("client", now.Add(time.Hour))
	if !locked {
		t.Fatal("client should still be locked inside the window")
	}
	if remaining != 23*time.Hour {
		t.Errorf("remaining = %v, want 23h", remaining)
	}
}

func TestLockoutExpires(t *testing.T) {
	tr := NewLockoutTracker(1, 24*time.Hour)
	now := time.Date(2024, time.July, 15, 10, 0, 0, 0, time.UTC)

	tr.Fail("client", now)
	if locked, _ := tr.Locked("client", now.Add(25*time.Hour)); locked {
		t.Fatal("lockout should expire after the window")
	}

	// Expiry clears the counter, so the next failures start fresh.
	if _, locked := tr.Fail("client", now.Add(25*time.Hour)); !locked {
		t.Error("maxAttempts=1 should lock again on the next failure")
	}
}

func TestLockoutReset(t *testing.T) {
	tr := NewLockoutTracker(3, 24*time.Hour)
	now := time.Now()

	tr.Fail("client", now)
	tr.Fail("client", now)
	tr.Reset("client")

	if remaining, locked := tr.Fail("client", now); locked || remaining != 2 {
		t.Errorf("after reset: remaining=%d locked=%v, want 2/false", remaining, locked)
	}
}

func TestLockoutKeysAreIndependent(t *testing.T) {
	tr := NewLockoutTracker(1, 24*time.Hour)
	now := time.Now()

	tr.Fail("a", now)
	if locked, _ := tr.Locked("b", now); locked {
		t.Error("lockout of one client must not affect another")
	}
}

func TestLockoutDefaults(t *testing.T) {
	tr := NewLockoutTracker(0, 0)
	if tr.maxAttempts != DefaultMaxAttempts || tr.window != DefaultLockoutWindow {
		t.Errorf("defaults = %d/%v, want %d/%v", tr.maxAttempts, tr.window, DefaultMaxAttempts, DefaultLockoutWindow)
	}
}
