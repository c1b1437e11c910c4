package httpx

import (
	"testing"
	"time"
)

func TestMemoryRateLimiterFixedWindow(t *testing.T) {
	rl := NewMemoryRateLimiter()
	defer rl.Close()

	for i := 0; i < 3; i++ {
		decision := rl.Allow("ip:10.0.0.1", 3, time.Minute)
		if !decision.allowed {
			t.Fatalf("request %d unexpectedly limited", i+1)
		}
		if decision.count != i+1 {
			t.Fatalf("expected count %d, got %d", i+1, decision.count)
		}
	}

	decision := rl.Allow("ip:10.0.0.1", 3, time.Minute)
	if decision.allowed {
		t.Fatal("fourth request should be limited")
	}
	if decision.windowEnd.IsZero() {
		t.Fatal("limited decision missing window end")
	}

	// A different key is unaffected.
	if other := rl.Allow("ip:10.0.0.2", 3, time.Minute); !other.allowed {
		t.Fatal("independent key was limited")
	}
}

func TestMemoryRateLimiterWindowReset(t *testing.T) {
	rl := &memoryRateLimiter{entries: make(map[string]rateState), stopCh: make(chan struct{})}

	first := rl.Allow("ip:10.0.0.1", 1, 10*time.Millisecond)
	if !first.allowed {
		t.Fatal("first request limited")
	}
	if rl.Allow("ip:10.0.0.1", 1, 10*time.Millisecond).allowed {
		t.Fatal("second request inside window allowed")
	}

	time.Sleep(15 * time.Millisecond)
	if !rl.Allow("ip:10.0.0.1", 1, 10*time.Millisecond).allowed {
		t.Fatal("request after window expiry limited")
	}
}

func TestMemoryRateLimiterCleanup(t *testing.T) {
	rl := &memoryRateLimiter{entries: make(map[string]rateState), stopCh: make(chan struct{})}
	rl.Allow("ip:10.0.0.1", 5, time.Millisecond)
	rl.cleanup(time.Now().Add(time.Second))
	if len(rl.entries) != 0 {
		t.Fatalf("expected swept entries, %d remain", len(rl.entries))
	}
}

func TestZeroLimitDisablesLimiting(t *testing.T) {
	rl := NewMemoryRateLimiter()
	defer rl.Close()
	for i := 0; i < 100; i++ {
		if !rl.Allow("ip:10.0.0.1", 0, time.Minute).allowed {
			t.Fatal("zero limit must disable limiting")
		}
	}
}
