package store

import (
	"context"
	"testing"
	"time"
)

func TestThrottleSpacesCalls(t *testing.T) {
	interval := 50 * time.Millisecond
	throttle := NewThrottle(interval)

	start := time.Now()
	for range 3 {
		if err := throttle.Wait(context.Background()); err != nil {
			t.Fatalf("unexpected error (%v)", err)
		}
	}

	if dt := time.Since(start); dt < 2*interval-5*time.Millisecond {
		t.Errorf("expected 3 calls to take at least %v, took %v", 2*interval, dt)
	}
}

func TestThrottleWithContextDeadline(t *testing.T) {
	throttle := NewThrottle(1 * time.Second)

	if err := throttle.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error (%v)", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := throttle.Wait(ctx); err == nil {
		t.Errorf("expected error waiting beyond context deadline")
	}
}

func TestThrottleDisabled(t *testing.T) {
	throttle := NewThrottle(0)

	start := time.Now()
	for range 10 {
		if err := throttle.Wait(context.Background()); err != nil {
			t.Fatalf("unexpected error (%v)", err)
		}
	}

	if dt := time.Since(start); dt > 100*time.Millisecond {
		t.Errorf("expected unthrottled calls, took %v", dt)
	}
}
