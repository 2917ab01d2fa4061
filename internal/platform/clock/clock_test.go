package clock_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"learnify/internal/platform/clock"
)

func TestSystemSleepHonoursCancellation(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	err := clock.SystemClock{}.Sleep(ctx, time.Minute)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("cancelled sleep should return immediately")
	}
}

func TestSystemSleepWaits(t *testing.T) {
	t.Parallel()
	start := time.Now()
	if err := (clock.SystemClock{}).Sleep(context.Background(), 20*time.Millisecond); err != nil {
		t.Fatalf("sleep: %v", err)
	}
	if time.Since(start) < 20*time.Millisecond {
		t.Fatalf("sleep returned too early")
	}
}

func TestNoSleep(t *testing.T) {
	t.Parallel()
	if err := (clock.NoSleep{}).Sleep(context.Background(), time.Hour); err != nil {
		t.Fatalf("no sleep: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := (clock.NoSleep{}).Sleep(ctx, time.Hour); err == nil {
		t.Fatalf("expected cancellation error")
	}
}
