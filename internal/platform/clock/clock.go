package clock

import (
	"context"
	"time"
)

// Clock abstracts time to keep usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

// Sleeper is the injection point for simulated latency. Implementations must
// return ctx.Err() when the context ends before the delay elapses.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

func (SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NoSleep skips simulated delays but still honours cancellation.
type NoSleep struct{}

func (NoSleep) Sleep(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}
