package cutebot

import (
	"context"
	"time"

	"github.com/robotalks/cutebot.go/pkg/l0/comm"
)

// Clock provides time for the timing loops.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

// SystemClock uses the wall clock.
// Sleeps shorter than a millisecond spin instead of parking the goroutine.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Sleep implements Clock.
func (SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	if d >= time.Millisecond {
		return comm.TimerSleep(ctx, d)
	}
	for deadline := time.Now().Add(d); time.Now().Before(deadline); {
	}
	return ctx.Err()
}
