package solver

import (
	"context"
	"time"
)

// Pacer suspends a run between steps. A non-nil error ends the run as aborted.
type Pacer interface {
	Pause(ctx context.Context) error
}

// PacerFunc adapts a function to Pacer.
type PacerFunc func(ctx context.Context) error

// Pause calls f(ctx).
func (f PacerFunc) Pause(ctx context.Context) error {
	return f(ctx)
}

// NoDelay yields without waiting. It still reports cancellation.
var NoDelay Pacer = PacerFunc(func(ctx context.Context) error {
	return ctx.Err()
})

// Delay returns a Pacer that waits d, or until ctx is done, whichever comes first.
func Delay(d time.Duration) Pacer {
	if d <= 0 {
		return NoDelay
	}
	return PacerFunc(func(ctx context.Context) error {
		timer := time.NewTimer(d)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return ctx.Err()
		}
	})
}
