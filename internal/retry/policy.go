// Package retry provides the bounded attempt/interval policy shared by
// the generation poller and the code extractor.
package retry

import (
	"context"
	"errors"
	"time"
)

// ErrExhausted is returned when every attempt ran without the operation
// reporting done.
var ErrExhausted = errors.New("retry: attempts exhausted")

// SleepFunc waits for the given interval or until the context is
// canceled. Injected in tests to avoid real sleeps.
type SleepFunc func(ctx context.Context, d time.Duration) error

func defaultSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Policy runs an operation up to MaxAttempts times, sleeping Interval
// between attempts.
type Policy struct {
	MaxAttempts int
	Interval    time.Duration
	Sleep       SleepFunc
}

// Run invokes op until it reports done, returns a terminal error, or the
// attempt budget runs out. op receives the 1-based attempt number. A nil
// error with done=false means "keep trying"; a non-nil error stops the
// loop immediately.
func (p Policy) Run(ctx context.Context, op func(ctx context.Context, attempt int) (done bool, err error)) error {
	sleep := p.Sleep
	if sleep == nil {
		sleep = defaultSleep
	}
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		done, err := op(ctx, attempt)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if attempt == attempts {
			break
		}
		if err := sleep(ctx, p.Interval); err != nil {
			return err
		}
	}
	return ErrExhausted
}
