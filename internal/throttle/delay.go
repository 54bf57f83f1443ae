package throttle

import (
	"context"
	"math/rand/v2"
	"time"
)

// Delay is the pause between translation batches. With Jitter set, each wait
// is a random duration in [Base, Base+Jitter).
type Delay struct {
	Base   time.Duration
	Jitter time.Duration
}

// NewDelay creates a fixed delay of base plus up to jitter.
func NewDelay(base, jitter time.Duration) *Delay {
	return &Delay{Base: base, Jitter: jitter}
}

// Wait sleeps for the next delay or until ctx is done.
// A nil Delay does not wait.
func (d *Delay) Wait(ctx context.Context) error {
	if d == nil {
		return nil
	}
	wait := d.Next()
	if wait <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Next returns the duration of the next wait.
func (d *Delay) Next() time.Duration {
	return randomBetween(d.Base, d.Base+d.Jitter)
}

func randomBetween(min, max time.Duration) time.Duration {
	if min >= max {
		return min
	}
	return min + time.Duration(rand.Int64N(int64(max-min)))
}
