package core

import (
	"context"
	"time"
)

// FixedStep paces a driver loop at a steady ticks-per-second rate. A
// non-positive rate disables pacing.
type FixedStep struct {
	step time.Duration
	next time.Time
	now  func() time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{now: time.Now}
	if tps > 0 {
		fs.step = time.Second / time.Duration(tps)
	}
	return fs
}

// Wait blocks until the next tick is due or ctx is done.
func (f *FixedStep) Wait(ctx context.Context) error {
	if f.step == 0 {
		return ctx.Err()
	}
	now := f.now()
	if f.next.IsZero() || !now.Before(f.next) {
		f.advance(now)
		return ctx.Err()
	}
	timer := time.NewTimer(f.next.Sub(now))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		f.advance(f.now())
		return nil
	}
}

func (f *FixedStep) advance(now time.Time) {
	if f.next.IsZero() || now.Sub(f.next) > f.step {
		// Fell behind by more than a tick; resynchronise instead of bursting.
		f.next = now.Add(f.step)
		return
	}
	f.next = f.next.Add(f.step)
}
