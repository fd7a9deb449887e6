package game

import "time"

// FixedStep gates simulation steps to a fixed interval for hosts that call
// back once per frame
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep that fires on its first check
func NewFixedStep(interval time.Duration) *FixedStep {
	if interval <= 0 {
		interval = time.Second / 60
	}
	return &FixedStep{step: interval, accumulator: interval, now: time.Now}
}

// ShouldStep reports whether a full interval has elapsed since the previous step.
// At most one step is granted per call, so a slow host skips ticks instead of
// bursting.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now
	if f.accumulator >= f.step {
		f.accumulator %= f.step
		return true
	}
	return false
}
