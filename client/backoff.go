package client

import "time"

// ExponentialBackoff produces a monotonically non-decreasing sequence of
// delay values bounded by a maximum. It is a pure, restartable sequence
// generator: how a delay is awaited (time.Sleep, a stubbed sleep in tests)
// is up to the caller, so one implementation serves every execution model.
//
// Next yields initial, initial*multiplier, ... capped at max:
//
//	b := NewExponentialBackoff(time.Second, 2, 10*time.Second)
//	b.Next() // 1s, 2s, 4s, 8s, 10s, 10s, ...
//
// Not safe for concurrent use; every retry loop owns its own instance.
type ExponentialBackoff struct {
	current    time.Duration
	initial    time.Duration
	multiplier float64
	max        time.Duration
	total      time.Duration
}

// NewExponentialBackoff creates a backoff sequence starting at initial and
// growing by multiplier up to max
func NewExponentialBackoff(initial time.Duration, multiplier float64, max time.Duration) *ExponentialBackoff {
	return &ExponentialBackoff{
		initial:    initial,
		multiplier: multiplier,
		max:        max,
	}
}

// Next advances the sequence and returns the next delay value
func (b *ExponentialBackoff) Next() time.Duration {
	if b.current == 0 {
		b.current = b.initial
	} else {
		next := time.Duration(float64(b.current) * b.multiplier)
		if next > b.max {
			next = b.max
		}
		b.current = next
		b.total += b.current
	}
	return b.current
}

// Current returns the most recently yielded delay, zero before the first
// Next or after a Reset
func (b *ExponentialBackoff) Current() time.Duration {
	return b.current
}

// Total returns the accumulated delay of the sequence so far. It grows
// monotonically until Reset.
func (b *ExponentialBackoff) Total() time.Duration {
	return b.total
}

// Reset restarts the sequence, zeroing both the current value and the total
func (b *ExponentialBackoff) Reset() {
	b.current = 0
	b.total = 0
}
