package hearth

import (
	"time"
)

// DefaultFixedStep is the simulation timestep used when the Config does
// not set one: 60 updates per second.
const DefaultFixedStep = time.Second / 60

// maxPendingSteps bounds the residual accumulator. When a frame takes
// longer than maxPendingSteps fixed steps (debugger pause, laptop
// suspend), the excess time is discarded rather than replayed, so the
// simulation slows down instead of spiraling.
const maxPendingSteps = 8

// fpsSamples is the window for the rolling frame-rate average.
const fpsSamples = 64

// FrameClock converts wall-clock time into frame deltas and fixed
// simulation steps. Poll once per loop iteration; then drain whole
// fixed steps with ConsumeFixedStep. Leftover time below one step stays
// in the accumulator and is exposed through Alpha for render
// interpolation.
//
// The clock reads the monotonic clock, so external adjustments to the
// system time do not produce time travel. Not safe for concurrent use.
type FrameClock struct {
	now func() time.Time

	started  time.Time
	last     time.Time
	step     time.Duration
	residual time.Duration
	delta    time.Duration

	samples [fpsSamples]time.Duration
	sampleN int
	sampleI int
	sum     time.Duration
}

// NewFrameClock returns a clock with the given fixed step. A
// non-positive step falls back to DefaultFixedStep.
func NewFrameClock(step time.Duration) *FrameClock {
	if step <= 0 {
		step = DefaultFixedStep
	}
	t := time.Now()
	return &FrameClock{now: time.Now, started: t, last: t, step: step}
}

// Poll samples the clock and accounts the time since the previous Poll.
// It returns the raw frame delta; the same amount (bounded below by
// zero and above by the accumulator cap) is added to the fixed-step
// residual.
func (c *FrameClock) Poll() time.Duration {
	t := c.now()
	delta := t.Sub(c.last)
	c.last = t
	if delta < 0 {
		// Should not happen with a monotonic source, but a clock that
		// runs backwards must never produce negative simulation time.
		Logger().Warn("clock went backwards", "delta", delta)
		delta = 0
	}
	c.delta = delta
	c.residual += delta
	if max := c.step * maxPendingSteps; c.residual > max {
		Logger().Debug("frame residual clamped",
			"residual", c.residual, "max", max)
		c.residual = max
	}
	c.recordSample(delta)
	return delta
}

// ConsumeFixedStep takes one fixed step out of the accumulator. It
// reports false when less than a whole step is pending; callers loop
// over it to run as many simulation updates as real time has covered.
func (c *FrameClock) ConsumeFixedStep() bool {
	if c.residual < c.step {
		return false
	}
	c.residual -= c.step
	return true
}

// Alpha returns the fraction of a fixed step left in the accumulator,
// in [0,1): how far between the last simulation state and the next one
// the current frame falls. Renderers interpolate with it.
func (c *FrameClock) Alpha() float64 {
	return float64(c.residual) / float64(c.step)
}

// FixedStep returns the current fixed timestep.
func (c *FrameClock) FixedStep() time.Duration { return c.step }

// SetFixedStep changes the fixed timestep, effective from the next
// ConsumeFixedStep. The residual is preserved.
func (c *FrameClock) SetFixedStep(step time.Duration) error {
	if step <= 0 {
		return &ConfigError{Field: "FixedStep", Reason: "must be positive"}
	}
	c.step = step
	return nil
}

// Delta returns the raw delta of the most recent Poll.
func (c *FrameClock) Delta() time.Duration { return c.delta }

// Uptime returns the time since the clock was created.
func (c *FrameClock) Uptime() time.Duration {
	return c.now().Sub(c.started)
}

// FPS returns the average frame rate over the recent sample window, or
// zero before the first Poll.
func (c *FrameClock) FPS() float64 {
	if c.sampleN == 0 || c.sum <= 0 {
		return 0
	}
	return float64(c.sampleN) / c.sum.Seconds()
}

func (c *FrameClock) recordSample(d time.Duration) {
	if c.sampleN == fpsSamples {
		c.sum -= c.samples[c.sampleI]
	} else {
		c.sampleN++
	}
	c.samples[c.sampleI] = d
	c.sum += d
	c.sampleI = (c.sampleI + 1) % fpsSamples
}
