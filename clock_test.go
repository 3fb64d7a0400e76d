package hearth

import (
	"testing"
	"time"
)

// fakeClock returns a FrameClock driven by a manual time source and the
// function that advances it.
func fakeClock(step time.Duration) (*FrameClock, func(time.Duration)) {
	t := time.Unix(1000, 0)
	c := NewFrameClock(step)
	c.now = func() time.Time { return t }
	c.started = t
	c.last = t
	advance := func(d time.Duration) { t = t.Add(d) }
	return c, advance
}

func TestConsumeFixedStep(t *testing.T) {
	step := time.Second / 60
	c, advance := fakeClock(step)

	advance(50 * time.Millisecond)
	delta := c.Poll()
	if delta != 50*time.Millisecond {
		t.Fatalf("Poll = %v, want 50ms", delta)
	}

	// 50ms covers exactly three 16.67ms steps.
	steps := 0
	for c.ConsumeFixedStep() {
		steps++
		if steps > 10 {
			t.Fatal("ConsumeFixedStep never drained")
		}
	}
	if steps != 3 {
		t.Errorf("steps = %d, want 3", steps)
	}
	if c.residual >= step {
		t.Errorf("residual = %v, want < %v", c.residual, step)
	}
	if c.ConsumeFixedStep() {
		t.Error("ConsumeFixedStep after drain = true, want false")
	}
}

func TestResidualCap(t *testing.T) {
	step := time.Second / 60
	c, advance := fakeClock(step)

	// A ten-second stall must not replay ten seconds of simulation.
	advance(10 * time.Second)
	c.Poll()

	steps := 0
	for c.ConsumeFixedStep() {
		steps++
		if steps > maxPendingSteps {
			t.Fatalf("steps = %d, want at most %d", steps, maxPendingSteps)
		}
	}
	if steps != maxPendingSteps {
		t.Errorf("steps = %d, want %d", steps, maxPendingSteps)
	}
}

func TestBackwardsClockClamps(t *testing.T) {
	c, advance := fakeClock(time.Second / 60)

	advance(-time.Second)
	if delta := c.Poll(); delta != 0 {
		t.Errorf("Poll with backwards clock = %v, want 0", delta)
	}
	if c.ConsumeFixedStep() {
		t.Error("ConsumeFixedStep = true after zero delta, want false")
	}
}

func TestAlpha(t *testing.T) {
	step := 10 * time.Millisecond
	c, advance := fakeClock(step)

	advance(25 * time.Millisecond)
	c.Poll()
	for c.ConsumeFixedStep() {
	}
	// 25ms leaves 5ms of a 10ms step: alpha one half.
	if got := c.Alpha(); got < 0.49 || got > 0.51 {
		t.Errorf("Alpha = %v, want 0.5", got)
	}
	if a := c.Alpha(); a < 0 || a >= 1 {
		t.Errorf("Alpha = %v, want in [0,1)", a)
	}
}

func TestSetFixedStep(t *testing.T) {
	c, advance := fakeClock(10 * time.Millisecond)

	if err := c.SetFixedStep(0); err == nil {
		t.Error("SetFixedStep(0): want error")
	}
	if err := c.SetFixedStep(20 * time.Millisecond); err != nil {
		t.Fatalf("SetFixedStep: %v", err)
	}
	if c.FixedStep() != 20*time.Millisecond {
		t.Errorf("FixedStep = %v, want 20ms", c.FixedStep())
	}

	advance(30 * time.Millisecond)
	c.Poll()
	steps := 0
	for c.ConsumeFixedStep() {
		steps++
	}
	if steps != 1 {
		t.Errorf("steps at 20ms step over 30ms = %d, want 1", steps)
	}
}

func TestNewFrameClockDefaults(t *testing.T) {
	c := NewFrameClock(0)
	if c.FixedStep() != DefaultFixedStep {
		t.Errorf("FixedStep = %v, want %v", c.FixedStep(), DefaultFixedStep)
	}
}

func TestClockStats(t *testing.T) {
	c, advance := fakeClock(time.Second / 60)

	for i := 0; i < 10; i++ {
		advance(20 * time.Millisecond)
		c.Poll()
		for c.ConsumeFixedStep() {
		}
	}
	if got := c.Delta(); got != 20*time.Millisecond {
		t.Errorf("Delta = %v, want 20ms", got)
	}
	if got := c.Uptime(); got != 200*time.Millisecond {
		t.Errorf("Uptime = %v, want 200ms", got)
	}
	// Steady 20ms frames average to 50 FPS.
	if got := c.FPS(); got < 49.9 || got > 50.1 {
		t.Errorf("FPS = %v, want 50", got)
	}
}
