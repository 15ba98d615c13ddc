// Package timer paces the frame loop: it measures frame deltas, keeps a
// running average frame rate and hands out fixed-rate simulation ticks.
package timer

import "time"

// fpsSamples is the number of frame deltas averaged by FPS.
const fpsSamples = 200

// Option configures a Clock.
type Option func(*Clock)

// WithNow sets the time source. Tests and the headless renderer use it to
// drive the clock deterministically.
func WithNow(now func() time.Time) Option {
	return func(c *Clock) { c.now = now }
}

// Clock tracks frame timing.
//
// Call Tick exactly once per frame, then drain CheckUpdateTime. Clock is
// not safe for concurrent use.
type Clock struct {
	now      func() time.Time
	init     time.Time
	last     time.Time
	delta    time.Duration
	residual time.Duration

	samples [fpsSamples]time.Duration
	count   int
	next    int

	frames uint64
	ticks  uint64
}

// New returns a Clock started at the current time.
func New(opts ...Option) *Clock {
	c := &Clock{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	c.init = c.now()
	c.last = c.init
	return c
}

// Tick marks the start of a new frame.
func (c *Clock) Tick() {
	now := c.now()
	d := now.Sub(c.last)
	if d < 0 {
		d = 0
	}
	c.last = now
	c.delta = d
	c.residual += d

	c.samples[c.next] = d
	c.next = (c.next + 1) % fpsSamples
	if c.count < fpsSamples {
		c.count++
	}
	c.frames++
}

// CheckUpdateTime reports whether a tick at targetRate per second is due,
// consuming it if so. Call it in a loop to catch up after slow frames.
func (c *Clock) CheckUpdateTime(targetRate int) bool {
	if targetRate <= 0 {
		return false
	}
	period := time.Second / time.Duration(targetRate)
	if c.residual < period {
		return false
	}
	c.residual -= period
	c.ticks++
	return true
}

// Delta returns the duration of the last frame.
func (c *Clock) Delta() time.Duration { return c.delta }

// Average returns the mean frame duration over the last frames.
func (c *Clock) Average() time.Duration {
	if c.count == 0 {
		return 0
	}
	var sum time.Duration
	for _, d := range c.samples[:c.count] {
		sum += d
	}
	return sum / time.Duration(c.count)
}

// FPS returns the average frame rate, or 0 before the first frame.
func (c *Clock) FPS() float64 {
	avg := c.Average()
	if avg <= 0 {
		return 0
	}
	return float64(time.Second) / float64(avg)
}

// Remaining returns the unconsumed time carried into the next frame.
func (c *Clock) Remaining() time.Duration { return c.residual }

// Elapsed returns the time since the clock was created.
func (c *Clock) Elapsed() time.Duration { return c.last.Sub(c.init) }

// Frames returns the number of Tick calls.
func (c *Clock) Frames() uint64 { return c.frames }

// Ticks returns the number of simulation ticks handed out.
func (c *Clock) Ticks() uint64 { return c.ticks }

// Fake is a manually advanced time source.
type Fake struct {
	t time.Time
}

// NewFake returns a time source starting at start.
func NewFake(start time.Time) *Fake { return &Fake{t: start} }

// Now returns the current fake time.
func (f *Fake) Now() time.Time { return f.t }

// Advance moves the fake time forward by d.
func (f *Fake) Advance(d time.Duration) { f.t = f.t.Add(d) }
