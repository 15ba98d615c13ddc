package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClock() (*Clock, *Fake) {
	f := NewFake(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	return New(WithNow(f.Now)), f
}

func drain(c *Clock, rate int) int {
	n := 0
	for c.CheckUpdateTime(rate) {
		n++
	}
	return n
}

func TestClock_NoTicksBeforeFirstFrame(t *testing.T) {
	c, _ := newTestClock()
	assert.False(t, c.CheckUpdateTime(60))
	assert.Zero(t, c.FPS())
	assert.Zero(t, c.Delta())
}

func TestClock_CatchUp(t *testing.T) {
	tests := []struct {
		name  string
		frame time.Duration
		want  int
	}{
		{"exact tick", time.Second / 60, 1},
		{"short frame", time.Millisecond, 0},
		{"slow frame", 100 * time.Millisecond, 6},
		{"one second stall", time.Second, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, f := newTestClock()
			f.Advance(tt.frame)
			c.Tick()
			assert.Equal(t, tt.want, drain(c, 60))
		})
	}
}

func TestClock_ResidualCarriesOver(t *testing.T) {
	c, f := newTestClock()
	total := 0
	for range 100 {
		f.Advance(7 * time.Millisecond)
		c.Tick()
		total += drain(c, 60)
	}
	// 700ms at 60Hz is 42 whole ticks.
	assert.Equal(t, 42, total)
	assert.Equal(t, uint64(42), c.Ticks())
	assert.Less(t, c.Remaining(), time.Second/60)
	assert.Equal(t, 700*time.Millisecond, c.Elapsed())
}

func TestClock_DeltaAndFPS(t *testing.T) {
	c, f := newTestClock()
	for range 10 {
		f.Advance(20 * time.Millisecond)
		c.Tick()
	}
	assert.Equal(t, 20*time.Millisecond, c.Delta())
	assert.InDelta(t, 50.0, c.FPS(), 1e-9)
	assert.Equal(t, uint64(10), c.Frames())
}

func TestClock_FPSWindow(t *testing.T) {
	c, f := newTestClock()
	for range fpsSamples {
		f.Advance(100 * time.Millisecond)
		c.Tick()
	}
	require.InDelta(t, 10.0, c.FPS(), 1e-9)

	// A full window of fast frames pushes the slow ones out.
	for range fpsSamples {
		f.Advance(10 * time.Millisecond)
		c.Tick()
	}
	assert.InDelta(t, 100.0, c.FPS(), 1e-9)
}

func TestClock_InvalidRate(t *testing.T) {
	c, f := newTestClock()
	f.Advance(time.Second)
	c.Tick()
	assert.False(t, c.CheckUpdateTime(0))
	assert.False(t, c.CheckUpdateTime(-1))
}

func TestClock_BackwardsTimeIgnored(t *testing.T) {
	c, f := newTestClock()
	f.Advance(-time.Second)
	c.Tick()
	assert.Zero(t, c.Delta())
	assert.False(t, c.CheckUpdateTime(60))
}
