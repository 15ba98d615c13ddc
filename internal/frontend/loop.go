// Package frontend drives an imageview.Scene frame by frame.
//
// Loop is the per-frame sequence shared by the window and the headless
// renderer: advance the clock, run the due ticks, draw into a gg.Context.
// RenderFrames runs a Loop offscreen with simulated time and writes PNGs.
package frontend

import (
	"github.com/gogpu/gg"

	"github.com/gogpu/imageview"
	"github.com/gogpu/imageview/internal/ggrender"
	"github.com/gogpu/imageview/internal/timer"
)

// Loop advances a Scene by one displayed frame per Step.
type Loop struct {
	scene    *imageview.Scene
	clock    *timer.Clock
	renderer *ggrender.Renderer
}

// NewLoop returns a Loop for scene paced by clock.
func NewLoop(scene *imageview.Scene, clock *timer.Clock) *Loop {
	return &Loop{scene: scene, clock: clock}
}

// Step ticks the clock, runs every due update and draws the scene into dc.
// It returns the number of updates run and the first drawing error.
func (l *Loop) Step(dc *gg.Context) (int, error) {
	l.clock.Tick()
	n := l.scene.Update(l.clock)

	if l.renderer == nil {
		l.renderer = ggrender.New(dc)
	} else if l.renderer.Context() != dc {
		l.renderer.SetContext(dc)
	}
	return n, l.scene.Draw(l.renderer)
}

// Clock returns the loop's clock.
func (l *Loop) Clock() *timer.Clock { return l.clock }

// Scene returns the loop's scene.
func (l *Loop) Scene() *imageview.Scene { return l.scene }
