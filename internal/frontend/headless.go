package frontend

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gogpu/gg"

	"github.com/gogpu/imageview"
	"github.com/gogpu/imageview/internal/timer"
)

// HeadlessOptions configures RenderFrames.
type HeadlessOptions struct {
	Width, Height int

	// Frames is the number of frames to simulate.
	Frames int

	// Every writes every Every-th frame, starting with the first.
	// Zero or one writes all frames.
	Every int

	// FrameRate is the simulated display rate. Zero means 60.
	FrameRate int

	// OutDir receives frame-NNNN.png files. It is created if needed.
	OutDir string
}

// DefaultFrameRate is the simulated display rate of RenderFrames.
const DefaultFrameRate = 60

// ErrNoFrames is returned when RenderFrames is asked for no frames.
var ErrNoFrames = errors.New("frontend: frame count must be positive")

// RenderFrames draws scene offscreen with a simulated clock advancing by
// 1/FrameRate per frame, and writes the selected frames as PNG files.
// It returns the paths written. The context is checked between frames.
func RenderFrames(ctx context.Context, scene *imageview.Scene, opts HeadlessOptions) ([]string, error) {
	if opts.Frames <= 0 {
		return nil, ErrNoFrames
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("frontend: invalid size %dx%d", opts.Width, opts.Height)
	}
	every := max(opts.Every, 1)
	rate := opts.FrameRate
	if rate <= 0 {
		rate = DefaultFrameRate
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	fake := timer.NewFake(time.Unix(0, 0))
	loop := NewLoop(scene, timer.New(timer.WithNow(fake.Now)))
	frame := time.Second / time.Duration(rate)

	dc := gg.NewContext(opts.Width, opts.Height)
	defer func() { _ = dc.Close() }()

	log := imageview.Logger()
	var written []string
	for i := range opts.Frames {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		fake.Advance(frame)
		if _, err := loop.Step(dc); err != nil {
			return written, fmt.Errorf("frame %d: %w", i, err)
		}
		if i%every != 0 {
			continue
		}
		path := filepath.Join(opts.OutDir, fmt.Sprintf("frame-%04d.png", i))
		if err := dc.SavePNG(path); err != nil {
			return written, fmt.Errorf("frame %d: %w", i, err)
		}
		written = append(written, path)
		log.Debug("imageview: frame written", "path", path, "brightness", scene.Oscillator().Value())
	}
	log.Info("imageview: frames written", "count", len(written), "dir", opts.OutDir)
	return written, nil
}
