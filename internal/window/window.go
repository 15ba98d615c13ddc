// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package window shows an imageview scene in a gogpu window.
//
// Architecture:
//
//	frontend.Loop (draw) → ggcanvas.Canvas → gogpu.Context (GPU) → Window
package window

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gg"
	_ "github.com/gogpu/gg/gpu" // Register GPU accelerator
	"github.com/gogpu/gg/integration/ggcanvas"
	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/imageview"
	"github.com/gogpu/imageview/internal/frontend"
)

// Options configures the window.
type Options struct {
	Title         string
	Width, Height int
}

// Run opens a window and draws loop into it every frame until the window
// is closed, Escape is pressed, ctx is done, or a frame fails. The first
// frame error is returned.
func Run(ctx context.Context, opts Options, loop *frontend.Loop) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("window: invalid size %dx%d", opts.Width, opts.Height)
	}
	log := imageview.Logger()

	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(opts.Title).
		WithSize(opts.Width, opts.Height))

	var (
		canvas *ggcanvas.Canvas
		mu     sync.Mutex
		runErr error
	)
	// fail records the first error and closes the window. It is also
	// called from the context watcher goroutine.
	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if runErr == nil {
			runErr = err
			app.Quit()
		}
	}
	failed := func() error {
		mu.Lock()
		defer mu.Unlock()
		return runErr
	}

	app.OnDraw(func(dc *gogpu.Context) {
		if failed() != nil {
			return
		}
		w, h := dc.Width(), dc.Height()
		if w <= 0 || h <= 0 {
			return
		}

		if canvas == nil {
			provider := app.GPUContextProvider()
			if provider == nil {
				return
			}
			var err error
			canvas, err = ggcanvas.New(provider, w, h)
			if err != nil {
				fail(fmt.Errorf("create canvas: %w", err))
				return
			}
			log.Info("imageview: window created", "title", opts.Title, "width", w, "height", h)
		}

		if cw, ch := canvas.Size(); cw != w || ch != h {
			if err := canvas.Resize(w, h); err != nil {
				log.Warn("imageview: canvas resize failed", "width", w, "height", h, "err", err)
			}
		}

		var frameErr error
		if err := canvas.Draw(func(cc *gg.Context) {
			_, frameErr = loop.Step(cc)
		}); err != nil {
			fail(fmt.Errorf("draw: %w", err))
			return
		}
		if frameErr != nil {
			fail(frameErr)
			return
		}

		if err := canvas.RenderTo(dc.AsTextureDrawer()); err != nil {
			fail(fmt.Errorf("present: %w", err))
		}
	})

	app.EventSource().OnKeyPress(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		if key == gpucontext.KeyEscape {
			log.Info("imageview: escape pressed")
			app.Quit()
		}
	})

	stop := context.AfterFunc(ctx, func() { fail(ctx.Err()) })
	defer stop()

	app.OnClose(func() {
		clock := loop.Clock()
		log.Info("imageview: window closed",
			"frames", clock.Frames(), "ticks", clock.Ticks(), "fps", clock.FPS())
		if canvas != nil {
			_ = canvas.Close()
		}
		if a := gg.Accelerator(); a != nil {
			a.Close()
		}
	})

	if err := app.Run(); err != nil {
		return errors.Join(failed(), err)
	}
	return failed()
}
