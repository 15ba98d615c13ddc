package imageview

import (
	"image/color"
	"time"
)

// ImageHandle is a loaded image owned by a Renderer implementation.
type ImageHandle interface {
	// Size returns the image dimensions in pixels.
	Size() (width, height int)
}

// FontHandle is a loaded font owned by a Renderer implementation.
type FontHandle interface {
	// Name returns the font's display name.
	Name() string
}

// SoundHandle is a decoded-on-demand sound owned by an AudioPlayer.
type SoundHandle interface {
	// Name returns the virtual path the sound was loaded from.
	Name() string
}

// Loader resolves virtual asset paths such as "/dragon1.png".
//
// Every method returns a *ResourceLoadError on failure.
type Loader interface {
	LoadImage(path string) (ImageHandle, error)
	LoadFont(path string) (FontHandle, error)
	LoadSound(path string) (SoundHandle, error)
}

// Renderer draws one frame at a time.
//
// Calls between BeginFrame and EndFrame are recorded in order. DrawPolyline
// and EndFrame report submission failures as *RenderSubmissionError.
type Renderer interface {
	BeginFrame(clear color.RGBA)
	DrawImage(img ImageHandle, at Point, tint color.RGBA)
	DrawText(s string, font FontHandle, at Point, size float64, c color.RGBA)
	DrawFilledRect(r Rect, c color.RGBA)
	DrawPolyline(segs []Segment) error
	EndFrame() error
}

// AudioPlayer starts sounds.
type AudioPlayer interface {
	// PlayDetached starts playback that keeps running after the call returns
	// and after the caller drops its handle.
	PlayDetached(s SoundHandle) error
}

// Clock paces the simulation.
type Clock interface {
	// CheckUpdateTime reports whether another fixed-rate tick is due and,
	// if so, consumes it. It never blocks.
	CheckUpdateTime(targetRate int) bool

	// Delta returns the duration of the last frame.
	Delta() time.Duration

	// FPS returns the average frame rate over recent frames.
	FPS() float64
}
