package ggrender

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/gogpu/gg"

	"github.com/gogpu/imageview"
)

// ErrForeignHandle is returned when a handle created by another Renderer
// implementation is passed in.
var ErrForeignHandle = errors.New("ggrender: handle was not created by ggrender")

// Renderer draws imageview frames into a gg.Context.
//
// Methods without an error result record the first failure; EndFrame
// returns it. Renderer is not safe for concurrent use.
type Renderer struct {
	dc      *gg.Context
	inFrame bool
	err     error
	frames  uint64
}

var _ imageview.Renderer = (*Renderer)(nil)

// New returns a Renderer drawing into dc.
func New(dc *gg.Context) *Renderer {
	return &Renderer{dc: dc}
}

// Context returns the underlying drawing context.
func (r *Renderer) Context() *gg.Context { return r.dc }

// SetContext retargets the renderer, e.g. after the window canvas was
// resized. It must not be called inside a frame.
func (r *Renderer) SetContext(dc *gg.Context) { r.dc = dc }

// Frames returns the number of completed frames.
func (r *Renderer) Frames() uint64 { return r.frames }

// BeginFrame clears the canvas and starts recording a frame.
func (r *Renderer) BeginFrame(clear color.RGBA) {
	r.inFrame = true
	r.err = nil
	r.dc.ClearPath()
	r.dc.ClearWithColor(gg.FromColor(clear))
}

// DrawImage draws img with its top-left corner at at, multiplied by tint.
func (r *Renderer) DrawImage(img imageview.ImageHandle, at imageview.Point, tint color.RGBA) {
	if !r.begin("draw image") {
		return
	}
	im, ok := img.(*Image)
	if !ok {
		r.fail("draw image", fmt.Errorf("%w: %T", ErrForeignHandle, img))
		return
	}
	r.dc.DrawImage(im.Tinted(tint), at.X, at.Y)
}

// DrawText draws s with the top of its line box at at.
func (r *Renderer) DrawText(s string, font imageview.FontHandle, at imageview.Point, size float64, c color.RGBA) {
	if !r.begin("draw text") {
		return
	}
	f, ok := font.(*Font)
	if !ok {
		r.fail("draw text", fmt.Errorf("%w: %T", ErrForeignHandle, font))
		return
	}
	face := f.Face(size)
	r.dc.SetFont(face)
	r.dc.SetColor(c)
	r.dc.DrawString(s, at.X, at.Y+face.Metrics().Ascent)
}

// DrawFilledRect fills rect with c.
func (r *Renderer) DrawFilledRect(rect imageview.Rect, c color.RGBA) {
	if !r.begin("fill rect") {
		return
	}
	r.dc.SetColor(c)
	r.dc.DrawRectangle(rect.X, rect.Y, rect.W, rect.H)
	if err := r.dc.Fill(); err != nil {
		r.fail("fill rect", err)
	}
}

// DrawPolyline validates segs and strokes them in order.
// Nothing is drawn if any segment is degenerate.
func (r *Renderer) DrawPolyline(segs []imageview.Segment) error {
	if !r.begin("polyline") {
		return r.err
	}
	if err := ValidateSegments(segs); err != nil {
		r.err = err
		return err
	}
	for i, s := range segs {
		r.dc.SetColor(s.Color)
		r.dc.SetLineWidth(s.Width)
		r.dc.MoveTo(s.Start.X, s.Start.Y)
		r.dc.LineTo(s.End.X, s.End.Y)
		if err := r.dc.Stroke(); err != nil {
			r.fail(fmt.Sprintf("polyline segment %d", i), err)
			return r.err
		}
	}
	return nil
}

// EndFrame finishes the frame and returns the first recorded failure.
func (r *Renderer) EndFrame() error {
	if !r.inFrame {
		return &imageview.RenderSubmissionError{Op: "end frame", Err: imageview.ErrNoFrame}
	}
	r.inFrame = false
	if r.err != nil {
		return r.err
	}
	r.frames++
	return nil
}

// ValidateSegments reports the first segment with a non-finite endpoint or
// a width that is not a positive finite number.
func ValidateSegments(segs []imageview.Segment) error {
	for i, s := range segs {
		if !s.Start.IsFinite() || !s.End.IsFinite() || !(s.Width > 0) || math.IsInf(s.Width, 0) {
			return &imageview.RenderSubmissionError{
				Op:  fmt.Sprintf("polyline segment %d", i),
				Err: imageview.ErrDegenerateSegment,
			}
		}
	}
	return nil
}

func (r *Renderer) begin(op string) bool {
	if !r.inFrame {
		r.fail(op, imageview.ErrNoFrame)
		return false
	}
	return r.err == nil
}

func (r *Renderer) fail(op string, err error) {
	if r.err == nil {
		r.err = &imageview.RenderSubmissionError{Op: op, Err: err}
	}
}
