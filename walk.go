package imageview

import (
	"image/color"
	"math"
)

// Crazy-lines defaults.
const (
	DefaultSegmentCount = 100
	DefaultLineWidth    = 3.0

	// offsetModulus bounds each step of the walk to (-50, 50).
	offsetModulus = 50
)

// DefaultOrigin is where the walk starts each frame.
var DefaultOrigin = Point{X: 400, Y: 300}

// Point is a 2D position in canvas pixels.
type Point struct {
	X, Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// IsFinite reports whether both coordinates are finite.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Segment is one line piece of a path.
type Segment struct {
	Start, End Point
	Color      color.RGBA
	Width      float64
}

// Generate builds a connected random walk of n segments starting at origin.
//
// For every segment the stream is drawn for a colour (red, blue, green; each
// a uint32 truncated to 8 bits) and then for the offset (dx, dy), each an
// int32 draw taken modulo 50 with truncated signed remainder. Segment i
// starts where segment i-1 ended. Generate returns nil for n <= 0.
func Generate(origin Point, stream *Rand32, n int) []Segment {
	if n <= 0 {
		return nil
	}
	segs := make([]Segment, 0, n)
	last := origin
	for range n {
		c := randomColor(stream)
		dx := stream.Int32() % offsetModulus
		dy := stream.Int32() % offsetModulus
		next := last.Add(Point{X: float64(dx), Y: float64(dy)})
		segs = append(segs, Segment{
			Start: last,
			End:   next,
			Color: c,
			Width: DefaultLineWidth,
		})
		last = next
	}
	return segs
}

func randomColor(stream *Rand32) color.RGBA {
	r := uint8(stream.Uint32())
	b := uint8(stream.Uint32())
	g := uint8(stream.Uint32())
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Walker holds the parameters of the per-frame crazy lines.
type Walker struct {
	Origin   Point
	Segments int
	Width    float64
}

// DefaultWalker returns the walk used by the demo: 100 segments of width 3
// starting at (400, 300).
func DefaultWalker() Walker {
	return Walker{
		Origin:   DefaultOrigin,
		Segments: DefaultSegmentCount,
		Width:    DefaultLineWidth,
	}
}

// Path generates a fresh walk from stream. A zero Width keeps the default.
func (w Walker) Path(stream *Rand32) []Segment {
	segs := Generate(w.Origin, stream, w.Segments)
	if w.Width != 0 && w.Width != DefaultLineWidth {
		for i := range segs {
			segs[i].Width = w.Width
		}
	}
	return segs
}
