package imageview

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrDegenerateSegment is returned when a polyline segment has a
	// non-finite endpoint or a non-positive width.
	ErrDegenerateSegment = errors.New("imageview: degenerate segment")

	// ErrNoFrame is returned when drawing is attempted outside
	// BeginFrame/EndFrame.
	ErrNoFrame = errors.New("imageview: no frame in progress")
)

// LoadErrorKind classifies a ResourceLoadError.
type LoadErrorKind int

const (
	// NotFound means no resource directory contains the path.
	NotFound LoadErrorKind = iota

	// Decode means the file was found but could not be parsed.
	Decode
)

func (k LoadErrorKind) String() string {
	switch k {
	case NotFound:
		return "not found"
	case Decode:
		return "decode error"
	default:
		return fmt.Sprintf("LoadErrorKind(%d)", int(k))
	}
}

// ResourceLoadError is returned when an asset is missing or corrupt.
type ResourceLoadError struct {
	Kind LoadErrorKind
	Path string
	Err  error
}

func (e *ResourceLoadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("imageview: load %s: %s", e.Path, e.Kind)
	}
	return fmt.Sprintf("imageview: load %s: %s: %v", e.Path, e.Kind, e.Err)
}

func (e *ResourceLoadError) Unwrap() error { return e.Err }

// RenderSubmissionError is returned when the renderer rejects a draw.
type RenderSubmissionError struct {
	Op  string
	Err error
}

func (e *RenderSubmissionError) Error() string {
	return fmt.Sprintf("imageview: %s: %v", e.Op, e.Err)
}

func (e *RenderSubmissionError) Unwrap() error { return e.Err }
