// Package assets implements imageview.Loader: virtual paths are resolved by
// a resources.FS, images and fonts are decoded for ggrender and sounds for
// the audio package.
package assets

import (
	"github.com/gogpu/imageview"
	"github.com/gogpu/imageview/internal/audio"
	"github.com/gogpu/imageview/internal/ggrender"
	"github.com/gogpu/imageview/internal/resources"
)

// Loader loads assets from a resources.FS.
type Loader struct {
	fsys       *resources.FS
	sampleRate int
	fonts      []*ggrender.Font
}

var _ imageview.Loader = (*Loader)(nil)

// New returns a Loader reading from fsys. Sounds are test-decoded at
// sampleRate.
func New(fsys *resources.FS, sampleRate int) *Loader {
	if sampleRate <= 0 {
		sampleRate = audio.DefaultSampleRate
	}
	return &Loader{fsys: fsys, sampleRate: sampleRate}
}

// LoadImage loads and decodes an image.
func (l *Loader) LoadImage(path string) (imageview.ImageHandle, error) {
	data, err := l.fsys.Load(path)
	if err != nil {
		return nil, err
	}
	img, err := ggrender.DecodeImage(data)
	if err != nil {
		return nil, decodeError(path, err)
	}
	return img, nil
}

// LoadFont loads and parses a TrueType or OpenType font.
func (l *Loader) LoadFont(path string) (imageview.FontHandle, error) {
	data, err := l.fsys.Load(path)
	if err != nil {
		return nil, err
	}
	f, err := ggrender.ParseFont(data)
	if err != nil {
		return nil, decodeError(path, err)
	}
	l.fonts = append(l.fonts, f)
	return f, nil
}

// LoadSound loads and test-decodes a sound.
func (l *Loader) LoadSound(path string) (imageview.SoundHandle, error) {
	data, err := l.fsys.Load(path)
	if err != nil {
		return nil, err
	}
	s, err := audio.NewSound(path, data, l.sampleRate)
	if err != nil {
		return nil, decodeError(path, err)
	}
	return s, nil
}

// Close releases every font loaded through l.
func (l *Loader) Close() error {
	var first error
	for _, f := range l.fonts {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
	}
	l.fonts = nil
	return first
}

func decodeError(path string, err error) error {
	return &imageview.ResourceLoadError{Kind: imageview.Decode, Path: path, Err: err}
}
