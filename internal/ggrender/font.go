package ggrender

import (
	"bytes"
	"fmt"

	gofont "github.com/go-text/typesetting/font"
	"github.com/gogpu/gg/text"
)

// Font is a parsed font that hands out faces by size.
type Font struct {
	source *text.FontSource
	parsed *gofont.Font
	faces  map[float64]text.Face
}

// ParseFont parses TrueType or OpenType data.
//
// The data is checked with go-text's parser before gg builds its font
// source, so malformed files fail at load time rather than while drawing.
func ParseFont(data []byte) (*Font, error) {
	face, err := gofont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	source, err := text.NewFontSource(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &Font{
		source: source,
		parsed: face.Font,
		faces:  make(map[float64]text.Face),
	}, nil
}

// Name returns the font's name as reported by its name table.
func (f *Font) Name() string { return f.source.Name() }

// UnitsPerEm returns the font's design units per em.
func (f *Font) UnitsPerEm() uint16 { return f.parsed.Upem() }

// Face returns the face at size, creating it on first use.
func (f *Font) Face(size float64) text.Face {
	face, ok := f.faces[size]
	if !ok {
		face = f.source.Face(size)
		f.faces[size] = face
	}
	return face
}

// MissingGlyphs returns the distinct runes of s the font has no glyph for.
// Whitespace and control characters are ignored.
func (f *Font) MissingGlyphs(s string) []rune {
	var missing []rune
	seen := make(map[rune]bool)
	for _, r := range s {
		if r <= ' ' || seen[r] {
			continue
		}
		seen[r] = true
		if _, ok := f.parsed.NominalGlyph(r); !ok {
			missing = append(missing, r)
		}
	}
	return missing
}

// Close releases the font source.
func (f *Font) Close() error {
	clear(f.faces)
	return f.source.Close()
}
