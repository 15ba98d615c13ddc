package ggrender

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	// Decoders for image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/cache"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// tintCacheCapacity is the per-shard capacity of the tint cache. 16 shards
// of 16 entries hold every grey level of the brightness animation.
const tintCacheCapacity = 16

var opaqueWhite = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Image is a decoded image ready to be drawn.
type Image struct {
	src    *image.NRGBA
	format string
	base   *gg.ImageBuf
	tints  *cache.ShardedCache[uint64, *gg.ImageBuf]
}

// DecodeImage decodes PNG, JPEG, GIF, BMP, TIFF or WebP data.
func DecodeImage(data []byte) (*Image, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return NewImage(img, format), nil
}

// NewImage wraps an already decoded image.
func NewImage(img image.Image, format string) *Image {
	b := img.Bounds()
	src := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(src, src.Bounds(), img, b.Min, xdraw.Src)
	return &Image{
		src:    src,
		format: format,
		base:   gg.ImageBufFromImage(src),
		tints:  cache.NewSharded[uint64, *gg.ImageBuf](tintCacheCapacity, cache.Uint64Hasher),
	}
}

// Size returns the image dimensions.
func (i *Image) Size() (width, height int) {
	return i.src.Rect.Dx(), i.src.Rect.Dy()
}

// Format returns the name of the codec that decoded the image.
func (i *Image) Format() string { return i.format }

// Tinted returns the image with every channel multiplied by tint.
// Opaque white returns the untinted buffer.
func (i *Image) Tinted(tint color.RGBA) *gg.ImageBuf {
	if tint == opaqueWhite {
		return i.base
	}
	key := uint64(tint.R) | uint64(tint.G)<<8 | uint64(tint.B)<<16 | uint64(tint.A)<<24
	return i.tints.GetOrCreate(key, func() *gg.ImageBuf {
		return gg.ImageBufFromImage(Tint(i.src, tint))
	})
}

// CachedTints returns the number of tinted variants held.
func (i *Image) CachedTints() int { return i.tints.Len() }

// Tint multiplies each channel of src by the matching channel of c.
func Tint(src *image.NRGBA, c color.RGBA) *image.NRGBA {
	dst := image.NewNRGBA(src.Rect)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	for y := 0; y < h; y++ {
		s := src.Pix[y*src.Stride : y*src.Stride+w*4]
		d := dst.Pix[y*dst.Stride : y*dst.Stride+w*4]
		for x := 0; x < len(s); x += 4 {
			d[x+0] = mul8(s[x+0], c.R)
			d[x+1] = mul8(s[x+1], c.G)
			d[x+2] = mul8(s[x+2], c.B)
			d[x+3] = mul8(s[x+3], c.A)
		}
	}
	return dst
}

// mul8 returns a*b/255 rounded.
func mul8(a, b uint8) uint8 {
	return uint8((uint16(a)*uint16(b) + 127) / 255)
}
