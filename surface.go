package pixed

import (
	"errors"
	"image"
	"image/color"

	"github.com/pixelkit/pixed/utils"
)

// MaxDimension is the largest width or height a surface accepts.
const MaxDimension = 2048

// ErrOutOfBounds is returned by strict reads outside the surface.
var ErrOutOfBounds = errors.New("pixel coordinates out of bounds")

// Transparent is the fully transparent color, used by the eraser and
// returned for reads outside the surface.
var Transparent = color.NRGBA{}

// Surface is a dense width×height grid of non-premultiplied RGBA pixels.
// Writes outside the grid are dropped and reads outside it return Transparent.
type Surface struct {
	width  int
	height int
	pix    []uint8 // 4 bytes per pixel, row major
}

// NewSurface creates a transparent surface. The dimensions are clamped to [1, MaxDimension].
func NewSurface(width, height int) *Surface {
	s := &Surface{}
	s.Resize(width, height)
	return s
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.width }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.height }

// Bounds returns the surface rectangle anchored at the origin.
func (s *Surface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.width, s.height)
}

// In reports whether (x, y) addresses a pixel of the surface.
func (s *Surface) In(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

func (s *Surface) offset(x, y int) int {
	return (y*s.width + x) * 4
}

// Get returns the color at (x, y), or Transparent outside the surface.
func (s *Surface) Get(x, y int) color.NRGBA {
	if !s.In(x, y) {
		return Transparent
	}
	i := s.offset(x, y)
	p := s.pix[i : i+4 : i+4]
	return color.NRGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
}

// GetStrict returns the color at (x, y) or ErrOutOfBounds.
func (s *Surface) GetStrict(x, y int) (color.NRGBA, error) {
	if !s.In(x, y) {
		return Transparent, ErrOutOfBounds
	}
	return s.Get(x, y), nil
}

// Set writes c at (x, y). It is a no-op outside the surface.
func (s *Surface) Set(x, y int, c color.NRGBA) {
	if !s.In(x, y) {
		return
	}
	i := s.offset(x, y)
	p := s.pix[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
}

// Fill sets every pixel to c.
func (s *Surface) Fill(c color.NRGBA) {
	for i := 0; i < len(s.pix); i += 4 {
		s.pix[i+0] = c.R
		s.pix[i+1] = c.G
		s.pix[i+2] = c.B
		s.pix[i+3] = c.A
	}
}

// Resize replaces the buffer with a new transparent one of the clamped
// dimensions. Prior content is discarded.
func (s *Surface) Resize(width, height int) {
	s.width = utils.Clamp(width, 1, MaxDimension)
	s.height = utils.Clamp(height, 1, MaxDimension)
	s.pix = make([]uint8, s.width*s.height*4)
}

// Load replaces the surface content with pix, a dense RGBA buffer of
// width×height pixels. It returns false and leaves the surface untouched
// when the dimensions are out of range or the buffer has the wrong length.
func (s *Surface) Load(pix []uint8, width, height int) bool {
	if width < 1 || height < 1 || width > MaxDimension || height > MaxDimension {
		return false
	}
	if len(pix) != width*height*4 {
		return false
	}
	buf := make([]uint8, len(pix))
	copy(buf, pix)

	s.width, s.height, s.pix = width, height, buf
	return true
}

// LoadImage converts img to non-premultiplied RGBA and loads it.
func (s *Surface) LoadImage(img image.Image) bool {
	b := img.Bounds()
	if b.Dx() < 1 || b.Dy() < 1 || b.Dx() > MaxDimension || b.Dy() > MaxDimension {
		return false
	}
	src := imgToNRGBA(img)
	return s.Load(src.Pix, b.Dx(), b.Dy())
}

// Pix returns a copy of the raw pixel buffer.
func (s *Surface) Pix() []uint8 {
	buf := make([]uint8, len(s.pix))
	copy(buf, s.pix)
	return buf
}

// Image returns a copy of the surface as an *image.NRGBA.
func (s *Surface) Image() *image.NRGBA {
	img := image.NewNRGBA(s.Bounds())
	copy(img.Pix, s.pix)
	return img
}

// Clone returns an independent copy of the surface.
func (s *Surface) Clone() *Surface {
	return &Surface{width: s.width, height: s.height, pix: s.Pix()}
}
