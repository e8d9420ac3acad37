// Package imop implements the Porter-Duff composition operations
// used for mixing a graphic element with its backdrop.
// The image/draw core package implements only source-over-destination and source,
// this package covers the remaining operations.
//
// pixed uses it to flatten the transparent drawing surface onto an opaque
// background when the output format cannot carry an alpha channel.
package imop

import (
	"image"
	"image/color"
	"math"

	"github.com/pixelkit/pixed/utils"
)

// Composite operations.
const (
	Clear   = "clear"
	Copy    = "copy"
	Dst     = "dst"
	SrcOver = "src_over"
	DstOver = "dst_over"
	SrcIn   = "src_in"
	DstIn   = "dst_in"
	SrcOut  = "src_out"
	DstOut  = "dst_out"
	SrcAtop = "src_atop"
	DstAtop = "dst_atop"
	Xor     = "xor"
)

// Bitmap holds the result of a composition.
type Bitmap struct {
	Img *image.NRGBA
}

// Composite holds the currently active composite operation.
type Composite struct {
	current string
	ops     []string
}

// NewBitmap initializes a new Bitmap.
func NewBitmap(rect image.Rectangle) *Bitmap {
	return &Bitmap{
		Img: image.NewNRGBA(rect),
	}
}

// InitOp initializes a new composition operation, source-over being the default one.
func InitOp() *Composite {
	return &Composite{
		current: SrcOver,
		ops: []string{
			Clear,
			Copy,
			Dst,
			SrcOver,
			DstOver,
			SrcIn,
			DstIn,
			SrcOut,
			DstOut,
			SrcAtop,
			DstAtop,
			Xor,
		},
	}
}

// Set changes the current composition operation. Unknown operations are ignored.
func (op *Composite) Set(cop string) {
	if utils.Contains(op.ops, cop) {
		op.current = cop
	}
}

// Get returns the active composition operation.
func (op *Composite) Get() string {
	return op.current
}

// factors returns the Porter-Duff source and destination weights (Fa, Fb)
// for the given source and backdrop alphas.
func (op *Composite) factors(as, ab float64) (float64, float64) {
	switch op.current {
	case Clear:
		return 0, 0
	case Copy:
		return 1, 0
	case Dst:
		return 0, 1
	case SrcOver:
		return 1, 1 - as
	case DstOver:
		return 1 - ab, 1
	case SrcIn:
		return ab, 0
	case DstIn:
		return 0, as
	case SrcOut:
		return 1 - ab, 0
	case DstOut:
		return 0, 1 - as
	case SrcAtop:
		return ab, 1 - as
	case DstAtop:
		return 1 - ab, as
	case Xor:
		return 1 - ab, 1 - as
	}
	return 1, 1 - as
}

// Draw composites src over dst into the bitmap. The three images are expected
// to share the same bounds. A nil bitmap is allocated with the source bounds.
func (op *Composite) Draw(bitmap *Bitmap, src, dst *image.NRGBA) *Bitmap {
	if bitmap == nil {
		bitmap = NewBitmap(src.Bounds())
	}
	b := src.Bounds()

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			s := src.NRGBAAt(x, y)
			d := dst.NRGBAAt(x, y)

			as := float64(s.A) / 255
			ab := float64(d.A) / 255
			fa, fb := op.factors(as, ab)

			// Premultiplied result, converted back to straight alpha below.
			ao := as*fa + ab*fb
			if ao <= 0 {
				bitmap.Img.SetNRGBA(x, y, color.NRGBA{})
				continue
			}
			mix := func(cs, cb uint8) uint8 {
				v := (as*fa*float64(cs) + ab*fb*float64(cb)) / ao
				return uint8(math.Round(utils.Clamp(v, 0, 255)))
			}
			bitmap.Img.SetNRGBA(x, y, color.NRGBA{
				R: mix(s.R, d.R),
				G: mix(s.G, d.G),
				B: mix(s.B, d.B),
				A: uint8(math.Round(utils.Clamp(ao*255, 0, 255))),
			})
		}
	}
	return bitmap
}
