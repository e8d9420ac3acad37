// Package export writes the canvas into document formats.
package export

import (
	"errors"
	"image"
	"image/color"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// Options configures the PDF export.
type Options struct {
	// PixelSize is the side of one canvas pixel in points.
	PixelSize float64
	Title     string
}

// PDF writes img as a single page PDF sized to the canvas. Each horizontal
// run of identical visible pixels becomes one filled rectangle; transparent
// pixels are left out and partial alpha is kept.
func PDF(w io.Writer, img *image.NRGBA, opts Options) error {
	if img == nil || img.Bounds().Empty() {
		return errors.New("export: empty image")
	}
	px := opts.PixelSize
	if px <= 0 {
		px = 1
	}
	b := img.Bounds()
	width, height := float64(b.Dx())*px, float64(b.Dy())*px

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("pixed", true)
	if opts.Title != "" {
		pdf.SetTitle(opts.Title, true)
	}
	pdf.AddPage()

	alpha := uint8(0xff)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; {
			c := img.NRGBAAt(x, y)
			run := 1
			for x+run < b.Max.X && img.NRGBAAt(x+run, y) == c {
				run++
			}
			if c.A > 0 {
				if c.A != alpha {
					alpha = c.A
					pdf.SetAlpha(float64(alpha)/0xff, "Normal")
				}
				fillRun(pdf, c, float64(x-b.Min.X)*px, float64(y-b.Min.Y)*px, float64(run)*px, px)
			}
			x += run
		}
	}
	return pdf.Output(w)
}

func fillRun(pdf *gofpdf.Fpdf, c color.NRGBA, x, y, w, h float64) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	pdf.Rect(x, y, w, h, "F")
}
