// Package preview shows the canvas in a Gio window while a drawing script
// is replayed. The window only reads the frames it receives.
package preview

import (
	"image"
	"image/color"
	"math"

	"gioui.org/app"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
)

// Window size limits in dp.
const (
	MaxScreenX = 1366
	MaxScreenY = 768
	minScreen  = 256
)

// Checkerboard colors drawn behind transparent pixels.
var (
	lightCell = color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	darkCell  = color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
)

// windowSize scales the canvas up by an integer factor while it fits the
// screen limits, and down keeping the aspect ratio when it does not.
func windowSize(width, height int) (float64, float64) {
	w, h := float64(width), float64(height)
	if w <= 0 || h <= 0 {
		return minScreen, minScreen
	}
	if w > MaxScreenX || h > MaxScreenY {
		ratio := math.Min(MaxScreenX/w, MaxScreenY/h)
		return w * ratio, h * ratio
	}
	scale := math.Floor(math.Min(MaxScreenX/w, MaxScreenY/h))
	scale = math.Min(scale, math.Ceil(minScreen/math.Min(w, h)))
	if scale < 1 {
		scale = 1
	}
	return w * scale, h * scale
}

// Show opens a window titled title, sized for a width×height canvas, and
// displays the latest image received on frames until the window is closed.
// It must run outside the main goroutine, which belongs to app.Main.
func Show(title string, width, height int, frames <-chan *image.NRGBA) error {
	ww, wh := windowSize(width, height)
	w := app.NewWindow(
		app.Title(title),
		app.Size(unit.Dp(float32(ww)), unit.Dp(float32(wh))),
	)
	return run(w, frames)
}

// run the Gio event loop until a DestroyEvent is received.
func run(w *app.Window, frames <-chan *image.NRGBA) error {
	var (
		ops op.Ops
		img *image.NRGBA
	)
	for {
		select {
		case e := <-w.Events():
			switch e := e.(type) {
			case system.FrameEvent:
				gtx := layout.NewContext(&ops, e)
				draw(gtx, img)
				e.Frame(gtx.Ops)
			case system.DestroyEvent:
				return e.Err
			}
		case f, ok := <-frames:
			if !ok {
				frames = nil
				continue
			}
			img = f
			w.Invalidate()
		}
	}
}

func draw(gtx layout.Context, img *image.NRGBA) layout.Dimensions {
	paint.Fill(gtx.Ops, lightCell)
	if img == nil {
		return layout.Dimensions{Size: gtx.Constraints.Max}
	}

	return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		b := img.Bounds()
		cell := math.Min(
			float64(gtx.Constraints.Max.X)/float64(b.Dx()),
			float64(gtx.Constraints.Max.Y)/float64(b.Dy()),
		)
		size := image.Pt(int(cell*float64(b.Dx())), int(cell*float64(b.Dy())))
		checkerboard(gtx.Ops, size)

		src := paint.NewImageOp(img)
		src.Filter = paint.FilterNearest
		gtx.Constraints = layout.Exact(size)
		return widget.Image{
			Src:   src,
			Fit:   widget.Contain,
			Scale: 1 / gtx.Metric.PxPerDp,
		}.Layout(gtx)
	})
}

// checkerboard paints the transparency grid behind the canvas.
func checkerboard(ops *op.Ops, size image.Point) {
	const cell = 8
	for y := 0; y < size.Y; y += cell {
		for x := 0; x < size.X; x += cell {
			if (x/cell+y/cell)%2 == 0 {
				continue
			}
			r := image.Rect(x, y, x+cell, y+cell).Intersect(image.Rectangle{Max: size})
			paint.FillShape(ops, darkCell, clip.Rect(r).Op())
		}
	}
}
