/*
Package pixed is the raster engine of a pixel art editor. It holds a fixed size
RGBA drawing surface and applies brush, eraser, bucket fill and eyedropper
operations on it, optionally mirrored across up to eight symmetry lines, with
a bounded undo/redo history.

The package provides a command line interface which replays drawing scripts and
exports the result as PNG, JPEG, BMP or PDF. To check the supported commands type:

	$ pixed --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"fmt"
		"image/color"

		"github.com/pixelkit/pixed"
	)

	func main() {
		e := pixed.NewEditor(32, 32)
		e.SetColor(color.NRGBA{R: 255, A: 255})
		e.SetBrush(3, pixed.Circle, false)
		e.Symmetry().ApplyPreset(pixed.PresetCross)

		e.PointerDown(4, 4)
		e.PointerMove(12, 9)
		e.PointerUp()

		fmt.Println(e.CanUndo())
	}

Scripts can be rendered directly through a Processor:

	p := &pixed.Processor{Width: 32, Height: 32, Scale: 8}
	if err := p.Process(in, out); err != nil {
		fmt.Printf("Error rendering the image: %s", err.Error())
	}
*/
package pixed
