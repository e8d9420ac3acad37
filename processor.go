package pixed

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/pixelkit/pixed/utils"
)

// DefaultCanvasSize is the width and height of a new canvas when the
// processor does not set them.
const DefaultCanvasSize = 64

// Processor options
type Processor struct {
	Width        int
	Height       int
	Scale        int
	HistoryDepth int
	Format       string
	Title        string
	Background   color.NRGBA
	Spinner      *utils.Spinner
	Preview      bool

	// Frames receives a copy of the surface after every change while a
	// script is replayed. The newest frame replaces an unread one.
	Frames chan *image.NRGBA
}

// Process replays the drawing script read from r and encodes the resulting
// image into w.
func (p *Processor) Process(r io.Reader, w io.Writer) error {
	script, err := ParseScript(r)
	if err != nil {
		return err
	}
	e, err := p.Render(script)
	if err != nil {
		return err
	}

	title := p.Title
	if title == "" {
		title = fmt.Sprintf("pixed %s", e.ID())
	}
	return encodeImg(p, w, e.Image(), title)
}

// newEditor creates an editor sized and configured by the processor options.
func (p *Processor) newEditor() *Editor {
	width, height := p.Width, p.Height
	if width <= 0 {
		width = DefaultCanvasSize
	}
	if height <= 0 {
		height = DefaultCanvasSize
	}
	return NewEditor(width, height, WithHistoryDepth(p.HistoryDepth))
}

// publish hands img to the preview without ever blocking the replay.
func (p *Processor) publish(img *image.NRGBA) {
	select {
	case p.Frames <- img:
	default:
		select {
		case <-p.Frames:
		default:
		}
		select {
		case p.Frames <- img:
		default:
		}
	}
}
