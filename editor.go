package pixed

import (
	"image"
	"image/color"

	"github.com/google/uuid"
	"github.com/pixelkit/pixed/utils"
)

// BrushSettings describes the active brush.
type BrushSettings struct {
	Size         int
	Shape        Shape
	PixelPerfect bool
}

// Option configures an Editor.
type Option func(*options)

type options struct {
	historyDepth  int
	maskCacheSize int
	sampler       ColorSampler
}

// WithHistoryDepth sets the maximum number of undo snapshots.
func WithHistoryDepth(n int) Option {
	return func(o *options) { o.historyDepth = n }
}

// WithMaskCacheSize sets the capacity of the brush mask cache.
func WithMaskCacheSize(n int) Option {
	return func(o *options) { o.maskCacheSize = n }
}

// WithSampler sets the color sampler used by the eyedropper.
// By default the eyedropper reads the editor's own surface.
func WithSampler(s ColorSampler) Option {
	return func(o *options) { o.sampler = s }
}

type observer struct {
	fn      func()
	removed bool
}

// Editor owns a surface with its history, symmetry and brush state and
// turns tool input into pixel writes. It is not safe for concurrent use.
type Editor struct {
	id       uuid.UUID
	surface  *Surface
	history  *History
	symmetry *Symmetry
	masks    *MaskCache
	stroke   *StrokeState
	sampler  ColorSampler

	tool  Tool
	brush BrushSettings
	color color.NRGBA

	drawing bool
	last    image.Point

	observers []*observer
}

// NewEditor creates an editor over a transparent width×height surface.
// The history starts with the blank surface as its baseline.
func NewEditor(width, height int, opts ...Option) *Editor {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	s := NewSurface(width, height)
	e := &Editor{
		id:       uuid.New(),
		surface:  s,
		history:  NewHistory(o.historyDepth),
		symmetry: NewSymmetry(s.Width(), s.Height()),
		masks:    NewMaskCache(o.maskCacheSize),
		stroke:   NewStrokeState(s.Bounds()),
		sampler:  o.sampler,
		tool:     Brush,
		brush:    BrushSettings{Size: 1, Shape: Circle},
		color:    color.NRGBA{A: 0xff},
	}
	if e.sampler == nil {
		e.sampler = surfaceSampler{s: s}
	}
	e.history.Push(s)

	Logger().Debug("editor created", "id", e.id, "width", s.Width(), "height", s.Height())
	return e
}

// ID returns the unique identifier of the editor session.
func (e *Editor) ID() uuid.UUID { return e.id }

// Surface gives read access to the edited surface.
func (e *Editor) Surface() *Surface { return e.surface }

// Image returns a copy of the surface as an *image.NRGBA.
func (e *Editor) Image() *image.NRGBA { return e.surface.Image() }

// Symmetry returns the editor's mirror configuration.
func (e *Editor) Symmetry() *Symmetry { return e.symmetry }

// SetTool selects the active tool. Unknown tools are ignored.
func (e *Editor) SetTool(t Tool) {
	if !t.valid() {
		return
	}
	e.tool = t
}

// Tool returns the active tool.
func (e *Editor) Tool() Tool { return e.tool }

// SetBrush sets the brush size, shape and pixel-perfect mode.
// The size is clamped to [MinBrushSize, MaxBrushSize].
func (e *Editor) SetBrush(size int, shape Shape, pixelPerfect bool) {
	e.brush = BrushSettings{
		Size:         utils.Clamp(size, MinBrushSize, MaxBrushSize),
		Shape:        shape,
		PixelPerfect: pixelPerfect,
	}
}

// Brush returns the active brush settings.
func (e *Editor) Brush() BrushSettings { return e.brush }

// SetColor sets the drawing color.
func (e *Editor) SetColor(c color.NRGBA) { e.color = c }

// Color returns the drawing color.
func (e *Editor) Color() color.NRGBA { return e.color }

// OnChange registers fn to be called after every operation that changes
// the visible buffer. The returned function unregisters it.
func (e *Editor) OnChange(fn func()) (remove func()) {
	ob := &observer{fn: fn}
	e.observers = append(e.observers, ob)
	return func() {
		for i, o := range e.observers {
			if o == ob {
				ob.removed = true
				e.observers = append(e.observers[:i], e.observers[i+1:]...)
				return
			}
		}
	}
}

// notify runs over a snapshot of the observers, so callbacks may
// unregister themselves or each other.
func (e *Editor) notify() {
	obs := make([]*observer, len(e.observers))
	copy(obs, e.observers)
	for _, o := range obs {
		if !o.removed {
			o.fn()
		}
	}
}

func (e *Editor) pixelPerfect() bool {
	return e.brush.PixelPerfect && e.brush.Size == 1
}

// PointerDown starts a stroke for the drawing tools, fills for the bucket
// and samples for the eyedropper. A stroke still in progress is finished first.
func (e *Editor) PointerDown(x, y int) {
	if e.drawing {
		e.PointerUp()
	}
	b := behaviors[e.tool]
	if !b.press(e, x, y) {
		return
	}

	e.drawing = true
	e.last = image.Pt(x, y)
	e.stroke.Reset(e.surface.Bounds())

	c := b.ink(e)
	var n int
	if e.pixelPerfect() {
		n = e.stamp(e.stroke.Push(x, y), c)
	} else {
		n = e.stamp([]image.Point{e.last}, c)
	}
	if n > 0 {
		e.notify()
	}
}

// PointerMove continues the stroke from the previous pointer position to (x, y).
func (e *Editor) PointerMove(x, y int) {
	if !e.drawing {
		return
	}
	cur := image.Pt(x, y)
	c := behaviors[e.tool].ink(e)
	mask := e.masks.MaskFor(e.brush.Size, e.brush.Shape)

	n := 0
	if e.pixelPerfect() {
		pts := LinePoints(e.last.X, e.last.Y, cur.X, cur.Y)
		for _, p := range pts[1:] {
			n += e.stamp(e.stroke.Push(p.X, p.Y), c)
		}
	} else {
		for _, seg := range e.symmetry.orbitPairs(e.last.X, e.last.Y, cur.X, cur.Y) {
			n += ApplyLine(e.surface, seg[0].X, seg[0].Y, seg[1].X, seg[1].Y, c, mask)
		}
	}
	e.last = cur
	if n > 0 {
		e.notify()
	}
}

// PointerUp ends the stroke, commits the pending pixel-perfect pixel and
// records the result in the history.
func (e *Editor) PointerUp() {
	if !e.drawing {
		return
	}
	if e.pixelPerfect() {
		e.stamp(e.stroke.Flush(), behaviors[e.tool].ink(e))
	}
	e.drawing = false
	e.history.Push(e.surface)
	e.notify()
}

// stamp applies the brush at every pixel of pts and of their mirror images.
func (e *Editor) stamp(pts []image.Point, c color.NRGBA) int {
	mask := e.masks.MaskFor(e.brush.Size, e.brush.Shape)
	n := 0
	for _, p := range pts {
		for _, o := range e.symmetry.Orbit(p.X, p.Y) {
			n += ApplyPoint(e.surface, o.X, o.Y, c, mask)
		}
	}
	return n
}

// FillAt flood fills the region around (x, y) with the drawing color and
// returns the number of pixels changed. A fill changing nothing is not
// recorded in the history.
func (e *Editor) FillAt(x, y int) int {
	n := FloodFill(e.surface, x, y, e.color)
	Logger().Debug("flood fill", "id", e.id, "x", x, "y", y, "changed", n)
	if n == 0 {
		return 0
	}
	e.history.Push(e.surface)
	e.notify()
	return n
}

// Clear makes every pixel transparent.
func (e *Editor) Clear() {
	e.drawing = false
	e.surface.Fill(Transparent)
	e.history.Push(e.surface)
	e.notify()
}

// Resize replaces the surface with a transparent one of the clamped
// dimensions. The history restarts from the new blank baseline.
func (e *Editor) Resize(width, height int) {
	e.surface.Resize(width, height)
	Logger().Debug("resize", "id", e.id, "width", e.surface.Width(), "height", e.surface.Height())
	e.replaced()
}

// LoadBuffer replaces the surface content with a dense RGBA buffer. It
// returns false and changes nothing when the buffer is rejected.
func (e *Editor) LoadBuffer(pix []uint8, width, height int) bool {
	if !e.surface.Load(pix, width, height) {
		Logger().Warn("load rejected", "id", e.id, "width", width, "height", height, "len", len(pix))
		return false
	}
	e.replaced()
	return true
}

// LoadImage replaces the surface content with img.
func (e *Editor) LoadImage(img image.Image) bool {
	if !e.surface.LoadImage(img) {
		b := img.Bounds()
		Logger().Warn("load rejected", "id", e.id, "width", b.Dx(), "height", b.Dy())
		return false
	}
	e.replaced()
	return true
}

// replaced resets the per-surface state after a resize or load.
func (e *Editor) replaced() {
	e.drawing = false
	e.symmetry.SetCanvasSize(e.surface.Width(), e.surface.Height())
	e.history.Clear()
	e.history.Push(e.surface)
	e.notify()
}

// Undo restores the previous snapshot. It reports false when only the
// baseline remains.
func (e *Editor) Undo() bool {
	return e.restore(e.history.Undo())
}

// Redo restores the most recently undone snapshot.
func (e *Editor) Redo() bool {
	return e.restore(e.history.Redo())
}

func (e *Editor) restore(snap *Snapshot) bool {
	if snap == nil {
		return false
	}
	e.drawing = false
	e.surface.Load(snap.Pix, snap.Width, snap.Height)
	e.symmetry.SetCanvasSize(snap.Width, snap.Height)
	e.notify()
	return true
}

// CanUndo reports whether Undo would change the surface.
func (e *Editor) CanUndo() bool { return e.history.CanUndo() }

// CanRedo reports whether Redo would change the surface.
func (e *Editor) CanRedo() bool { return e.history.CanRedo() }
