package pixed

import (
	"image"
	"image/color"

	"github.com/pixelkit/pixed/utils"
)

// ApplyPoint stamps the mask centered on (x, y) with color c and returns
// the number of pixels written. Offsets falling outside the surface are clipped.
func ApplyPoint(s *Surface, x, y int, c color.NRGBA, m Mask) int {
	n := 0
	for _, o := range m.offsets {
		px, py := x+o.DX, y+o.DY
		if !s.In(px, py) {
			continue
		}
		s.Set(px, py, c)
		n++
	}
	return n
}

// ApplyLine stamps the mask at every integer point of the segment
// (x1, y1)-(x2, y2) and returns the number of pixel writes.
func ApplyLine(s *Surface, x1, y1, x2, y2 int, c color.NRGBA, m Mask) int {
	n := 0
	walkLine(x1, y1, x2, y2, func(x, y int) {
		n += ApplyPoint(s, x, y, c, m)
	})
	return n
}

// LinePoints returns the integer points of the segment (x1, y1)-(x2, y2)
// in walking order, both endpoints included.
func LinePoints(x1, y1, x2, y2 int) []image.Point {
	pts := make([]image.Point, 0, utils.Max(utils.Abs(x2-x1), utils.Abs(y2-y1))+1)
	walkLine(x1, y1, x2, y2, func(x, y int) {
		pts = append(pts, image.Pt(x, y))
	})
	return pts
}

// walkLine is Bresenham's algorithm generalised to every octant.
func walkLine(x1, y1, x2, y2 int, fn func(x, y int)) {
	dx := utils.Abs(x2 - x1)
	dy := -utils.Abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx + dy

	x, y := x1, y1
	for {
		fn(x, y)
		if x == x2 && y == y2 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// strokePhase is the state of the pixel-perfect filter.
type strokePhase int

const (
	phaseIdle strokePhase = iota
	phaseHasLast
	phasePendingAxis
)

// StrokeState is the pixel-perfect corner suppression filter of one stroke.
//
// Candidate pixels are pushed in drawing order. An axis aligned unit step is
// held back as pending; if the next step from the anchor turns out to be
// diagonal the pending pixel is dropped, which turns an L shaped corner into
// a clean diagonal. The anchor only moves on pixels committed directly, so
// the pending pixel is always an axis unit step away from it.
type StrokeState struct {
	bounds    image.Rectangle
	phase     strokePhase
	last      image.Point
	pending   image.Point
	committed []image.Point
}

// NewStrokeState returns an idle filter accepting candidates inside bounds.
func NewStrokeState(bounds image.Rectangle) *StrokeState {
	return &StrokeState{bounds: bounds}
}

// Reset clears the filter for a new stroke over bounds.
func (st *StrokeState) Reset(bounds image.Rectangle) {
	st.bounds = bounds
	st.phase = phaseIdle
	st.last = image.Point{}
	st.pending = image.Point{}
	st.committed = st.committed[:0]
}

// Push feeds one candidate pixel and returns the pixels it committed,
// in commit order.
func (st *StrokeState) Push(x, y int) []image.Point {
	p := image.Pt(x, y)
	if !p.In(st.bounds) {
		return nil
	}
	if st.phase == phaseIdle {
		return st.anchor(nil, p)
	}
	if p == st.last {
		return nil
	}

	d := p.Sub(st.last)
	adx, ady := utils.Abs(d.X), utils.Abs(d.Y)

	var out []image.Point
	switch {
	case adx > 1 || ady > 1:
		if st.phase == phasePendingAxis {
			out = st.commit(out, st.pending)
		}
		return st.anchor(out, p)
	case adx == 1 && ady == 1:
		// The diagonal cancels the buffered axis step.
		return st.anchor(out, p)
	default:
		if st.phase == phasePendingAxis && st.pending != p {
			out = st.commit(out, st.pending)
		}
		st.pending = p
		st.phase = phasePendingAxis
		return out
	}
}

// Flush commits the pending pixel, if any. It is called on pointer release.
func (st *StrokeState) Flush() []image.Point {
	if st.phase != phasePendingAxis {
		return nil
	}
	st.phase = phaseHasLast
	return st.commit(nil, st.pending)
}

// Committed returns a copy of every pixel committed during this stroke.
func (st *StrokeState) Committed() []image.Point {
	out := make([]image.Point, len(st.committed))
	copy(out, st.committed)
	return out
}

// Pending reports the pending pixel, if one is held back.
func (st *StrokeState) Pending() (image.Point, bool) {
	return st.pending, st.phase == phasePendingAxis
}

// anchor commits p directly, drops any pending pixel and moves the anchor.
func (st *StrokeState) anchor(out []image.Point, p image.Point) []image.Point {
	st.last = p
	st.phase = phaseHasLast
	return st.commit(out, p)
}

func (st *StrokeState) commit(out []image.Point, p image.Point) []image.Point {
	st.committed = append(st.committed, p)
	return append(out, p)
}
