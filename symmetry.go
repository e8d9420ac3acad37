package pixed

import (
	"fmt"
	"image"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
)

// MaxLines is the largest number of mirror lines a Symmetry holds.
const MaxLines = 8

// Line is a mirror axis through the center (CX, CY). Angle is in degrees,
// 0 being the vertical axis.
type Line struct {
	CX, CY  float64
	Angle   float64
	Enabled bool
}

// SetAngle sets the line angle normalised to [0, 360).
func (l *Line) SetAngle(deg float64) {
	l.Angle = normalizeAngle(deg)
}

func (l Line) normal() r2.Vec {
	rad := l.Angle * math.Pi / 180
	return r2.Vec{X: math.Cos(rad), Y: math.Sin(rad)}
}

// Reflect mirrors p across the line: p - 2dn, where n is the line's unit
// normal and d the signed distance of p from the line.
func (l Line) Reflect(p r2.Vec) r2.Vec {
	c := r2.Vec{X: l.CX, Y: l.CY}
	n := l.normal()
	d := r2.Dot(r2.Sub(p, c), n)
	return r2.Sub(p, r2.Scale(2*d, n))
}

func normalizeAngle(deg float64) float64 {
	a := math.Mod(deg, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a = 0
	}
	return a
}

// Preset is a predefined arrangement of mirror lines.
type Preset int

const (
	PresetNone Preset = iota
	PresetVertical
	PresetHorizontal
	PresetCross
	PresetX
	PresetStar
)

var presetAngles = map[Preset][]float64{
	PresetNone:       nil,
	PresetVertical:   {0},
	PresetHorizontal: {90},
	PresetCross:      {0, 90},
	PresetX:          {45, 135},
	PresetStar:       {0, 45, 90, 135},
}

var presetNames = map[string]Preset{
	"none":       PresetNone,
	"vertical":   PresetVertical,
	"horizontal": PresetHorizontal,
	"cross":      PresetCross,
	"x":          PresetX,
	"star":       PresetStar,
}

func (p Preset) String() string {
	for name, v := range presetNames {
		if v == p {
			return name
		}
	}
	return fmt.Sprintf("Preset(%d)", int(p))
}

// ParsePreset returns the preset named by s.
func ParsePreset(s string) (Preset, error) {
	if p, ok := presetNames[strings.ToLower(s)]; ok {
		return p, nil
	}
	return 0, fmt.Errorf("unknown symmetry preset %q", s)
}

// Symmetry holds the mirror lines of a canvas and expands a point into its
// orbit under the reflections they generate. It is disabled by default.
type Symmetry struct {
	width   int
	height  int
	enabled bool
	lines   []Line
}

// NewSymmetry returns a disabled Symmetry without lines for a width×height canvas.
func NewSymmetry(width, height int) *Symmetry {
	return &Symmetry{width: width, height: height}
}

// SetCanvasSize updates the canvas dimensions used to center new lines.
// Existing lines keep their position.
func (s *Symmetry) SetCanvasSize(width, height int) {
	s.width, s.height = width, height
}

// SetEnabled switches mirroring on or off.
func (s *Symmetry) SetEnabled(on bool) { s.enabled = on }

// Enabled reports whether mirroring is on.
func (s *Symmetry) Enabled() bool { return s.enabled }

// Lines returns a copy of the mirror lines.
func (s *Symmetry) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// AddLine adds an enabled line through the canvas center and returns its
// index. It returns false when MaxLines lines already exist.
func (s *Symmetry) AddLine(angle float64) (int, bool) {
	if len(s.lines) >= MaxLines {
		return -1, false
	}
	l := Line{
		CX:      float64(s.width) / 2,
		CY:      float64(s.height) / 2,
		Enabled: true,
	}
	l.SetAngle(angle)
	s.lines = append(s.lines, l)
	return len(s.lines) - 1, true
}

// RemoveLine deletes the line at index i.
func (s *Symmetry) RemoveLine(i int) bool {
	if i < 0 || i >= len(s.lines) {
		return false
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	return true
}

// ClearLines removes every line.
func (s *Symmetry) ClearLines() {
	s.lines = s.lines[:0]
}

// SetLineAngle changes the angle of line i.
func (s *Symmetry) SetLineAngle(i int, angle float64) bool {
	if i < 0 || i >= len(s.lines) {
		return false
	}
	s.lines[i].SetAngle(angle)
	return true
}

// MoveLine moves the center of line i to (x, y).
func (s *Symmetry) MoveLine(i int, x, y float64) bool {
	if i < 0 || i >= len(s.lines) {
		return false
	}
	s.lines[i].CX, s.lines[i].CY = x, y
	return true
}

// ToggleLine flips the enabled flag of line i.
func (s *Symmetry) ToggleLine(i int) bool {
	if i < 0 || i >= len(s.lines) {
		return false
	}
	s.lines[i].Enabled = !s.lines[i].Enabled
	return true
}

// ApplyPreset replaces the lines with the preset arrangement, centered on
// the canvas. Any preset other than PresetNone enables mirroring;
// PresetNone disables it.
func (s *Symmetry) ApplyPreset(p Preset) {
	s.ClearLines()
	angles := presetAngles[p]
	for _, a := range angles {
		s.AddLine(a)
	}
	s.enabled = len(angles) > 0
}

// expand returns the images of p under every group element, in a fixed
// order: the point set is doubled by each enabled line in turn, so index i
// of the result is the same group element for any input point.
func (s *Symmetry) expand(p r2.Vec) []r2.Vec {
	pts := []r2.Vec{p}
	if !s.enabled {
		return pts
	}
	for _, l := range s.lines {
		if !l.Enabled {
			continue
		}
		n := len(pts)
		for i := 0; i < n; i++ {
			pts = append(pts, l.Reflect(pts[i]))
		}
	}
	return pts
}

// MirroredPoints returns the de-duplicated orbit of (x, y). Without enabled
// lines, or with mirroring off, it is the point itself.
func (s *Symmetry) MirroredPoints(x, y float64) []r2.Vec {
	all := s.expand(r2.Vec{X: x, Y: y})
	seen := make(map[[2]int64]struct{}, len(all))
	out := make([]r2.Vec, 0, len(all))
	for _, v := range all {
		key := [2]int64{int64(math.Round(v.X * 1e6)), int64(math.Round(v.Y * 1e6))}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Orbit returns the de-duplicated pixel orbit of pixel (x, y). The pixel
// center is mirrored and mapped back to the pixel containing it.
func (s *Symmetry) Orbit(x, y int) []image.Point {
	all := s.expand(pixelCenter(x, y))
	seen := make(map[image.Point]struct{}, len(all))
	out := make([]image.Point, 0, len(all))
	for _, v := range all {
		p := toPixel(v)
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// orbitPairs mirrors the segment (x1, y1)-(x2, y2) through every group
// element, pairing the endpoints by element so each copy is a true image of
// the segment.
func (s *Symmetry) orbitPairs(x1, y1, x2, y2 int) [][2]image.Point {
	a := s.expand(pixelCenter(x1, y1))
	b := s.expand(pixelCenter(x2, y2))

	seen := make(map[[2]image.Point]struct{}, len(a))
	out := make([][2]image.Point, 0, len(a))
	for i := range a {
		seg := [2]image.Point{toPixel(a[i]), toPixel(b[i])}
		if _, ok := seen[seg]; ok {
			continue
		}
		seen[seg] = struct{}{}
		out = append(out, seg)
	}
	return out
}

func pixelCenter(x, y int) r2.Vec {
	return r2.Vec{X: float64(x) + 0.5, Y: float64(y) + 0.5}
}

func toPixel(v r2.Vec) image.Point {
	return image.Pt(int(math.Round(v.X-0.5)), int(math.Round(v.Y-0.5)))
}
