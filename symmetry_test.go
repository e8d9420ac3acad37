package pixed

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestLine_Reflect(t *testing.T) {
	assert := assert.New(t)

	v := Line{CX: 50, CY: 50}
	p := v.Reflect(r2.Vec{X: 10, Y: 20})
	assert.InDelta(90, p.X, 1e-9)
	assert.InDelta(20, p.Y, 1e-9)

	h := Line{CX: 50, CY: 50, Angle: 90}
	p = h.Reflect(r2.Vec{X: 10, Y: 20})
	assert.InDelta(10, p.X, 1e-9)
	assert.InDelta(80, p.Y, 1e-9)

	d := Line{CX: 0, CY: 0, Angle: 45}
	p = d.Reflect(r2.Vec{X: 3, Y: 1})
	assert.InDelta(-1, p.X, 1e-9)
	assert.InDelta(-3, p.Y, 1e-9)
}

func TestLine_SetAngleNormalises(t *testing.T) {
	assert := assert.New(t)

	var l Line
	for in, want := range map[float64]float64{-90: 270, 360: 0, 725: 5, 45: 45, -720: 0} {
		l.SetAngle(in)
		assert.InDelta(want, l.Angle, 1e-9, "angle %v", in)
	}
}

func TestSymmetry_DisabledReturnsPoint(t *testing.T) {
	assert := assert.New(t)

	s := NewSymmetry(100, 100)
	s.AddLine(0)
	assert.Len(s.MirroredPoints(10, 20), 1)

	s.SetEnabled(true)
	s.ClearLines()
	assert.Equal([]r2.Vec{{X: 10, Y: 20}}, s.MirroredPoints(10, 20))
}

func TestSymmetry_OrbitSizes(t *testing.T) {
	assert := assert.New(t)

	s := NewSymmetry(100, 100)

	s.ApplyPreset(PresetVertical)
	assert.Len(s.MirroredPoints(10, 20), 2)
	assert.Len(s.Orbit(10, 20), 2)

	s.ApplyPreset(PresetCross)
	assert.Len(s.MirroredPoints(10, 20), 4)
	assert.Len(s.Orbit(10, 20), 4)

	s.ApplyPreset(PresetX)
	assert.Len(s.MirroredPoints(10, 20), 4)

	s.ApplyPreset(PresetStar)
	assert.Len(s.MirroredPoints(10, 20), 8)
	assert.Len(s.Orbit(10, 20), 8)

	s.ApplyPreset(PresetNone)
	assert.False(s.Enabled())
	assert.Len(s.Orbit(10, 20), 1)
}

func TestSymmetry_OrbitPixels(t *testing.T) {
	assert := assert.New(t)

	s := NewSymmetry(100, 100)
	s.ApplyPreset(PresetCross)
	assert.ElementsMatch([]image.Point{{10, 20}, {89, 20}, {10, 79}, {89, 79}}, s.Orbit(10, 20))

	// A pixel whose center sits on the axis maps onto itself.
	s = NewSymmetry(5, 5)
	s.ApplyPreset(PresetVertical)
	assert.Equal([]image.Point{{2, 1}}, s.Orbit(2, 1))
}

func TestSymmetry_DisabledLineIsSkipped(t *testing.T) {
	assert := assert.New(t)

	s := NewSymmetry(100, 100)
	s.ApplyPreset(PresetCross)
	assert.True(s.ToggleLine(1))
	assert.Len(s.Orbit(10, 20), 2)
	assert.False(s.ToggleLine(5))
}

func TestSymmetry_LineManagement(t *testing.T) {
	assert := assert.New(t)

	s := NewSymmetry(64, 32)
	for i := 0; i < MaxLines; i++ {
		_, ok := s.AddLine(float64(i * 10))
		assert.True(ok)
	}
	_, ok := s.AddLine(0)
	assert.False(ok)
	assert.Len(s.Lines(), MaxLines)

	l := s.Lines()[0]
	assert.Equal(32.0, l.CX)
	assert.Equal(16.0, l.CY)
	assert.True(l.Enabled)

	assert.True(s.SetLineAngle(0, -30))
	assert.Equal(330.0, s.Lines()[0].Angle)
	assert.True(s.MoveLine(0, 1, 2))
	assert.Equal(1.0, s.Lines()[0].CX)

	assert.True(s.RemoveLine(0))
	assert.False(s.RemoveLine(-1))
	assert.Len(s.Lines(), MaxLines-1)
	assert.Equal(10.0, s.Lines()[0].Angle)

	s.SetCanvasSize(10, 10)
	i, _ := s.AddLine(90)
	assert.Equal(5.0, s.Lines()[i].CX)
}

func TestSymmetry_OrbitPairsKeepEndpointsTogether(t *testing.T) {
	assert := assert.New(t)

	s := NewSymmetry(100, 100)
	s.ApplyPreset(PresetVertical)
	pairs := s.orbitPairs(10, 20, 30, 20)
	assert.ElementsMatch([][2]image.Point{
		{{10, 20}, {30, 20}},
		{{89, 20}, {69, 20}},
	}, pairs)
}

func TestSymmetry_ParsePreset(t *testing.T) {
	assert := assert.New(t)

	p, err := ParsePreset("Star")
	assert.NoError(err)
	assert.Equal(PresetStar, p)
	assert.Equal("star", p.String())

	_, err = ParsePreset("spiral")
	assert.Error(err)
}
