package pixed

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

func TestFloodFill_WholeSurface(t *testing.T) {
	assert := assert.New(t)

	s := NewSurface(16, 9)
	s.Fill(white)

	n := FloodFill(s, 0, 0, red)
	assert.Equal(16*9, n)
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			assert.Equal(red, s.Get(x, y))
		}
	}
}

func TestFloodFill_SameColorIsNoop(t *testing.T) {
	assert := assert.New(t)

	s := NewSurface(4, 4)
	s.Fill(white)
	before := s.Pix()

	assert.Equal(0, FloodFill(s, 1, 1, white))
	assert.Equal(before, s.Pix())
	assert.Equal(0, FloodFill(s, -1, 1, red))
	assert.Equal(0, FloodFill(s, 4, 0, red))
	assert.Equal(before, s.Pix())
}

func TestFloodFill_StopsAtBoundaryAndIgnoresDiagonals(t *testing.T) {
	assert := assert.New(t)

	// A vertical wall at x=2 splits a 5×5 surface; a diagonal gap at the
	// bottom must not leak.
	s := NewSurface(5, 5)
	for y := 0; y < 5; y++ {
		s.Set(2, y, white)
	}
	s.Set(2, 4, Transparent)
	s.Set(1, 4, white)
	s.Set(3, 3, white)

	n := FloodFill(s, 0, 0, red)
	assert.Equal(2*5-1, n)
	assert.Equal(red, s.Get(0, 4))
	assert.Equal(white, s.Get(1, 4))
	assert.Equal(Transparent, s.Get(3, 0))
	assert.Equal(Transparent, s.Get(2, 4))
}

func TestFloodFill_ExactColorMatch(t *testing.T) {
	assert := assert.New(t)

	s := NewSurface(3, 1)
	s.Set(0, 0, color.NRGBA{R: 10, A: 255})
	s.Set(1, 0, color.NRGBA{R: 10, A: 254})
	s.Set(2, 0, color.NRGBA{R: 10, A: 255})

	assert.Equal(1, FloodFill(s, 0, 0, red))
	assert.Equal(color.NRGBA{R: 10, A: 254}, s.Get(1, 0))
}

func BenchmarkFloodFill(b *testing.B) {
	s := NewSurface(512, 512)
	colors := [2]color.NRGBA{white, red}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		FloodFill(s, 256, 256, colors[i%2])
	}
}
