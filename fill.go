package pixed

import (
	"image"
	"image/color"
)

// FloodFill repaints the 4-connected region of pixels sharing the color of
// the seed (x, y) with c and returns the number of pixels changed.
// Nothing happens when the seed is outside the surface or already has color c.
func FloodFill(s *Surface, x, y int, c color.NRGBA) int {
	if !s.In(x, y) {
		return 0
	}
	target := s.Get(x, y)
	if target == c {
		return 0
	}

	w := s.Width()
	visited := make([]bool, w*s.Height())
	queue := []image.Point{{X: x, Y: y}}
	visited[y*w+x] = true

	neighbors := [4]image.Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

	changed := 0
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		s.Set(p.X, p.Y, c)
		changed++

		for _, d := range neighbors {
			n := p.Add(d)
			if !s.In(n.X, n.Y) || visited[n.Y*w+n.X] {
				continue
			}
			if s.Get(n.X, n.Y) != target {
				continue
			}
			visited[n.Y*w+n.X] = true
			queue = append(queue, n)
		}
	}
	return changed
}
