package pixed

import (
	"fmt"
	"image/color"
	"strings"
)

// Tool is the active editing tool.
type Tool int

const (
	Brush Tool = iota
	Eraser
	Bucket
	Eyedropper
)

var toolNames = [...]string{
	Brush:      "brush",
	Eraser:     "eraser",
	Bucket:     "bucket",
	Eyedropper: "eyedropper",
}

func (t Tool) String() string {
	if t < 0 || int(t) >= len(toolNames) {
		return fmt.Sprintf("Tool(%d)", int(t))
	}
	return toolNames[t]
}

// ParseTool returns the tool named by s.
func ParseTool(s string) (Tool, error) {
	s = strings.ToLower(s)
	for i, name := range toolNames {
		if name == s {
			return Tool(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tool %q", s)
}

func (t Tool) valid() bool {
	return t >= 0 && int(t) < len(toolNames)
}

// ColorSampler reads the color under a canvas position for the eyedropper.
// It reports false when nothing can be sampled there.
type ColorSampler interface {
	Sample(x, y int) (color.NRGBA, bool)
}

// surfaceSampler samples the editor's own surface.
type surfaceSampler struct {
	s *Surface
}

func (ss surfaceSampler) Sample(x, y int) (color.NRGBA, bool) {
	c, err := ss.s.GetStrict(x, y)
	return c, err == nil
}

// toolBehavior is what a tool does with pointer input.
type toolBehavior interface {
	// press handles pointer down and reports whether a stroke begins.
	press(e *Editor, x, y int) bool
	// ink is the color written by a stroke.
	ink(e *Editor) color.NRGBA
}

type brushTool struct{}

func (brushTool) press(*Editor, int, int) bool { return true }
func (brushTool) ink(e *Editor) color.NRGBA   { return e.color }

type eraserTool struct{}

func (eraserTool) press(*Editor, int, int) bool { return true }
func (eraserTool) ink(*Editor) color.NRGBA     { return Transparent }

type bucketTool struct{}

func (bucketTool) press(e *Editor, x, y int) bool {
	e.FillAt(x, y)
	return false
}
func (bucketTool) ink(e *Editor) color.NRGBA { return e.color }

type eyedropperTool struct{}

func (eyedropperTool) press(e *Editor, x, y int) bool {
	if c, ok := e.sampler.Sample(x, y); ok {
		e.SetColor(c)
	}
	return false
}
func (eyedropperTool) ink(e *Editor) color.NRGBA { return e.color }

// behaviors is indexed by Tool.
var behaviors = [...]toolBehavior{
	Brush:      brushTool{},
	Eraser:     eraserTool{},
	Bucket:     bucketTool{},
	Eyedropper: eyedropperTool{},
}
