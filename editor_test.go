package pixed

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSampler color.NRGBA

func (f fixedSampler) Sample(x, y int) (color.NRGBA, bool) {
	return color.NRGBA(f), true
}

func countColor(s *Surface, c color.NRGBA) int {
	n := 0
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestEditor_Defaults(t *testing.T) {
	assert := assert.New(t)

	e := NewEditor(32, 16)
	assert.Equal(Brush, e.Tool())
	assert.Equal(BrushSettings{Size: 1, Shape: Circle}, e.Brush())
	assert.Equal(color.NRGBA{A: 255}, e.Color())
	assert.False(e.CanUndo())
	assert.False(e.CanRedo())
	assert.NotEqual(NewEditor(1, 1).ID(), e.ID())
	assert.Equal(image.Rect(0, 0, 32, 16), e.Image().Bounds())
}

func TestEditor_StrokeDrawsAndRecordsHistory(t *testing.T) {
	assert := assert.New(t)

	e := NewEditor(10, 10)
	e.SetColor(red)

	changes := 0
	e.OnChange(func() { changes++ })

	e.PointerDown(0, 0)
	e.PointerMove(4, 0)
	e.PointerMove(4, 4)
	e.PointerUp()

	assert.Equal(9, countColor(e.Surface(), red))
	assert.Equal(4, changes)
	assert.True(e.CanUndo())

	assert.True(e.Undo())
	assert.Equal(0, countColor(e.Surface(), red))
	assert.False(e.Undo())

	assert.True(e.Redo())
	assert.Equal(9, countColor(e.Surface(), red))
}

func TestEditor_MoveWithoutDownIsIgnored(t *testing.T) {
	assert := assert.New(t)

	e := NewEditor(5, 5)
	e.PointerMove(1, 1)
	e.PointerUp()
	assert.Equal(0, countColor(e.Surface(), e.Color()))
	assert.False(e.CanUndo())
}

func TestEditor_Eraser(t *testing.T) {
	assert := assert.New(t)

	e := NewEditor(4, 1)
	e.SetColor(red)
	e.FillAt(0, 0)
	e.SetTool(Eraser)
	e.PointerDown(1, 0)
	e.PointerMove(2, 0)
	e.PointerUp()

	assert.Equal(red, e.Surface().Get(0, 0))
	assert.Equal(Transparent, e.Surface().Get(1, 0))
	assert.Equal(Transparent, e.Surface().Get(2, 0))
	assert.Equal(red, e.Surface().Get(3, 0))
}

func TestEditor_BucketAndEyedropper(t *testing.T) {
	assert := assert.New(t)

	e := NewEditor(3, 3)
	e.SetColor(red)
	e.SetTool(Bucket)
	e.PointerDown(1, 1)
	e.PointerUp()
	assert.Equal(9, countColor(e.Surface(), red))
	assert.Equal(2, e.history.Len())

	e.SetColor(white)
	e.SetTool(Eyedropper)
	e.PointerDown(0, 0)
	assert.Equal(red, e.Color())
	assert.Equal(2, e.history.Len(), "sampling must not touch history")

	green := color.NRGBA{G: 255, A: 255}
	e = NewEditor(3, 3, WithSampler(fixedSampler(green)))
	e.SetTool(Eyedropper)
	e.PointerDown(0, 0)
	assert.Equal(green, e.Color())
}

func TestEditor_FillNoopSkipsHistory(t *testing.T) {
	assert := assert.New(t)

	e := NewEditor(3, 3)
	e.SetColor(Transparent)
	assert.Equal(0, e.FillAt(0, 0))
	assert.False(e.CanUndo())
}

func TestEditor_SymmetricStroke(t *testing.T) {
	assert := assert.New(t)

	e := NewEditor(10, 10)
	e.SetColor(red)
	e.Symmetry().ApplyPreset(PresetCross)

	e.PointerDown(1, 1)
	e.PointerMove(3, 1)
	e.PointerUp()

	s := e.Surface()
	assert.Equal(12, countColor(s, red))
	for _, p := range []image.Point{{1, 1}, {8, 1}, {1, 8}, {8, 8}, {6, 8}} {
		assert.Equal(red, s.Get(p.X, p.Y), "pixel %v", p)
	}
}

func TestEditor_PixelPerfectStroke(t *testing.T) {
	assert := assert.New(t)

	e := NewEditor(8, 8)
	e.SetColor(red)
	e.SetBrush(1, Circle, true)

	e.PointerDown(0, 0)
	e.PointerMove(1, 0)
	e.PointerMove(1, 1)
	e.PointerUp()

	s := e.Surface()
	assert.Equal(red, s.Get(0, 0))
	assert.Equal(Transparent, s.Get(1, 0))
	assert.Equal(red, s.Get(1, 1))
	assert.Equal(2, countColor(s, red))
}

func TestEditor_PixelPerfectNeedsSizeOne(t *testing.T) {
	e := NewEditor(8, 8)
	e.SetColor(red)
	e.SetBrush(2, Square, true)

	e.PointerDown(2, 2)
	e.PointerMove(3, 2)
	e.PointerMove(3, 3)
	e.PointerUp()

	assert.Equal(t, red, e.Surface().Get(3, 2))
}

func TestEditor_ResizeAndLoadResetHistory(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	e := NewEditor(4, 4)
	e.SetColor(red)
	e.FillAt(0, 0)
	require.True(e.CanUndo())

	e.Resize(6, 3)
	assert.Equal(6, e.Surface().Width())
	assert.Equal(0, countColor(e.Surface(), red))
	assert.False(e.CanUndo())

	e.Symmetry().ApplyPreset(PresetVertical)
	assert.Equal(3.0, e.Symmetry().Lines()[0].CX)

	pix := make([]uint8, 2*2*4)
	for i := range pix {
		pix[i] = uint8(i + 1)
	}
	assert.True(e.LoadBuffer(pix, 2, 2))
	assert.Equal(pix, e.Surface().Pix())
	assert.False(e.CanUndo())

	assert.False(e.LoadBuffer(pix, 3, 3))
	assert.False(e.LoadBuffer(make([]uint8, 3000*4), 3000, 1))
	assert.Equal(pix, e.Surface().Pix())

	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.Set(2, 1, white)
	assert.True(e.LoadImage(img))
	assert.Equal(white, e.Surface().Get(2, 1))
}

func TestEditor_ClearIsUndoable(t *testing.T) {
	assert := assert.New(t)

	e := NewEditor(2, 2)
	e.SetColor(red)
	e.FillAt(0, 0)
	e.Clear()
	assert.Equal(0, countColor(e.Surface(), red))

	assert.True(e.Undo())
	assert.Equal(4, countColor(e.Surface(), red))
}

func TestEditor_RemoveObserver(t *testing.T) {
	assert := assert.New(t)

	e := NewEditor(2, 2)
	calls := 0
	remove := e.OnChange(func() { calls++ })
	e.Clear()
	remove()
	e.Clear()
	assert.Equal(1, calls)
}

func TestEditor_ObserverRemovedDuringNotify(t *testing.T) {
	assert := assert.New(t)

	e := NewEditor(2, 2)
	var calls [3]int
	var removeFirst func()
	removeFirst = e.OnChange(func() {
		calls[0]++
		removeFirst()
	})
	e.OnChange(func() { calls[1]++ })
	e.OnChange(func() { calls[2]++ })

	e.Clear()
	assert.Equal([3]int{1, 1, 1}, calls)
	e.Clear()
	assert.Equal([3]int{1, 2, 2}, calls)
}

func TestEditor_ObserverRemovesLaterOne(t *testing.T) {
	e := NewEditor(2, 2)
	calls := 0
	var removeSecond func()
	e.OnChange(func() { removeSecond() })
	removeSecond = e.OnChange(func() { calls++ })

	e.Clear()
	assert.Zero(t, calls)
}

func TestEditor_HistoryDepthOption(t *testing.T) {
	e := NewEditor(2, 2, WithHistoryDepth(2), WithMaskCacheSize(1))
	for i := 0; i < 5; i++ {
		e.Clear()
	}
	assert.Equal(t, 2, e.history.Len())
	assert.True(t, e.Undo())
	assert.False(t, e.Undo())
}
