package pixed

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleScript = `
canvas 6 4
color #ff0000
stroke 0 0 5 0
color #00ff00
fill 0 3
`

func TestProcessor_ProcessPNG(t *testing.T) {
	require := require.New(t)

	var buf bytes.Buffer
	p := &Processor{}
	require.NoError(p.Process(strings.NewReader(sampleScript), &buf))

	img, err := png.Decode(&buf)
	require.NoError(err)
	out := imgToNRGBA(img)
	assert.Equal(t, image.Rect(0, 0, 6, 4), out.Bounds())
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, out.NRGBAAt(5, 0))
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, out.NRGBAAt(2, 2))
}

func TestProcessor_DefaultCanvas(t *testing.T) {
	var buf bytes.Buffer
	p := &Processor{Scale: 2}
	require.NoError(t, p.Process(strings.NewReader("fill 0 0"), &buf))

	cfg, err := png.DecodeConfig(&buf)
	require.NoError(t, err)
	assert.Equal(t, DefaultCanvasSize*2, cfg.Width)
	assert.Equal(t, DefaultCanvasSize*2, cfg.Height)
}

func TestProcessor_ScriptErrorIsReturned(t *testing.T) {
	var buf bytes.Buffer
	p := &Processor{Width: 4, Height: 4}
	err := p.Process(strings.NewReader("canvas 4 4\nfill 1"), &buf)
	assert.ErrorIs(t, err, ErrArgCount)
	assert.Zero(t, buf.Len())
}

func TestProcessor_FramesFollowChanges(t *testing.T) {
	assert := assert.New(t)

	frames := make(chan *image.NRGBA, 1)
	p := &Processor{Width: 4, Height: 4, Frames: frames}

	s, err := ParseScript(strings.NewReader("color #ff0000\nfill 0 0"))
	require.NoError(t, err)
	e, err := p.Render(s)
	require.NoError(t, err)

	// Only the newest frame is kept.
	assert.Len(frames, 1)
	last := <-frames
	assert.Equal(e.Image().Pix, last.Pix)
	assert.Equal(color.NRGBA{R: 255, A: 255}, last.NRGBAAt(3, 3))
}

func TestExecute_SingleFile(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	src := filepath.Join(dir, "sprite.pxs")
	require.NoError(os.WriteFile(src, []byte(sampleScript), 0644))
	dst := filepath.Join(dir, "sprite.png")

	p := &Processor{}
	require.NoError(p.Execute(&Ops{Src: src, Dst: dst, PipeName: "-"}))

	f, err := os.Open(dst)
	require.NoError(err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(err)
	assert.Equal(t, 6, cfg.Width)
}

func TestExecute_RejectsUnknownOutput(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "sprite.pxs")
	require.NoError(t, os.WriteFile(src, []byte(sampleScript), 0644))

	p := &Processor{}
	err := p.Execute(&Ops{Src: src, Dst: filepath.Join(dir, "sprite.gif"), PipeName: "-"})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExecute_Directory(t *testing.T) {
	require := require.New(t)

	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "rendered")
	require.NoError(os.MkdirAll(filepath.Join(in, "nested"), 0755))
	for _, name := range []string{"a.pxs", "nested/b.txt"} {
		require.NoError(os.WriteFile(filepath.Join(in, name), []byte(sampleScript), 0644))
	}
	require.NoError(os.WriteFile(filepath.Join(in, "notes.md"), []byte("ignored"), 0644))

	p := &Processor{Format: FormatBMP, Preview: true}
	require.NoError(p.Execute(&Ops{Src: in, Dst: out, PipeName: "-", Workers: 2}))
	assert.False(t, p.Preview)

	for _, name := range []string{"a.bmp", "b.bmp"} {
		_, err := os.Stat(filepath.Join(out, name))
		assert.NoError(t, err, name)
	}
	_, err := os.Stat(filepath.Join(out, "notes.bmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestExecute_DirectoryReportsFailures(t *testing.T) {
	in := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(in, "bad.pxs"), []byte("splat"), 0644))

	out := t.TempDir()
	p := &Processor{}
	err := p.Execute(&Ops{Src: in, Dst: out, PipeName: "-", Workers: 1})
	assert.ErrorIs(t, err, ErrUnknownCommand)
	_, serr := os.Stat(filepath.Join(out, "bad.png"))
	assert.True(t, os.IsNotExist(serr))
}
