package export

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPDF_WritesDocument(t *testing.T) {
	assert := assert.New(t)

	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(3, 1, color.NRGBA{B: 255, A: 128})

	var buf bytes.Buffer
	err := PDF(&buf, img, Options{PixelSize: 8, Title: "sprite"})
	assert.NoError(err)
	assert.True(bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.True(bytes.Contains(buf.Bytes(), []byte("%%EOF")))
}

func TestPDF_RejectsEmptyImage(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, PDF(&buf, image.NewNRGBA(image.Rect(0, 0, 0, 0)), Options{}))
	assert.Error(t, PDF(&buf, nil, Options{}))
	assert.Zero(t, buf.Len())
}
