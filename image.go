package pixed

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pixelkit/pixed/export"
	"github.com/pixelkit/pixed/imop"
	"github.com/pixelkit/pixed/utils"
	"golang.org/x/image/bmp"
)

// ErrUnsupportedFormat is returned when the output extension is unknown.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Supported output formats.
const (
	FormatPNG  = ".png"
	FormatJPEG = ".jpg"
	FormatBMP  = ".bmp"
	FormatPDF  = ".pdf"
)

// formatFor normalises a file extension to one of the supported formats.
func formatFor(ext string) (string, error) {
	switch strings.ToLower(ext) {
	case ".png":
		return FormatPNG, nil
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	case ".bmp":
		return FormatBMP, nil
	case ".pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

// decodeImg decodes an image file or remote image to type image.Image.
func decodeImg(src string) (image.Image, error) {
	var (
		file *os.File
		err  error
	)
	if utils.IsValidUrl(src) {
		file, err = utils.DownloadImage(src)
		if file != nil {
			defer os.Remove(file.Name())
		}
	} else {
		file, err = os.Open(src)
	}
	if err != nil {
		if file != nil {
			file.Close()
		}
		return nil, fmt.Errorf("could not open the image file: %w", err)
	}
	defer file.Close()

	ctype, err := utils.DetectContentType(file.Name())
	if err != nil {
		return nil, err
	}
	if !strings.Contains(ctype, "image") {
		return nil, fmt.Errorf("%s is not an image file", src)
	}

	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("could not decode the image file: %w", err)
	}
	return img, nil
}

// encodeImg encodes the image to w. The format is taken from the file
// extension when w is an *os.File, otherwise from the processor options.
// The title is only used by document formats.
func encodeImg(p *Processor, w io.Writer, img *image.NRGBA, title string) error {
	format := p.Format
	if f, ok := w.(*os.File); ok && f != os.Stdout {
		if ext := filepath.Ext(f.Name()); ext != "" {
			format = ext
		}
	}
	if format == "" {
		format = FormatPNG
	}
	format, err := formatFor(format)
	if err != nil {
		return err
	}

	if p.Scale > 1 && format != FormatPDF {
		img = scaleImg(img, p.Scale)
	}

	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatJPEG:
		return jpeg.Encode(w, flatten(img, p.Background), &jpeg.Options{Quality: 100})
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatPDF:
		return export.PDF(w, img, export.Options{
			PixelSize: float64(utils.Max(p.Scale, 1)),
			Title:     title,
		})
	}
	return ErrUnsupportedFormat
}

// scaleImg enlarges the image by an integer factor keeping hard pixel edges.
func scaleImg(img *image.NRGBA, scale int) *image.NRGBA {
	b := img.Bounds()
	return imaging.Resize(img, b.Dx()*scale, b.Dy()*scale, imaging.NearestNeighbor)
}

// flatten composites the image over an opaque background color.
func flatten(img *image.NRGBA, bg color.NRGBA) *image.NRGBA {
	bg.A = 0xff
	backdrop := image.NewNRGBA(img.Bounds())
	draw.Draw(backdrop, backdrop.Bounds(), &image.Uniform{bg}, image.Point{}, draw.Src)

	bitmap := imop.NewBitmap(img.Bounds())
	op := imop.InitOp()
	op.Set(imop.SrcOver)
	op.Draw(bitmap, img, backdrop)

	return bitmap.Img
}

// imgToNRGBA converts any image type to *image.NRGBA with min-point at (0, 0).
func imgToNRGBA(img image.Image) *image.NRGBA {
	srcBounds := img.Bounds()
	if srcBounds.Min.X == 0 && srcBounds.Min.Y == 0 {
		if src0, ok := img.(*image.NRGBA); ok && src0.Stride == 4*srcBounds.Dx() {
			return src0
		}
	}
	srcMinX := srcBounds.Min.X
	srcMinY := srcBounds.Min.Y

	dstBounds := srcBounds.Sub(srcBounds.Min)
	dstW := dstBounds.Dx()
	dstH := dstBounds.Dy()
	dst := image.NewNRGBA(dstBounds)

	switch src := img.(type) {
	case *image.NRGBA:
		rowSize := dstW * 4
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			si := src.PixOffset(srcMinX, srcMinY+dstY)
			copy(dst.Pix[di:di+rowSize], src.Pix[si:si+rowSize])
		}
	case *image.YCbCr:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				srcX := srcMinX + dstX
				srcY := srcMinY + dstY
				siy := src.YOffset(srcX, srcY)
				sic := src.COffset(srcX, srcY)
				r, g, b := color.YCbCrToRGB(src.Y[siy], src.Cb[sic], src.Cr[sic])
				dst.Pix[di+0] = r
				dst.Pix[di+1] = g
				dst.Pix[di+2] = b
				dst.Pix[di+3] = 0xff
				di += 4
			}
		}
	default:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				c := color.NRGBAModel.Convert(img.At(srcMinX+dstX, srcMinY+dstY)).(color.NRGBA)
				dst.Pix[di+0] = c.R
				dst.Pix[di+1] = c.G
				dst.Pix[di+2] = c.B
				dst.Pix[di+3] = c.A
				di += 4
			}
		}
	}
	return dst
}
