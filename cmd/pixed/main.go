package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"gioui.org/app"
	"github.com/pixelkit/pixed"
	"github.com/pixelkit/pixed/preview"
	"github.com/pixelkit/pixed/utils"
)

const HelpBanner = `
┌─┐┬─┐ ┬┌─┐┌┬┐
├─┘│┌┴┬┘├┤  ││
┴  ┴┴ └─└─┘─┴┘

Pixel art drawing engine.
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

var (
	// Flags
	source      = flag.String("in", pipeName, "Source script or directory of scripts")
	destination = flag.String("out", pipeName, "Destination image or directory")
	width       = flag.Int("width", pixed.DefaultCanvasSize, "Canvas width")
	height      = flag.Int("height", pixed.DefaultCanvasSize, "Canvas height")
	scale       = flag.Int("scale", 1, "Integer up-scaling factor of the exported image")
	background  = flag.String("bg", "#ffffff", "Background color used by formats without alpha")
	format      = flag.String("format", pixed.FormatPNG, "Output format when writing to stdout or a directory")
	history     = flag.Int("history", pixed.DefaultHistoryDepth, "Undo history depth")
	previewMode = flag.Bool("preview", false, "Show the canvas while the script is replayed")
	debug       = flag.Bool("debug", false, "Log engine debug messages")
	workers     = flag.Int("conc", runtime.NumCPU(), "Number of scripts to process concurrently")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *debug {
		pixed.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	bg, err := utils.HexToRGBA(*background)
	if err != nil {
		log.Fatalf("%s %s",
			utils.DecorateText("Invalid background color:", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}

	spinnerText := fmt.Sprintf("%s %s",
		utils.DecorateText("▦ PIXED", utils.StatusMessage),
		utils.DecorateText("is rendering the image...", utils.DefaultMessage))

	proc := &pixed.Processor{
		Width:        *width,
		Height:       *height,
		Scale:        *scale,
		HistoryDepth: *history,
		Format:       *format,
		Background:   bg,
		Preview:      *previewMode,
		Spinner:      utils.NewSpinner(spinnerText, time.Millisecond*100, true),
	}
	op := &pixed.Ops{
		Src:      *source,
		Dst:      *destination,
		PipeName: pipeName,
		Workers:  *workers,
	}

	if !proc.Preview {
		if err := proc.Execute(op); err != nil {
			fatal(err)
		}
		return
	}

	// The Gio event loop owns the main goroutine, so the replay runs beside it.
	frames := make(chan *image.NRGBA, 1)
	proc.Frames = frames
	go func() {
		if err := proc.Execute(op); err != nil {
			fatal(err)
		}
	}()
	go func() {
		title := fmt.Sprintf("pixed ⇢ %s", filepath.Base(*source))
		if err := preview.Show(title, *width, *height, frames); err != nil {
			fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func fatal(err error) {
	log.Fatalf("%s%s",
		utils.DecorateText("\nError rendering the image: ", utils.ErrorMessage),
		utils.DecorateText(err.Error(), utils.DefaultMessage),
	)
}
