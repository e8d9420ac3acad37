package pixed

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/pixelkit/pixed/utils"
	"golang.org/x/term"
)

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

// scriptExtensions lists the file extensions picked up in batch mode.
var scriptExtensions = []string{".pxs", ".txt"}

// Ops describes the source and destination of an execution.
type Ops struct {
	Src, Dst, PipeName string
	Workers            int
}

// result holds the outcome of replaying one script.
type result struct {
	path string
	err  error
}

// Execute replays the script at op.Src, or every script below it when it is
// a directory, and writes the rendered images to op.Dst. In batch mode the
// scripts are processed concurrently and the preview is disabled.
func (p *Processor) Execute(op *Ops) error {
	var (
		fs  os.FileInfo
		err error
	)
	if op.Src == op.PipeName {
		fs, err = os.Stdin.Stat()
	} else {
		fs, err = os.Stat(op.Src)
	}
	if err != nil {
		return fmt.Errorf("failed to load the source script: %w", err)
	}

	// Capture CTRL-C signal and restores back the cursor visibility.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	stop := make(chan struct{})
	defer func() {
		signal.Stop(signalChan)
		close(stop)
	}()
	go func() {
		select {
		case <-signalChan:
			if p.Spinner != nil {
				p.Spinner.RestoreCursor()
			}
			os.Exit(1)
		case <-stop:
		}
	}()

	now := time.Now()

	switch mode := fs.Mode(); {
	case mode.IsDir():
		var wg sync.WaitGroup
		if _, err := os.Stat(op.Dst); err != nil {
			if err := os.MkdirAll(op.Dst, 0755); err != nil {
				return fmt.Errorf("unable to create the destination directory: %w", err)
			}
		}
		p.Preview = false
		p.Frames = nil

		// Limit the concurrently running workers to maxWorkers.
		if op.Workers <= 0 || op.Workers > maxWorkers {
			op.Workers = runtime.NumCPU()
		}

		ch := make(chan result)
		done := make(chan interface{})
		defer close(done)

		paths, errc := walkDir(done, op.Src, scriptExtensions)

		p.startSpinner()
		wg.Add(op.Workers)
		for i := 0; i < op.Workers; i++ {
			go func() {
				defer wg.Done()
				op.consumer(p, op.Dst, ch, done, paths)
			}()
		}

		// Close the channel after the values are consumed.
		go func() {
			defer close(ch)
			wg.Wait()
		}()

		for res := range ch {
			if res.err != nil {
				err = res.err
			}
			op.printOpStatus(res.path, res.err)
		}
		p.stopSpinner(err)

		if werr := <-errc; werr != nil {
			return werr
		}

	case mode.IsRegular() || mode&os.ModeNamedPipe != 0:
		if op.Dst != op.PipeName {
			if _, ferr := formatFor(filepath.Ext(op.Dst)); ferr != nil {
				return ferr
			}
		}
		p.startSpinner()
		err = op.process(p, op.Src, op.Dst)
		p.stopSpinner(err)
		op.printOpStatus(op.Dst, err)

	default:
		return fmt.Errorf("%s is neither a file nor a directory", op.Src)
	}

	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "\nExecution time: %s\n", utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
	return nil
}

func (p *Processor) startSpinner() {
	if p.Spinner != nil {
		p.Spinner.Start()
	}
}

func (p *Processor) stopSpinner(err error) {
	if p.Spinner == nil {
		return
	}
	if err != nil {
		p.Spinner.StopMsg = fmt.Sprintf("%s %s %s",
			utils.DecorateText("▦ PIXED", utils.StatusMessage),
			utils.DecorateText("rendering failed...", utils.DefaultMessage),
			utils.DecorateText("✘", utils.ErrorMessage),
		)
	} else {
		p.Spinner.StopMsg = fmt.Sprintf("%s %s %s",
			utils.DecorateText("▦ PIXED", utils.StatusMessage),
			utils.DecorateText("⇢", utils.DefaultMessage),
			utils.DecorateText("the image has been rendered successfully ✔", utils.SuccessMessage),
		)
	}
	p.Spinner.Stop()
}

// consumer reads the script paths from the paths channel and renders each
// of them into the destination directory.
func (op *Ops) consumer(
	p *Processor,
	dest string,
	res chan<- result,
	done <-chan interface{},
	paths <-chan string,
) {
	for src := range paths {
		dst := filepath.Join(dest, outputName(src, p.Format))
		err := op.process(p, src, dst)

		select {
		case <-done:
			return
		case res <- result{
			path: dst,
			err:  err,
		}:
		}
	}
}

// outputName swaps the script extension for the output format's.
func outputName(src, format string) string {
	if format == "" {
		format = FormatPNG
	}
	base := filepath.Base(src)
	return strings.TrimSuffix(base, filepath.Ext(base)) + format
}

// process renders one script into one output file.
func (op *Ops) process(p *Processor, in, out string) error {
	src, dst, err := op.pathToFile(in, out)
	if err != nil {
		return err
	}

	defer func() {
		if f, ok := src.(*os.File); ok && f != os.Stdin {
			if err := f.Close(); err != nil {
				log.Printf("could not close the opened file: %v", err)
			}
		}
	}()

	err = p.Process(src, dst)

	if f, ok := dst.(*os.File); ok && f != os.Stdout {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			// remove the generated image file in case of an error
			os.Remove(f.Name())
		}
	}
	if err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(in), err)
	}
	return nil
}

// pathToFile converts the source and destination paths to readable and writable files.
func (op *Ops) pathToFile(in, out string) (io.Reader, io.Writer, error) {
	var (
		src io.Reader
		dst io.Writer
		err error
	)
	// Check if the source is a pipe name or a regular file.
	if in == op.PipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdin")
		}
		src = os.Stdin
	} else {
		src, err = os.Open(in)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to open the source file: %w", err)
		}
	}

	// Check if the destination is a pipe name or a regular file.
	if out == op.PipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdout")
		}
		dst = os.Stdout
	} else {
		dst, err = os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			if f, ok := src.(*os.File); ok && f != os.Stdin {
				f.Close()
			}
			return nil, nil, fmt.Errorf("unable to create the destination file: %w", err)
		}
	}
	return src, dst, nil
}

// printOpStatus displays the relevant information about the rendering process.
func (op *Ops) printOpStatus(fname string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "\n%s%s\n",
			utils.DecorateText("Error rendering the image: ", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
		return
	}
	if fname != op.PipeName {
		fmt.Fprintf(os.Stderr, "\nThe image has been saved as: %s %s\n",
			utils.DecorateText(filepath.Base(fname), utils.SuccessMessage),
			utils.DefaultColor,
		)
	}
}

// walkDir starts a new goroutine to walk the specified directory tree
// in recursive manner and sends the path of each regular file to a new channel.
// It finishes in case the done channel is getting closed.
func walkDir(
	done <-chan interface{},
	src string,
	srcExts []string,
) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		// Close the paths channel after Walk returns.
		defer close(pathChan)

		errChan <- filepath.Walk(src, func(path string, f os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !f.Mode().IsRegular() {
				return nil
			}
			if !utils.Contains(srcExts, strings.ToLower(filepath.Ext(f.Name()))) {
				return nil
			}

			select {
			case <-done:
				return errors.New("directory walk cancelled")
			case pathChan <- path:
			}
			return nil
		})
	}()
	return pathChan, errChan
}
