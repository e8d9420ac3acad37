package pixed

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pixelkit/pixed/utils"
)

var (
	// ErrUnknownCommand is returned for a script line naming no known command.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrArgCount is returned when a command gets the wrong number of arguments.
	ErrArgCount = errors.New("wrong number of arguments")
)

// maxScriptLine caps the length of one script line. Recorded strokes can
// carry thousands of points.
const maxScriptLine = 16 << 20

// ScriptError reports the script line a parse or replay error occurred on.
type ScriptError struct {
	Line int
	Err  error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}

// command is a single parsed script line.
type command struct {
	line int
	name string
	args []string
}

// commandSpec describes the arity and the effect of a script command.
type commandSpec struct {
	minArgs int
	maxArgs int // -1 means unbounded
	run     func(e *Editor, args []string) error
}

var commands map[string]commandSpec

func init() {
	commands = map[string]commandSpec{
		"canvas":   {2, 2, runCanvas},
		"load":     {1, 1, runLoad},
		"tool":     {1, 1, runTool},
		"brush":    {1, 3, runBrush},
		"color":    {1, 1, runColor},
		"down":     {2, 2, runDown},
		"move":     {2, 2, runMove},
		"up":       {0, 0, func(e *Editor, _ []string) error { e.PointerUp(); return nil }},
		"stroke":   {2, -1, runStroke},
		"fill":     {2, 2, runFill},
		"clear":    {0, 0, func(e *Editor, _ []string) error { e.Clear(); return nil }},
		"undo":     {0, 0, func(e *Editor, _ []string) error { e.Undo(); return nil }},
		"redo":     {0, 0, func(e *Editor, _ []string) error { e.Redo(); return nil }},
		"symmetry": {1, 1, runSymmetry},
		"mirror":   {1, 3, runMirror},
		"preset":   {1, 1, runPreset},
	}
}

// Script is a parsed drawing script.
type Script struct {
	cmds []command
}

// ParseScript reads a drawing script: one command per line, fields separated
// by white space, '#' starting a comment. Unknown commands and wrong argument
// counts are reported as *ScriptError.
func ParseScript(r io.Reader) (*Script, error) {
	var (
		sc   = bufio.NewScanner(r)
		s    = &Script{}
		line int
	)
	sc.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxScriptLine)
	for sc.Scan() {
		line++
		fields := stripComment(strings.Fields(sc.Text()))
		if len(fields) == 0 {
			continue
		}
		name := strings.ToLower(fields[0])
		def, ok := commands[name]
		if !ok {
			return nil, &ScriptError{Line: line, Err: fmt.Errorf("%w %q", ErrUnknownCommand, fields[0])}
		}
		args := fields[1:]
		if len(args) < def.minArgs || (def.maxArgs >= 0 && len(args) > def.maxArgs) {
			return nil, &ScriptError{Line: line, Err: fmt.Errorf("%s: %w (%d)", name, ErrArgCount, len(args))}
		}
		s.cmds = append(s.cmds, command{line: line, name: name, args: args})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("could not read the script: %w", err)
	}
	return s, nil
}

// stripComment drops the fields from the first one starting with '#'.
// The argument of a color command is a hex color, not a comment.
func stripComment(fields []string) []string {
	for i, f := range fields {
		if !strings.HasPrefix(f, "#") {
			continue
		}
		if i == 1 && strings.EqualFold(fields[0], "color") {
			continue
		}
		return fields[:i]
	}
	return fields
}

// Len returns the number of commands in the script.
func (s *Script) Len() int {
	return len(s.cmds)
}

// Run replays the script against the editor. It stops at the first failing
// command and reports its line. A stroke left open at the end is finished.
func (s *Script) Run(e *Editor) error {
	for _, c := range s.cmds {
		if err := commands[c.name].run(e, c.args); err != nil {
			return &ScriptError{Line: c.line, Err: fmt.Errorf("%s: %w", c.name, err)}
		}
	}
	e.PointerUp()
	return nil
}

func parseInts(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", a)
		}
		out[i] = v
	}
	return out, nil
}

func runCanvas(e *Editor, args []string) error {
	v, err := parseInts(args)
	if err != nil {
		return err
	}
	e.Resize(v[0], v[1])
	return nil
}

func runLoad(e *Editor, args []string) error {
	img, err := decodeImg(args[0])
	if err != nil {
		return err
	}
	if !e.LoadImage(img) {
		b := img.Bounds()
		return fmt.Errorf("image of %dx%d exceeds the %dx%d limit", b.Dx(), b.Dy(), MaxDimension, MaxDimension)
	}
	return nil
}

func runTool(e *Editor, args []string) error {
	t, err := ParseTool(args[0])
	if err != nil {
		return err
	}
	e.SetTool(t)
	return nil
}

func runBrush(e *Editor, args []string) error {
	size, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid brush size %q", args[0])
	}
	shape := e.Brush().Shape
	if len(args) > 1 {
		if shape, err = ParseShape(args[1]); err != nil {
			return err
		}
	}
	perfect := false
	if len(args) > 2 {
		if !strings.EqualFold(args[2], "perfect") {
			return fmt.Errorf("unexpected brush option %q", args[2])
		}
		perfect = true
	}
	e.SetBrush(size, shape, perfect)
	return nil
}

func runColor(e *Editor, args []string) error {
	c, err := utils.HexToRGBA(args[0])
	if err != nil {
		return err
	}
	e.SetColor(c)
	return nil
}

func runDown(e *Editor, args []string) error {
	v, err := parseInts(args)
	if err != nil {
		return err
	}
	e.PointerDown(v[0], v[1])
	return nil
}

func runMove(e *Editor, args []string) error {
	v, err := parseInts(args)
	if err != nil {
		return err
	}
	e.PointerMove(v[0], v[1])
	return nil
}

func runStroke(e *Editor, args []string) error {
	if len(args)%2 != 0 {
		return fmt.Errorf("%w: coordinates must come in pairs", ErrArgCount)
	}
	v, err := parseInts(args)
	if err != nil {
		return err
	}
	e.PointerDown(v[0], v[1])
	for i := 2; i < len(v); i += 2 {
		e.PointerMove(v[i], v[i+1])
	}
	e.PointerUp()
	return nil
}

func runFill(e *Editor, args []string) error {
	v, err := parseInts(args)
	if err != nil {
		return err
	}
	e.FillAt(v[0], v[1])
	return nil
}

func runSymmetry(e *Editor, args []string) error {
	switch strings.ToLower(args[0]) {
	case "on":
		e.Symmetry().SetEnabled(true)
	case "off":
		e.Symmetry().SetEnabled(false)
	default:
		return fmt.Errorf("expected on or off, got %q", args[0])
	}
	return nil
}

func runMirror(e *Editor, args []string) error {
	if len(args) == 2 {
		return fmt.Errorf("%w: the line center needs both coordinates", ErrArgCount)
	}
	vals := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", a)
		}
		vals[i] = v
	}
	i, ok := e.Symmetry().AddLine(vals[0])
	if !ok {
		return fmt.Errorf("at most %d mirror lines are supported", MaxLines)
	}
	if len(vals) == 3 {
		e.Symmetry().MoveLine(i, vals[1], vals[2])
	}
	return nil
}

func runPreset(e *Editor, args []string) error {
	p, err := ParsePreset(args[0])
	if err != nil {
		return err
	}
	e.Symmetry().ApplyPreset(p)
	return nil
}
