package pixed

// Runner replays drawing input against an editor.
type Runner interface {
	Run(*Editor) error
}

var _ Runner = (*Script)(nil)

// Render runs r on a fresh editor configured by the processor and returns
// the editor holding the result. When a frame channel is set every change is
// forwarded to it.
func (p *Processor) Render(r Runner) (*Editor, error) {
	e := p.newEditor()
	if p.Frames != nil {
		remove := e.OnChange(func() { p.publish(e.Image()) })
		defer remove()
		p.publish(e.Image())
	}

	if err := r.Run(e); err != nil {
		return nil, err
	}
	if p.Frames != nil {
		p.publish(e.Image())
	}
	return e, nil
}
