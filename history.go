package pixed

// DefaultHistoryDepth is the number of snapshots kept when none is configured.
const DefaultHistoryDepth = 100

// Snapshot is a full copy of a surface buffer at an operation boundary.
type Snapshot struct {
	Width  int
	Height int
	Pix    []uint8
}

func (s *Snapshot) clone() *Snapshot {
	pix := make([]uint8, len(s.Pix))
	copy(pix, s.Pix)
	return &Snapshot{Width: s.Width, Height: s.Height, Pix: pix}
}

// History is a bounded snapshot undo/redo stack. The bottom entry of the
// undo stack is the baseline and is never popped.
type History struct {
	maxDepth int
	undo     []*Snapshot
	redo     []*Snapshot
}

// NewHistory returns an empty history keeping at most maxDepth snapshots.
// A maxDepth below 1 selects DefaultHistoryDepth.
func NewHistory(maxDepth int) *History {
	if maxDepth < 1 {
		maxDepth = DefaultHistoryDepth
	}
	return &History{maxDepth: maxDepth}
}

// Push records a copy of the surface buffer, clears the redo stack and
// evicts the oldest snapshots beyond the maximum depth.
func (h *History) Push(s *Surface) {
	h.undo = append(h.undo, &Snapshot{Width: s.Width(), Height: s.Height(), Pix: s.Pix()})
	clear(h.redo)
	h.redo = h.redo[:0]

	if over := len(h.undo) - h.maxDepth; over > 0 {
		n := copy(h.undo, h.undo[over:])
		clear(h.undo[n:])
		h.undo = h.undo[:n]
	}
	Logger().Debug("history push", "depth", len(h.undo), "width", s.Width(), "height", s.Height())
}

// Undo moves the top snapshot to the redo stack and returns a copy of the
// new top. It returns nil when only the baseline remains.
func (h *History) Undo() *Snapshot {
	if !h.CanUndo() {
		return nil
	}
	top := h.undo[len(h.undo)-1]
	h.undo[len(h.undo)-1] = nil
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, top)
	return h.undo[len(h.undo)-1].clone()
}

// Redo moves the most recently undone snapshot back to the undo stack and
// returns a copy of it. It returns nil when there is nothing to redo.
func (h *History) Redo() *Snapshot {
	if !h.CanRedo() {
		return nil
	}
	top := h.redo[len(h.redo)-1]
	h.redo[len(h.redo)-1] = nil
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, top)
	return top.clone()
}

// CanUndo reports whether a snapshot above the baseline exists.
func (h *History) CanUndo() bool { return len(h.undo) > 1 }

// CanRedo reports whether an undone snapshot can be restored.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Len returns the number of snapshots on the undo stack, baseline included.
func (h *History) Len() int { return len(h.undo) }

// Clear drops every snapshot, baseline included.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}
