package state

// History is the ordered log of committed strokes plus a redo buffer.
// Appending a stroke discards the redo buffer; branches are not kept.
//
// A History is not safe for concurrent use. It is owned by a single
// board controller.
type History struct {
	committed []Stroke
	redo      []Stroke
}

func NewHistory() *History {
	return &History{}
}

// Append commits s and clears the redo buffer.
func (h *History) Append(s Stroke) {
	h.committed = append(h.committed, s.Clone())
	h.redo = nil
}

// Undo moves the newest committed stroke onto the redo buffer.
// It reports false when there is nothing to undo.
func (h *History) Undo() bool {
	n := len(h.committed)
	if n == 0 {
		return false
	}
	h.redo = append(h.redo, h.committed[n-1])
	h.committed[n-1] = Stroke{}
	h.committed = h.committed[:n-1]
	return true
}

// Redo moves the most recently undone stroke back onto the log.
// It reports false when the redo buffer is empty.
func (h *History) Redo() bool {
	n := len(h.redo)
	if n == 0 {
		return false
	}
	h.committed = append(h.committed, h.redo[n-1])
	h.redo[n-1] = Stroke{}
	h.redo = h.redo[:n-1]
	return true
}

// Clear empties both the log and the redo buffer.
func (h *History) Clear() {
	h.committed = nil
	h.redo = nil
}

// Replace swaps in a loaded drawing. The redo buffer is dropped.
func (h *History) Replace(strokes []Stroke) {
	h.committed = make([]Stroke, 0, len(strokes))
	for _, s := range strokes {
		h.committed = append(h.committed, s.Clone())
	}
	h.redo = nil
}

// Strokes returns the committed strokes in drawing order.
// The returned slice is a copy and may be kept by the caller.
func (h *History) Strokes() []Stroke {
	out := make([]Stroke, len(h.committed))
	copy(out, h.committed)
	return out
}

func (h *History) Len() int      { return len(h.committed) }
func (h *History) CanUndo() bool { return len(h.committed) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }
