package pianoroll

// Command pairs whole-clip before/after snapshots with a human-readable
// label. It is the atomic unit of undo/redo; deltas are never stored.
type Command struct {
	before *Clip
	after  *Clip
	label  string
}

// Label returns the command's display label.
func (c Command) Label() string {
	return c.label
}

// History is a snapshot-based undo/redo stack owned by one editing session.
// State re-enters the model only through the apply callback, which must be
// idempotent and must not push commands itself.
type History struct {
	undo    []Command
	redo    []Command
	pending *Clip
	apply   func(*Clip)
}

// NewHistory creates a command log that re-applies snapshots via apply.
func NewHistory(apply func(*Clip)) *History {
	return &History{apply: apply}
}

// Save captures the pre-mutation snapshot for the command that Commit will
// package. Calling Save again before Commit replaces the snapshot.
func (h *History) Save(clip *Clip) {
	h.pending = clip.Clone()
}

// Discard drops a saved snapshot without committing, for gestures that end
// up changing nothing.
func (h *History) Discard() {
	h.pending = nil
}

// Commit packages the saved before-state and the current clip into one
// command, pushes it, and clears the redo stack. Structurally equal
// before/after pairs are still recorded. Without a prior Save this is a
// no-op.
func (h *History) Commit(clip *Clip, label string) {
	if h.pending == nil {
		return
	}
	h.undo = append(h.undo, Command{before: h.pending, after: clip.Clone(), label: label})
	h.redo = nil
	h.pending = nil
}

// Undo re-applies the newest command's before-state. Underflow is a no-op.
func (h *History) Undo() bool {
	if len(h.undo) == 0 {
		return false
	}
	cmd := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, cmd)
	h.apply(cmd.before.Clone())
	return true
}

// Redo re-applies the newest undone command's after-state.
func (h *History) Redo() bool {
	if len(h.redo) == 0 {
		return false
	}
	cmd := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, cmd)
	h.apply(cmd.after.Clone())
	return true
}

// CanUndo reports whether the undo stack is non-empty.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether the redo stack is non-empty.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// UndoLabel returns the label of the command Undo would revert.
func (h *History) UndoLabel() string {
	if len(h.undo) == 0 {
		return ""
	}
	return h.undo[len(h.undo)-1].label
}
