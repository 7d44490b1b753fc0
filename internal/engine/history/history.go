// Package history records buffer edits as mergeable operation groups and
// drives undo and redo. It tracks what happened, not how to apply it; the
// owning buffer replays the returned groups against its own text.
package history

import "errors"

// DefaultMaxOperations bounds the undo stack when no limit is given.
const DefaultMaxOperations = 1000

// History errors.
var (
	// ErrNothingToUndo is returned when the undo stack is empty.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo is returned when the redo stack is empty.
	ErrNothingToRedo = errors.New("nothing to redo")
)

// History holds the undo and redo stacks for one buffer. It is not safe
// for concurrent use; the owning buffer serializes access.
type History struct {
	undoStack []*Group
	redoStack []*Group
	current   *Group
	maxOps    int
}

// New creates a history bounded to maxOperations undo groups. A
// non-positive limit selects DefaultMaxOperations.
func New(maxOperations int) *History {
	if maxOperations <= 0 {
		maxOperations = DefaultMaxOperations
	}
	return &History{maxOps: maxOperations}
}

// Record adds an operation to the history and clears the redo stack. The
// operation merges into the open group's trailing operation when the merge
// rule allows; otherwise the open group is sealed and a new one starts.
// Only the trailing operation is ever a merge candidate.
func (h *History) Record(op Operation) {
	h.redoStack = nil

	if h.current != nil {
		if h.current.CanMergeWith(op) {
			h.current.Merge(op)
			return
		}
		h.sealCurrent()
	}
	h.current = NewGroup(op)
}

// CreateBoundary seals the open group so the next operation starts a new
// undo step. A boundary with no open group is a no-op.
func (h *History) CreateBoundary() {
	h.sealCurrent()
}

// sealCurrent pushes the open group onto the undo stack and enforces the
// size limit by evicting the oldest groups.
func (h *History) sealCurrent() {
	if h.current == nil {
		return
	}
	h.undoStack = append(h.undoStack, h.current)
	h.current = nil

	if excess := len(h.undoStack) - h.maxOps; excess > 0 {
		h.undoStack = append(h.undoStack[:0], h.undoStack[excess:]...)
	}
}

// Undo pops the most recent group, moves it to the redo stack, and returns
// it for the caller to reverse. The open group counts as the most recent.
func (h *History) Undo() (*Group, error) {
	h.sealCurrent()

	if len(h.undoStack) == 0 {
		return nil, ErrNothingToUndo
	}

	group := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, group)
	return group.Clone(), nil
}

// Redo pops the most recently undone group, moves it back to the undo
// stack, and returns it for the caller to reapply.
func (h *History) Redo() (*Group, error) {
	if len(h.redoStack) == 0 {
		return nil, ErrNothingToRedo
	}

	group := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, group)
	return group.Clone(), nil
}

// CanUndo reports whether an undo step is available.
func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0 || h.current != nil
}

// CanRedo reports whether a redo step is available.
func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// UndoCount returns the number of sealed undo groups.
func (h *History) UndoCount() int {
	return len(h.undoStack)
}

// RedoCount returns the number of redo groups.
func (h *History) RedoCount() int {
	return len(h.redoStack)
}

// Clear discards all history.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
	h.current = nil
}
