package history

import (
	"time"

	"github.com/Hillel-Nagid/typst-studio/internal/engine/cursor"
)

// Position is an alias for cursor.Position for convenience.
type Position = cursor.Position

// mergeWindow is the longest gap between two insertions that still merge
// into one undo step.
const mergeWindow = 1000 * time.Millisecond

// OpKind identifies the kind of an edit operation.
type OpKind uint8

const (
	OpInsert OpKind = iota
	OpDelete
	OpReplace
)

// String returns the operation kind name.
func (k OpKind) String() string {
	switch k {
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// kindFromString parses an operation kind name.
func kindFromString(s string) (OpKind, bool) {
	switch s {
	case "insert":
		return OpInsert, true
	case "delete":
		return OpDelete, true
	case "replace":
		return OpReplace, true
	default:
		return 0, false
	}
}

// Operation is a single recorded edit. Kind selects which fields are
// meaningful: Insert carries InsertedText only, Delete carries End and
// DeletedText, Replace carries End and both texts. Every consumer switches
// exhaustively on Kind.
type Operation struct {
	Kind  OpKind
	Start Position
	End   Position // Delete/Replace only

	InsertedText string // Insert/Replace only
	DeletedText  string // Delete/Replace only

	CursorBefore Position
	CursorAfter  Position
	Timestamp    time.Time
}

// NewInsert creates an insert operation starting at pos.
func NewInsert(pos Position, text string, cursorAfter Position) Operation {
	return Operation{
		Kind:         OpInsert,
		Start:        pos,
		InsertedText: text,
		CursorBefore: pos,
		CursorAfter:  cursorAfter,
		Timestamp:    time.Now(),
	}
}

// NewDelete creates a delete operation covering [start, end).
func NewDelete(start, end Position, deletedText string, cursorAfter Position) Operation {
	return Operation{
		Kind:         OpDelete,
		Start:        start,
		End:          end,
		DeletedText:  deletedText,
		CursorBefore: start,
		CursorAfter:  cursorAfter,
		Timestamp:    time.Now(),
	}
}

// NewReplace creates a replace operation covering [start, end).
func NewReplace(start, end Position, deletedText, insertedText string, cursorAfter Position) Operation {
	return Operation{
		Kind:         OpReplace,
		Start:        start,
		End:          end,
		InsertedText: insertedText,
		DeletedText:  deletedText,
		CursorBefore: start,
		CursorAfter:  cursorAfter,
		Timestamp:    time.Now(),
	}
}

// CanMergeWith reports whether next can be folded into this operation:
// both must be insertions, at most mergeWindow apart, and next must start
// exactly where this operation left the cursor.
func (op Operation) CanMergeWith(next Operation) bool {
	if op.Kind != OpInsert || next.Kind != OpInsert {
		return false
	}
	if next.Timestamp.Sub(op.Timestamp) > mergeWindow {
		return false
	}
	return op.CursorAfter == next.Start
}

// Merge folds next into this operation, extending the inserted text and
// adopting next's cursor and timestamp.
func (op *Operation) Merge(next Operation) {
	op.InsertedText += next.InsertedText
	op.CursorAfter = next.CursorAfter
	op.Timestamp = next.Timestamp
}
