package cursor

import "fmt"

// Position represents a location in a buffer.
// Line is 0-indexed; Column counts grapheme clusters from the start of the
// line, never bytes or runes. Positions are totally ordered by (Line, Column).
type Position struct {
	Line   int
	Column int
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Position) Compare(other Position) int {
	if p.Line != other.Line {
		if p.Line < other.Line {
			return -1
		}
		return 1
	}
	if p.Column != other.Column {
		if p.Column < other.Column {
			return -1
		}
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Position) After(other Position) bool {
	return p.Compare(other) > 0
}

// IsZero returns true if this is the zero position (0:0).
func (p Position) IsZero() bool {
	return p.Line == 0 && p.Column == 0
}

// Affinity disambiguates which side of a directional boundary a cursor
// leans toward. It is carried for future bidi-aware boundary handling and
// is not consumed by the movement functions.
type Affinity uint8

const (
	// Downstream prefers the right/forward side at boundaries.
	Downstream Affinity = iota
	// Upstream prefers the left/backward side at boundaries.
	Upstream
)

// String returns the affinity name.
func (a Affinity) String() string {
	if a == Upstream {
		return "upstream"
	}
	return "downstream"
}

// Cursor is an insertion point with affinity and an optional sticky column.
// StickyColumn preserves the desired column across vertical movement through
// shorter lines; a negative value means unset.
type Cursor struct {
	Position     Position
	Affinity     Affinity
	StickyColumn int
}

// NewCursor creates a cursor at the given position with default affinity
// and no sticky column.
func NewCursor(pos Position) Cursor {
	return Cursor{Position: pos, StickyColumn: -1}
}

// Granularity is the unit a selection snaps to.
type Granularity uint8

const (
	Character Granularity = iota
	Word
	Line
	Block
)

// String returns the granularity name.
func (g Granularity) String() string {
	switch g {
	case Character:
		return "character"
	case Word:
		return "word"
	case Line:
		return "line"
	case Block:
		return "block"
	default:
		return "unknown"
	}
}

// Selection is a region between an anchor and a cursor.
// When the anchor equals the cursor position the selection is collapsed.
type Selection struct {
	Anchor      Position
	Cursor      Cursor
	Granularity Granularity
}

// NewSelection creates a character-granularity selection from anchor to head.
func NewSelection(anchor, head Position) Selection {
	return Selection{Anchor: anchor, Cursor: NewCursor(head)}
}

// Collapsed creates a selection with no extent at the given position.
func Collapsed(pos Position) Selection {
	return Selection{Anchor: pos, Cursor: NewCursor(pos)}
}

// IsCollapsed returns true if no text is selected.
func (s Selection) IsCollapsed() bool {
	return s.Anchor == s.Cursor.Position
}

// Range returns the start and end positions of the selection in order.
func (s Selection) Range() (Position, Position) {
	if s.Anchor.Compare(s.Cursor.Position) <= 0 {
		return s.Anchor, s.Cursor.Position
	}
	return s.Cursor.Position, s.Anchor
}

// IsForward returns true if the cursor is at or after the anchor.
func (s Selection) IsForward() bool {
	return s.Cursor.Position.Compare(s.Anchor) >= 0
}

// SelectionSet manages multiple selections with one primary.
// The primary index is always valid; removing secondary selections never
// invalidates it.
type SelectionSet struct {
	primary    int
	selections []Selection
}

// NewSelectionSet creates a set with a single primary selection.
func NewSelectionSet(sel Selection) *SelectionSet {
	return &SelectionSet{selections: []Selection{sel}}
}

// Primary returns the primary selection.
func (ss *SelectionSet) Primary() Selection {
	return ss.selections[ss.primary]
}

// SetPrimary replaces the primary selection.
func (ss *SelectionSet) SetPrimary(sel Selection) {
	ss.selections[ss.primary] = sel
}

// PrimaryIndex returns the index of the primary selection.
func (ss *SelectionSet) PrimaryIndex() int {
	return ss.primary
}

// Selections returns all selections, primary included.
func (ss *SelectionSet) Selections() []Selection {
	return ss.selections
}

// Len returns the number of selections.
func (ss *SelectionSet) Len() int {
	return len(ss.selections)
}

// Add appends a secondary selection.
func (ss *SelectionSet) Add(sel Selection) {
	ss.selections = append(ss.selections, sel)
}

// ClearSecondary removes every selection except the primary, which becomes
// index 0.
func (ss *SelectionSet) ClearSecondary() {
	if ss.primary != 0 {
		ss.selections[0] = ss.selections[ss.primary]
		ss.primary = 0
	}
	ss.selections = ss.selections[:1]
}

// MergeOverlapping merges selections whose ranges overlap or touch.
// The primary index follows the merged selection that covers the old
// primary's range.
func (ss *SelectionSet) MergeOverlapping() {
	if len(ss.selections) <= 1 {
		return
	}

	order := make([]int, len(ss.selections))
	for i := range order {
		order[i] = i
	}
	for i := 1; i < len(order); i++ {
		for j := i; j > 0; j-- {
			a, _ := ss.selections[order[j-1]].Range()
			b, _ := ss.selections[order[j]].Range()
			if b.Before(a) {
				order[j-1], order[j] = order[j], order[j-1]
			} else {
				break
			}
		}
	}

	oldPrimaryStart, oldPrimaryEnd := ss.selections[ss.primary].Range()

	merged := make([]Selection, 0, len(ss.selections))
	current := ss.selections[order[0]]
	for _, idx := range order[1:] {
		sel := ss.selections[idx]
		curStart, curEnd := current.Range()
		selStart, selEnd := sel.Range()

		if selStart.Compare(curEnd) <= 0 {
			end := curEnd
			if selEnd.After(end) {
				end = selEnd
			}
			current = NewSelection(curStart, end)
		} else {
			merged = append(merged, current)
			current = sel
		}
	}
	merged = append(merged, current)

	ss.primary = 0
	for i, sel := range merged {
		start, end := sel.Range()
		if start.Compare(oldPrimaryStart) <= 0 && end.Compare(oldPrimaryEnd) >= 0 {
			ss.primary = i
			break
		}
	}
	ss.selections = merged
}
