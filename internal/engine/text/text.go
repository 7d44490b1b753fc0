// Package text provides the character-indexed storage underlying a buffer.
//
// All offsets in this package are rune (Unicode scalar value) indices, not
// byte offsets. Lines are delimited by '\n'; the text has one more line than
// it has newlines, so an empty store still reports a single empty line and a
// trailing newline produces a final empty line. Line text includes the
// delimiter, which keeps end-of-line positions addressable.
package text

import (
	"sort"
	"unicode/utf8"
)

// Text is a mutable character-indexed string with a line index.
// It is not safe for concurrent use; the owning buffer serializes access.
type Text struct {
	runes      []rune
	lineStarts []int // rune offset of each line start; always begins with 0
}

// New creates an empty text store.
func New() *Text {
	return &Text{lineStarts: []int{0}}
}

// FromString creates a text store with initial content.
func FromString(s string) *Text {
	t := &Text{runes: []rune(s)}
	t.reindex()
	return t
}

// reindex rebuilds the line-start table from the rune content.
func (t *Text) reindex() {
	t.lineStarts = t.lineStarts[:0]
	t.lineStarts = append(t.lineStarts, 0)
	for i, r := range t.runes {
		if r == '\n' {
			t.lineStarts = append(t.lineStarts, i+1)
		}
	}
}

// String returns the full content.
func (t *Text) String() string {
	return string(t.runes)
}

// LenChars returns the total number of runes.
func (t *Text) LenChars() int {
	return len(t.runes)
}

// LenBytes returns the total UTF-8 encoded size.
func (t *Text) LenBytes() int {
	n := 0
	for _, r := range t.runes {
		n += utf8.RuneLen(r)
	}
	return n
}

// LenLines returns the number of lines (newline count + 1).
func (t *Text) LenLines() int {
	return len(t.lineStarts)
}

// IsEmpty returns true if the store holds no text.
func (t *Text) IsEmpty() bool {
	return len(t.runes) == 0
}

// Line returns the text of a line, including its trailing newline if any.
// Out-of-range lines yield the empty string.
func (t *Text) Line(line int) string {
	if line < 0 || line >= len(t.lineStarts) {
		return ""
	}
	start := t.lineStarts[line]
	end := len(t.runes)
	if line+1 < len(t.lineStarts) {
		end = t.lineStarts[line+1]
	}
	return string(t.runes[start:end])
}

// LineToChar returns the rune offset of the start of a line.
// Lines past the end map to the end of the text.
func (t *Text) LineToChar(line int) int {
	if line < 0 {
		return 0
	}
	if line >= len(t.lineStarts) {
		return len(t.runes)
	}
	return t.lineStarts[line]
}

// CharToLine returns the line containing the given rune offset.
// The end-of-text offset maps to the last line.
func (t *Text) CharToLine(idx int) int {
	if idx <= 0 {
		return 0
	}
	if idx > len(t.runes) {
		idx = len(t.runes)
	}
	// First line whose start is beyond idx, minus one.
	n := sort.Search(len(t.lineStarts), func(i int) bool {
		return t.lineStarts[i] > idx
	})
	return n - 1
}

// Slice returns the text in the rune range [start, end).
// The range is clamped to the valid extent.
func (t *Text) Slice(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(t.runes) {
		end = len(t.runes)
	}
	if start >= end {
		return ""
	}
	return string(t.runes[start:end])
}

// Insert inserts s at the given rune offset. The offset is clamped.
func (t *Text) Insert(idx int, s string) {
	if s == "" {
		return
	}
	if idx < 0 {
		idx = 0
	}
	if idx > len(t.runes) {
		idx = len(t.runes)
	}
	ins := []rune(s)
	t.runes = append(t.runes[:idx], append(ins, t.runes[idx:]...)...)
	t.reindex()
}

// Delete removes the rune range [start, end). The range is clamped.
func (t *Text) Delete(start, end int) {
	if start < 0 {
		start = 0
	}
	if end > len(t.runes) {
		end = len(t.runes)
	}
	if start >= end {
		return
	}
	t.runes = append(t.runes[:start], t.runes[end:]...)
	t.reindex()
}
