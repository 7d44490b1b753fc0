package buffer

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/rivo/uniseg"

	"github.com/Hillel-Nagid/typst-studio/internal/engine/cursor"
	"github.com/Hillel-Nagid/typst-studio/internal/engine/history"
	"github.com/Hillel-Nagid/typst-studio/internal/engine/text"
	"github.com/Hillel-Nagid/typst-studio/internal/engine/words"
)

// Position is an alias for cursor.Position for convenience.
type Position = cursor.Position

// Buffer is a mutable text document addressed by line and grapheme-cluster
// column. Every mutation is recorded for undo, bumps the version exactly
// once, and marks the buffer dirty. All methods are safe for concurrent
// use.
type Buffer struct {
	mu         sync.RWMutex
	id         ID
	text       *text.Text
	path       string
	version    Version
	dirty      bool
	readOnly   bool
	lineEnding LineEnding
	maxUndoOps int
	history    *history.History
}

// New creates an empty buffer.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		id:         NewID(),
		text:       text.New(),
		lineEnding: platformLineEnding(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.history = history.New(b.maxUndoOps)
	return b
}

// FromText creates a buffer with initial content. Line endings are
// detected from the content and normalized to \n internally; the detected
// style is restored on save.
func FromText(s string, opts ...Option) *Buffer {
	withDetect := append([]Option{WithLineEnding(DetectLineEnding(s))}, opts...)
	b := New(withDetect...)
	b.text = text.FromString(normalizeToLF(s))
	return b
}

// FromFile creates a buffer from a file on disk.
func FromFile(path string, opts ...Option) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	b := FromText(string(data), opts...)
	b.path = path
	return b, nil
}

// Read Operations

// ID returns the buffer's process-unique ID.
func (b *Buffer) ID() ID {
	return b.id
}

// Text returns the full buffer content.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text.String()
}

// TextRange returns the content between two positions.
func (b *Buffer) TextRange(start, end Position) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	startIdx, endIdx, err := b.rangeToCharIdx(start, end)
	if err != nil {
		return "", err
	}
	return b.text.Slice(startIdx, endIdx), nil
}

// Line returns the content of a line without its trailing newline. Out of
// range lines are empty.
func (b *Buffer) Line(line int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineContent(line)
}

// LenLines returns the number of lines. An empty buffer has one line; a
// trailing newline opens a final empty line.
func (b *Buffer) LenLines() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text.LenLines()
}

// LenChars returns the buffer length in runes.
func (b *Buffer) LenChars() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text.LenChars()
}

// LenBytes returns the buffer length in UTF-8 bytes.
func (b *Buffer) LenBytes() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text.LenBytes()
}

// IsEmpty reports whether the buffer has no content.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text.IsEmpty()
}

// Buffer State

// Path returns the associated file path, empty for scratch buffers.
func (b *Buffer) Path() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.path
}

// Version returns the current content version.
func (b *Buffer) Version() Version {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}

// Dirty reports whether the buffer has unsaved changes.
func (b *Buffer) Dirty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dirty
}

// ReadOnly reports whether mutations are rejected.
func (b *Buffer) ReadOnly() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.readOnly
}

// SetReadOnly toggles the read-only flag.
func (b *Buffer) SetReadOnly(ro bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.readOnly = ro
}

// LineEnding returns the line ending style written on save.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// Metrics summarizes the buffer state.
type Metrics struct {
	Lines   int
	Chars   int
	Bytes   int
	Version Version
	Dirty   bool
}

// Metrics returns the buffer's size counters and state flags.
func (b *Buffer) Metrics() Metrics {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return Metrics{
		Lines:   b.text.LenLines(),
		Chars:   b.text.LenChars(),
		Bytes:   b.text.LenBytes(),
		Version: b.version,
		Dirty:   b.dirty,
	}
}

// Coordinate Conversion

// PositionToCharIdx converts a line/column position to a rune offset. The
// column counts grapheme clusters; a column one past the line's last
// visible cluster addresses the newline.
func (b *Buffer) PositionToCharIdx(pos Position) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.positionToCharIdx(pos)
}

// CharIdxToPosition converts a rune offset to a line/column position.
func (b *Buffer) CharIdxToPosition(idx int) (Position, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if idx < 0 || idx > b.text.LenChars() {
		return Position{}, fmt.Errorf("%w: char index %d", ErrInvalidPosition, idx)
	}
	return b.charIdxToPosition(idx), nil
}

// Write Operations

// Insert inserts text at a position and returns the position just past
// the insertion.
func (b *Buffer) Insert(pos Position, s string) (Position, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.readOnly {
		return Position{}, ErrReadOnly
	}
	idx, err := b.positionToCharIdx(pos)
	if err != nil {
		return Position{}, err
	}

	s = normalizeToLF(s)
	if s == "" {
		return pos, nil
	}

	b.text.Insert(idx, s)
	after := advancePosition(pos, s)
	b.history.Record(history.NewInsert(pos, s, after))
	b.commit()
	return after, nil
}

// Delete removes the content in [start, end) and returns the deleted text.
func (b *Buffer) Delete(start, end Position) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.readOnly {
		return "", ErrReadOnly
	}
	return b.deleteRange(start, end)
}

// Replace swaps the content in [start, end) for new text and returns the
// position just past the replacement.
func (b *Buffer) Replace(start, end Position, s string) (Position, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.readOnly {
		return Position{}, ErrReadOnly
	}
	startIdx, endIdx, err := b.rangeToCharIdx(start, end)
	if err != nil {
		return Position{}, err
	}

	s = normalizeToLF(s)
	deleted := b.text.Slice(startIdx, endIdx)
	b.text.Delete(startIdx, endIdx)
	b.text.Insert(startIdx, s)

	after := advancePosition(start, s)
	b.history.Record(history.NewReplace(start, end, deleted, s, after))
	b.commit()
	return after, nil
}

// Backspace deletes the grapheme cluster before the position. At the start
// of a line it joins with the previous line; at the start of the buffer it
// is a no-op.
func (b *Buffer) Backspace(pos Position) (Position, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.readOnly {
		return Position{}, ErrReadOnly
	}
	if _, err := b.positionToCharIdx(pos); err != nil {
		return Position{}, err
	}
	if pos.Line == 0 && pos.Column == 0 {
		return pos, nil
	}

	var prev Position
	if pos.Column > 0 {
		prev = Position{Line: pos.Line, Column: pos.Column - 1}
	} else {
		prevLine := pos.Line - 1
		prev = Position{Line: prevLine, Column: uniseg.GraphemeClusterCount(b.lineContent(prevLine))}
	}

	if _, err := b.deleteRange(prev, pos); err != nil {
		return Position{}, err
	}
	return prev, nil
}

// DeleteForward deletes the grapheme cluster at the position; the cursor
// stays put. At the end of a line it deletes the newline, joining the next
// line; at the end of the buffer it is a no-op. The deleted text is
// recorded on the undo operation.
func (b *Buffer) DeleteForward(pos Position) (Position, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.readOnly {
		return Position{}, ErrReadOnly
	}
	if _, err := b.positionToCharIdx(pos); err != nil {
		return Position{}, err
	}

	var end Position
	if pos.Column < uniseg.GraphemeClusterCount(b.lineContent(pos.Line)) {
		end = Position{Line: pos.Line, Column: pos.Column + 1}
	} else if pos.Line+1 < b.text.LenLines() {
		end = Position{Line: pos.Line + 1, Column: 0}
	} else {
		return pos, nil
	}

	if _, err := b.deleteRange(pos, end); err != nil {
		return Position{}, err
	}
	return pos, nil
}

// Undo

// Undo reverses the most recent operation group and returns the cursor
// position from before it. Replay mutates the text directly and is never
// itself recorded.
func (b *Buffer) Undo() (Position, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	group, err := b.history.Undo()
	if err != nil {
		return Position{}, err
	}

	var pos Position
	for i := len(group.Operations) - 1; i >= 0; i-- {
		pos = b.revertOperation(group.Operations[i])
	}
	b.commit()
	return pos, nil
}

// Redo reapplies the most recently undone group and returns the cursor
// position from after it.
func (b *Buffer) Redo() (Position, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	group, err := b.history.Redo()
	if err != nil {
		return Position{}, err
	}

	var pos Position
	for _, op := range group.Operations {
		pos = b.applyOperation(op)
	}
	b.commit()
	return pos, nil
}

// CanUndo reports whether an undo step is available.
func (b *Buffer) CanUndo() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.history.CanUndo()
}

// CanRedo reports whether a redo step is available.
func (b *Buffer) CanRedo() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.history.CanRedo()
}

// CreateUndoBoundary seals the open operation group so the next edit
// starts a new undo step.
func (b *Buffer) CreateUndoBoundary() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.history.CreateBoundary()
}

// ClearUndoHistory discards all undo and redo state.
func (b *Buffer) ClearUndoHistory() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.history.Clear()
}

// EncodeHistory serializes the undo history to JSON.
func (b *Buffer) EncodeHistory() (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.history.Encode()
}

// RestoreHistory replaces the undo history with one decoded from JSON.
func (b *Buffer) RestoreHistory(data string) error {
	h, err := history.Decode(data)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.history = h
	return nil
}

// Word Boundaries

// NextWordBoundary returns the first word boundary after the position on
// its line, the start of the next line when the line has none, or the line
// end at the bottom of the buffer. Word characters are letters, numbers,
// and underscore, so apostrophes and hyphens count as boundaries.
func (b *Buffer) NextWordBoundary(pos Position) Position {
	b.mu.RLock()
	defer b.mu.RUnlock()

	line := clampLine(pos.Line, b.text.LenLines())
	finder := words.NewFinder(b.lineContent(line), words.WithSimpleWords())
	if next, ok := finder.NextWordBoundary(pos.Column); ok {
		return Position{Line: line, Column: next}
	}
	if line+1 < b.text.LenLines() {
		return Position{Line: line + 1}
	}
	return Position{Line: line, Column: finder.Len()}
}

// PrevWordBoundary returns the last word boundary before the position on
// its line, the end of the previous line when the line has none, or the
// line start at the top of the buffer.
func (b *Buffer) PrevWordBoundary(pos Position) Position {
	b.mu.RLock()
	defer b.mu.RUnlock()

	line := clampLine(pos.Line, b.text.LenLines())
	finder := words.NewFinder(b.lineContent(line), words.WithSimpleWords())
	if prev, ok := finder.PrevWordBoundary(pos.Column); ok {
		return Position{Line: line, Column: prev}
	}
	if line > 0 {
		content := b.lineContent(line - 1)
		return Position{Line: line - 1, Column: uniseg.GraphemeClusterCount(content)}
	}
	return Position{Line: line}
}

// Persistence

// Save writes the buffer to its associated path, converting line endings
// to the buffer's style. A scratch buffer with no path fails with an error
// wrapping os.ErrNotExist.
func (b *Buffer) Save() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.path == "" {
		return fmt.Errorf("buffer has no file path: %w", os.ErrNotExist)
	}
	return b.saveTo(b.path)
}

// SaveAs writes the buffer to a new path and adopts it.
func (b *Buffer) SaveAs(path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.saveTo(path); err != nil {
		return err
	}
	b.path = path
	return nil
}

// saveTo writes the content to disk and clears the dirty flag. Caller must
// hold the lock.
func (b *Buffer) saveTo(path string) error {
	data := applyLineEnding(b.text.String(), b.lineEnding)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	b.dirty = false
	return nil
}

// Internal

// commit marks a completed mutation: one version bump, dirty set. Caller
// must hold the lock.
func (b *Buffer) commit() {
	b.version++
	b.dirty = true
}

// deleteRange removes [start, end) and records the operation. Caller must
// hold the lock.
func (b *Buffer) deleteRange(start, end Position) (string, error) {
	startIdx, endIdx, err := b.rangeToCharIdx(start, end)
	if err != nil {
		return "", err
	}
	if startIdx == endIdx {
		return "", nil
	}

	deleted := b.text.Slice(startIdx, endIdx)
	b.text.Delete(startIdx, endIdx)
	b.history.Record(history.NewDelete(start, end, deleted, start))
	b.commit()
	return deleted, nil
}

// rangeToCharIdx validates and converts a position range. Caller must hold
// the lock.
func (b *Buffer) rangeToCharIdx(start, end Position) (int, int, error) {
	if end.Before(start) {
		return 0, 0, invalidRange(start, end)
	}
	startIdx, err := b.positionToCharIdx(start)
	if err != nil {
		return 0, 0, err
	}
	endIdx, err := b.positionToCharIdx(end)
	if err != nil {
		return 0, 0, err
	}
	return startIdx, endIdx, nil
}

// positionToCharIdx converts a position to a rune offset. Caller must hold
// the lock.
func (b *Buffer) positionToCharIdx(pos Position) (int, error) {
	if pos.Line < 0 || pos.Line >= b.text.LenLines() || pos.Column < 0 {
		return 0, invalidPosition(pos)
	}
	content := b.lineContent(pos.Line)
	if pos.Column > uniseg.GraphemeClusterCount(content) {
		return 0, invalidPosition(pos)
	}
	return b.text.LineToChar(pos.Line) + columnToCharOffset(content, pos.Column), nil
}

// charIdxToPosition converts a rune offset to a position. Caller must hold
// the lock; idx must be in range.
func (b *Buffer) charIdxToPosition(idx int) Position {
	line := b.text.CharToLine(idx)
	prefix := b.text.Slice(b.text.LineToChar(line), idx)
	return Position{Line: line, Column: uniseg.GraphemeClusterCount(prefix)}
}

// charIdx is the replay variant of positionToCharIdx: recorded positions
// are trusted, so out of range coordinates clamp instead of failing.
func (b *Buffer) charIdx(pos Position) int {
	line := clampLine(pos.Line, b.text.LenLines())
	content := b.lineContent(line)
	col := pos.Column
	if max := uniseg.GraphemeClusterCount(content); col > max {
		col = max
	}
	return b.text.LineToChar(line) + columnToCharOffset(content, col)
}

// revertOperation reverses one recorded operation against the text and
// returns the cursor position from before it. Caller must hold the lock.
func (b *Buffer) revertOperation(op history.Operation) Position {
	switch op.Kind {
	case history.OpInsert:
		start := b.charIdx(op.Start)
		end := b.charIdx(advancePosition(op.Start, op.InsertedText))
		b.text.Delete(start, end)

	case history.OpDelete:
		b.text.Insert(b.charIdx(op.Start), op.DeletedText)

	case history.OpReplace:
		start := b.charIdx(op.Start)
		end := b.charIdx(advancePosition(op.Start, op.InsertedText))
		b.text.Delete(start, end)
		b.text.Insert(start, op.DeletedText)
	}
	return op.CursorBefore
}

// applyOperation reapplies one recorded operation against the text and
// returns the cursor position from after it. Caller must hold the lock.
func (b *Buffer) applyOperation(op history.Operation) Position {
	switch op.Kind {
	case history.OpInsert:
		b.text.Insert(b.charIdx(op.Start), op.InsertedText)

	case history.OpDelete:
		b.text.Delete(b.charIdx(op.Start), b.charIdx(op.End))

	case history.OpReplace:
		start := b.charIdx(op.Start)
		b.text.Delete(start, b.charIdx(op.End))
		b.text.Insert(start, op.InsertedText)
	}
	return op.CursorAfter
}

// lineContent returns a line without its trailing newline. Caller must
// hold the lock.
func (b *Buffer) lineContent(line int) string {
	return strings.TrimSuffix(b.text.Line(line), "\n")
}

// advancePosition computes where a cursor lands after inserting text at a
// position. Columns count grapheme clusters of the final inserted line.
func advancePosition(start Position, inserted string) Position {
	parts := strings.Split(inserted, "\n")
	last := parts[len(parts)-1]
	if len(parts) == 1 {
		return Position{Line: start.Line, Column: start.Column + uniseg.GraphemeClusterCount(last)}
	}
	return Position{
		Line:   start.Line + len(parts) - 1,
		Column: uniseg.GraphemeClusterCount(last),
	}
}

// columnToCharOffset converts a grapheme column to a rune offset within a
// line.
func columnToCharOffset(line string, column int) int {
	offset := 0
	state := -1
	for i := 0; i < column && len(line) > 0; i++ {
		var cluster string
		cluster, line, _, state = uniseg.StepString(line, state)
		offset += len([]rune(cluster))
	}
	return offset
}

// clampLine limits a line index to the valid range.
func clampLine(line, lineCount int) int {
	if line < 0 {
		return 0
	}
	if line >= lineCount {
		return lineCount - 1
	}
	return line
}
