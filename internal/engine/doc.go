// Package engine provides the text editing core for typst-studio.
//
// The engine package is the facade over the editing sub-packages. It keeps
// a registry of open buffers, tracks which one is active, and re-exports
// the types callers need so most code imports only this package.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - text: rune-indexed text store with a line index
//   - buffer: mutable document with grapheme-cluster coordinates,
//     undo/redo, and file persistence
//   - history: operation recording with merge and grouping rules
//   - cursor: positions, selections, and cursor movement
//   - words: word boundary classification over grapheme clusters
//   - bidi: UAX#9 paragraph resolution and visual/logical conversion
//
// # Coordinates
//
// All positions are (line, column) pairs where the column counts grapheme
// clusters, never bytes or runes. A family emoji is one column; so is a
// combining sequence. Rune offsets appear only at package boundaries that
// need them, such as bidi resolution.
//
// # Thread Safety
//
// The registry and every buffer are independently safe for concurrent
// use. Reads take shared locks; mutations are serialized per buffer.
//
// # Basic Usage
//
//	e := engine.New()
//	buf := e.OpenText("hello world")
//
//	pos, _ := buf.Insert(engine.Position{Line: 0, Column: 5}, ",")
//	_ = buf.Text() // "hello, world"
//
//	pos, _ = buf.Undo()
//	_ = buf.Text() // "hello world"
//	_ = pos        // cursor from before the insert
//
// # Error Handling
//
// Failures are sentinel errors wrapped with context; match them with
// errors.Is:
//
//   - buffer.ErrInvalidPosition: coordinates outside the buffer
//   - buffer.ErrInvalidRange: range end precedes start
//   - buffer.ErrReadOnly: mutation of a read-only buffer
//   - history.ErrNothingToUndo, history.ErrNothingToRedo: empty stacks
//   - ErrBufferNotFound, ErrNoActiveBuffer: registry lookups
package engine
