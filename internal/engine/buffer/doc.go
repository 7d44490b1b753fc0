// Package buffer implements the mutable text document at the core of the
// editor. Content is addressed by (line, column) positions where columns
// count grapheme clusters, so one arrow-key step or one backspace always
// covers one user-perceived character regardless of how many runes encode
// it.
//
// Every mutation goes through one pipeline: validate the position, splice
// the text, record an operation for undo, bump the version once, and set
// the dirty flag. Undo and redo replay recorded operations against the
// text directly and are never themselves recorded, so they cannot grow the
// history they consume.
//
// Line endings are normalized to \n on load and restored to the detected
// style on save. Coordinates therefore never see \r.
//
// A Buffer is safe for concurrent use. Use Snapshot for lock-free reads of
// a consistent state.
package buffer
