package buffer

import "sync/atomic"

// ID uniquely identifies a buffer within a process.
type ID uint64

var idCounter atomic.Uint64

// NewID returns a process-unique buffer ID. IDs are monotonically
// increasing and never reused.
func NewID() ID {
	return ID(idCounter.Add(1))
}

// Version counts committed mutations to a buffer. Each successful edit,
// undo, or redo increments the version exactly once, so any change in
// version signals a change in content.
type Version uint64
