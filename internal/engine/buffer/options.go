package buffer

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithLineEnding sets the line ending style written on save.
func WithLineEnding(le LineEnding) Option {
	return func(b *Buffer) {
		b.lineEnding = le
	}
}

// WithPath associates the buffer with a file path without reading it.
func WithPath(path string) Option {
	return func(b *Buffer) {
		b.path = path
	}
}

// WithReadOnly marks the buffer read-only; every mutation fails with
// ErrReadOnly.
func WithReadOnly() Option {
	return func(b *Buffer) {
		b.readOnly = true
	}
}

// WithMaxUndoOperations bounds the undo stack. A non-positive limit
// selects the history default.
func WithMaxUndoOperations(n int) Option {
	return func(b *Buffer) {
		b.maxUndoOps = n
	}
}
