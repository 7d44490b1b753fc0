package engine

import (
	"fmt"
	"sync"

	"github.com/Hillel-Nagid/typst-studio/internal/engine/bidi"
	"github.com/Hillel-Nagid/typst-studio/internal/engine/buffer"
	"github.com/Hillel-Nagid/typst-studio/internal/engine/cursor"
)

// Re-export commonly used types for convenience.
type (
	// Position is a line/column position with grapheme-cluster columns.
	Position = cursor.Position

	// Cursor is a position with affinity and sticky column.
	Cursor = cursor.Cursor

	// Selection is an anchored span of text.
	Selection = cursor.Selection

	// SelectionSet holds a primary selection plus secondaries.
	SelectionSet = cursor.SelectionSet

	// BufferID uniquely identifies an open buffer.
	BufferID = buffer.ID

	// Version counts committed buffer mutations.
	Version = buffer.Version

	// LineEnding specifies the line ending style written on save.
	LineEnding = buffer.LineEnding

	// Metrics summarizes a buffer's state.
	Metrics = buffer.Metrics

	// Direction is a horizontal text direction.
	Direction = bidi.Direction

	// VisualRun is a span of one resolved bidi embedding level.
	VisualRun = bidi.VisualRun
)

// Re-export constants.
const (
	LineEndingLF   = buffer.LineEndingLF
	LineEndingCRLF = buffer.LineEndingCRLF
	LineEndingCR   = buffer.LineEndingCR

	LeftToRight = bidi.LeftToRight
	RightToLeft = bidi.RightToLeft
)

// Engine is the registry of open buffers. One buffer is active at a time;
// opening a buffer makes it active. All methods are safe for concurrent
// use, and the buffers themselves carry their own locking.
type Engine struct {
	mu      sync.RWMutex
	buffers map[BufferID]*buffer.Buffer
	order   []BufferID
	active  BufferID
}

// New creates an engine with no open buffers.
func New() *Engine {
	return &Engine{buffers: make(map[BufferID]*buffer.Buffer)}
}

// NewBuffer opens an empty scratch buffer and makes it active.
func (e *Engine) NewBuffer(opts ...buffer.Option) *buffer.Buffer {
	buf := buffer.New(opts...)
	e.register(buf)
	return buf
}

// OpenText opens a buffer with the given content and makes it active.
func (e *Engine) OpenText(content string, opts ...buffer.Option) *buffer.Buffer {
	buf := buffer.FromText(content, opts...)
	e.register(buf)
	return buf
}

// OpenFile opens a file as a buffer and makes it active. A file that is
// already open is reactivated rather than opened twice.
func (e *Engine) OpenFile(path string, opts ...buffer.Option) (*buffer.Buffer, error) {
	e.mu.Lock()
	for _, id := range e.order {
		if buf := e.buffers[id]; buf.Path() == path {
			e.active = id
			e.mu.Unlock()
			return buf, nil
		}
	}
	e.mu.Unlock()

	buf, err := buffer.FromFile(path, opts...)
	if err != nil {
		return nil, err
	}
	e.register(buf)
	return buf, nil
}

// register adds a buffer to the registry and makes it active.
func (e *Engine) register(buf *buffer.Buffer) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.buffers[buf.ID()] = buf
	e.order = append(e.order, buf.ID())
	e.active = buf.ID()
}

// Buffer returns an open buffer by ID.
func (e *Engine) Buffer(id BufferID) (*buffer.Buffer, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	buf, ok := e.buffers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrBufferNotFound, id)
	}
	return buf, nil
}

// ActiveBuffer returns the currently active buffer.
func (e *Engine) ActiveBuffer() (*buffer.Buffer, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	buf, ok := e.buffers[e.active]
	if !ok {
		return nil, ErrNoActiveBuffer
	}
	return buf, nil
}

// SetActive switches the active buffer.
func (e *Engine) SetActive(id BufferID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.buffers[id]; !ok {
		return fmt.Errorf("%w: %d", ErrBufferNotFound, id)
	}
	e.active = id
	return nil
}

// Close removes a buffer from the registry. Closing the active buffer
// activates the most recently opened remaining one.
func (e *Engine) Close(id BufferID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.buffers[id]; !ok {
		return fmt.Errorf("%w: %d", ErrBufferNotFound, id)
	}
	delete(e.buffers, id)
	for i, other := range e.order {
		if other == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}

	if e.active == id {
		e.active = 0
		if n := len(e.order); n > 0 {
			e.active = e.order[n-1]
		}
	}
	return nil
}

// Buffers returns the open buffers in opening order.
func (e *Engine) Buffers() []*buffer.Buffer {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]*buffer.Buffer, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, e.buffers[id])
	}
	return out
}

// Len returns the number of open buffers.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.buffers)
}

// SaveAll saves every dirty buffer that has a file path. Scratch buffers
// are skipped. The first save error aborts and is returned.
func (e *Engine) SaveAll() error {
	for _, buf := range e.Buffers() {
		if !buf.Dirty() || buf.Path() == "" {
			continue
		}
		if err := buf.Save(); err != nil {
			return err
		}
	}
	return nil
}

// ResolveLine resolves the bidirectional structure of one line of a
// buffer.
func (e *Engine) ResolveLine(id BufferID, line int, opts ...bidi.Option) (*bidi.Paragraph, error) {
	buf, err := e.Buffer(id)
	if err != nil {
		return nil, err
	}
	return bidi.New(buf.Line(line), opts...), nil
}
