package engine

import "errors"

// Errors returned by engine operations.
var (
	// ErrBufferNotFound indicates no open buffer has the given ID.
	ErrBufferNotFound = errors.New("buffer not found")

	// ErrNoActiveBuffer indicates the engine has no open buffers.
	ErrNoActiveBuffer = errors.New("no active buffer")
)
