package buffer

import (
	"errors"
	"fmt"
)

// Errors returned by buffer operations.
var (
	ErrInvalidPosition = errors.New("position out of range")
	ErrInvalidRange    = errors.New("invalid range")
	ErrReadOnly        = errors.New("buffer is read-only")
)

// invalidPosition wraps ErrInvalidPosition with the offending coordinates.
func invalidPosition(pos Position) error {
	return fmt.Errorf("%w: line %d, column %d", ErrInvalidPosition, pos.Line, pos.Column)
}

// invalidRange wraps ErrInvalidRange with the offending span.
func invalidRange(start, end Position) error {
	return fmt.Errorf("%w: %s to %s", ErrInvalidRange, start, end)
}
