package buffer

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Snapshot is an immutable copy of a buffer's state at one version. It is
// safe to read from any goroutine while the buffer keeps mutating.
type Snapshot struct {
	id         ID
	text       string
	version    Version
	lineEnding LineEnding
	path       string
}

// Snapshot captures the buffer's current state.
func (b *Buffer) Snapshot() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return &Snapshot{
		id:         b.id,
		text:       b.text.String(),
		version:    b.version,
		lineEnding: b.lineEnding,
		path:       b.path,
	}
}

// ID returns the source buffer's ID.
func (s *Snapshot) ID() ID {
	return s.id
}

// Text returns the captured content.
func (s *Snapshot) Text() string {
	return s.text
}

// Version returns the captured version.
func (s *Snapshot) Version() Version {
	return s.version
}

// LineEnding returns the captured line ending style.
func (s *Snapshot) LineEnding() LineEnding {
	return s.lineEnding
}

// Path returns the captured file path.
func (s *Snapshot) Path() string {
	return s.path
}

// Lines returns the captured content split into lines without newlines.
func (s *Snapshot) Lines() []string {
	return strings.Split(s.text, "\n")
}

// LenLines returns the captured line count.
func (s *Snapshot) LenLines() int {
	return strings.Count(s.text, "\n") + 1
}

// LineGraphemes returns the grapheme-cluster length of a captured line.
func (s *Snapshot) LineGraphemes(line int) int {
	lines := s.Lines()
	if line < 0 || line >= len(lines) {
		return 0
	}
	return uniseg.GraphemeClusterCount(lines[line])
}
