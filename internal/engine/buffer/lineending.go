package buffer

import (
	"runtime"
	"strings"
)

// LineEnding specifies the line ending style written on save. Buffer
// content is always held with bare \n internally.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the escaped representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// DetectLineEnding classifies a text's line ending style by first
// occurrence: CRLF wins over bare LF, bare LF over bare CR. Text with no
// line endings gets the platform default.
func DetectLineEnding(text string) LineEnding {
	if strings.Contains(text, "\r\n") {
		return LineEndingCRLF
	}
	if strings.Contains(text, "\n") {
		return LineEndingLF
	}
	if strings.Contains(text, "\r") {
		return LineEndingCR
	}
	return platformLineEnding()
}

// platformLineEnding returns the native line ending for the current OS.
func platformLineEnding() LineEnding {
	if runtime.GOOS == "windows" {
		return LineEndingCRLF
	}
	return LineEndingLF
}

// normalizeToLF converts all line endings to bare \n.
func normalizeToLF(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// applyLineEnding converts internal \n endings to the given style.
func applyLineEnding(s string, le LineEnding) string {
	if le == LineEndingLF {
		return s
	}
	return strings.ReplaceAll(s, "\n", le.Sequence())
}
