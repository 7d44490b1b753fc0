package cursor

import (
	"errors"
	"unicode"

	"github.com/rivo/uniseg"

	"github.com/Hillel-Nagid/typst-studio/internal/engine/bidi"
)

// Movement errors.
var (
	// ErrVerticalMovement is returned when Up/Down is passed to the
	// single-paragraph entry point; vertical motion needs MoveVertical.
	ErrVerticalMovement = errors.New("vertical movement requires multi-line context")

	// ErrInvalidDirection is returned when a horizontal direction is passed
	// to MoveVertical.
	ErrInvalidDirection = errors.New("invalid vertical movement direction")
)

// MoveDirection names a cursor movement.
type MoveDirection uint8

const (
	MoveLeft MoveDirection = iota
	MoveRight
	MoveUp
	MoveDown
	MoveHome
	MoveEnd
	MoveWordLeft
	MoveWordRight
)

// String returns the movement name.
func (d MoveDirection) String() string {
	switch d {
	case MoveLeft:
		return "left"
	case MoveRight:
		return "right"
	case MoveUp:
		return "up"
	case MoveDown:
		return "down"
	case MoveHome:
		return "home"
	case MoveEnd:
		return "end"
	case MoveWordLeft:
		return "word-left"
	case MoveWordRight:
		return "word-right"
	default:
		return "unknown"
	}
}

// MoveVisual computes the new logical rune offset for a movement within a
// single resolved paragraph. Left and Right move one grapheme cluster,
// clamped at the paragraph bounds. Home moves to the first non-whitespace
// character, then to column zero on a second press. End moves past the last
// cluster. WordLeft and WordRight move across runs of word characters
// (alphanumeric or underscore). Up and Down are rejected with
// ErrVerticalMovement.
func MoveVisual(p *bidi.Paragraph, logicalPos int, dir MoveDirection) (int, error) {
	text := p.Text()
	if text == "" {
		return 0, nil
	}

	clusters := graphemes(text)

	switch dir {
	case MoveLeft:
		if logicalPos == 0 {
			return 0, nil
		}
		gp := charToGraphemePos(clusters, logicalPos)
		if gp == 0 {
			return 0, nil
		}
		return graphemeToCharPos(clusters, gp-1), nil

	case MoveRight:
		gp := charToGraphemePos(clusters, logicalPos)
		if gp >= len(clusters) {
			return graphemeToCharPos(clusters, len(clusters)), nil
		}
		return graphemeToCharPos(clusters, gp+1), nil

	case MoveHome:
		firstNonWS := 0
		for i, r := range []rune(text) {
			if !unicode.IsSpace(r) {
				firstNonWS = i
				break
			}
		}
		if logicalPos != firstNonWS && firstNonWS > 0 {
			return firstNonWS, nil
		}
		return 0, nil

	case MoveEnd:
		return graphemeToCharPos(clusters, len(clusters)), nil

	case MoveWordLeft:
		return moveWordBoundary(clusters, logicalPos, false), nil

	case MoveWordRight:
		return moveWordBoundary(clusters, logicalPos, true), nil

	default:
		return 0, ErrVerticalMovement
	}
}

// MoveLogical moves one grapheme cluster in logical order, regardless of
// the paragraph's visual run structure.
func MoveLogical(text string, logicalPos int, forward bool) int {
	clusters := graphemes(text)
	gp := charToGraphemePos(clusters, logicalPos)

	if forward {
		if gp < len(clusters) {
			gp++
		}
	} else if gp > 0 {
		gp--
	}
	return graphemeToCharPos(clusters, gp)
}

// MoveVertical moves the cursor to an adjacent line, using the sticky
// column (negative means unset, falling back to the current column) as the
// desired column, clamped to the target line's grapheme length. Moving
// above the first line clamps to (0,0); moving below the last line clamps
// to its end.
func MoveVertical(lines []string, currentLine, currentColumn int, dir MoveDirection, stickyColumn int) (Position, error) {
	desired := currentColumn
	if stickyColumn >= 0 {
		desired = stickyColumn
	}

	switch dir {
	case MoveUp:
		if currentLine == 0 {
			return Position{}, nil
		}
		target := currentLine - 1
		return Position{Line: target, Column: clampColumn(lines[target], desired)}, nil

	case MoveDown:
		if currentLine+1 >= len(lines) {
			last := len(lines) - 1
			return Position{Line: last, Column: uniseg.GraphemeClusterCount(lines[last])}, nil
		}
		target := currentLine + 1
		return Position{Line: target, Column: clampColumn(lines[target], desired)}, nil

	default:
		return Position{}, ErrInvalidDirection
	}
}

// clampColumn limits the desired column to the line's grapheme length.
func clampColumn(line string, desired int) int {
	length := uniseg.GraphemeClusterCount(line)
	if desired > length {
		return length
	}
	return desired
}

// moveWordBoundary finds the rune offset past the end of the current or
// next word run (forward), or at the start of the preceding word run
// (backward), clamping to the text bounds when no further word exists.
func moveWordBoundary(clusters []string, logicalPos int, forward bool) int {
	gp := charToGraphemePos(clusters, logicalPos)

	if forward {
		foundWord := false
		for i := gp; i < len(clusters); i++ {
			if isWordGrapheme(clusters[i]) {
				foundWord = true
			} else if foundWord {
				return graphemeToCharPos(clusters, i)
			}
		}
		return graphemeToCharPos(clusters, len(clusters))
	}

	foundWord := false
	for i := gp - 1; i >= 0; i-- {
		if isWordGrapheme(clusters[i]) {
			foundWord = true
		} else if foundWord {
			return graphemeToCharPos(clusters, i+1)
		}
	}
	return 0
}

// isWordGrapheme reports whether every rune of the cluster is alphanumeric
// or an underscore.
func isWordGrapheme(cluster string) bool {
	for _, r := range cluster {
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '_' {
			return false
		}
	}
	return cluster != ""
}

// graphemes splits text into its grapheme clusters.
func graphemes(text string) []string {
	var clusters []string
	state := -1
	for len(text) > 0 {
		var cluster string
		cluster, text, _, state = uniseg.StepString(text, state)
		clusters = append(clusters, cluster)
	}
	return clusters
}

// charToGraphemePos converts a rune offset to a grapheme index.
func charToGraphemePos(clusters []string, charPos int) int {
	chars := 0
	for i, cluster := range clusters {
		if chars >= charPos {
			return i
		}
		chars += len([]rune(cluster))
	}
	return len(clusters)
}

// graphemeToCharPos converts a grapheme index to a rune offset.
func graphemeToCharPos(clusters []string, graphemePos int) int {
	chars := 0
	for i, cluster := range clusters {
		if i >= graphemePos {
			break
		}
		chars += len([]rune(cluster))
	}
	return chars
}
