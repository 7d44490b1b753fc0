// Package words classifies grapheme-cluster transitions in a text snapshot
// into word, whitespace, and punctuation boundaries. A Finder is pure over
// the text it was built from and safe for concurrent readers.
package words

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

// BoundaryKind classifies a transition between grapheme clusters.
type BoundaryKind uint8

const (
	WordStart BoundaryKind = iota
	WordEnd
	Whitespace
	Punctuation
)

// String returns the boundary kind name.
func (k BoundaryKind) String() string {
	switch k {
	case WordStart:
		return "word-start"
	case WordEnd:
		return "word-end"
	case Whitespace:
		return "whitespace"
	case Punctuation:
		return "punctuation"
	default:
		return "unknown"
	}
}

// Boundary marks a transition at a grapheme-cluster position.
type Boundary struct {
	Position int
	Kind     BoundaryKind
}

// Finder precomputes the boundary list for a text in one left-to-right pass
// over its grapheme clusters. Word characters default to alphanumeric,
// underscore, apostrophe, or hyphen.
type Finder struct {
	clusters   []string
	boundaries []Boundary
	isWordRune func(rune) bool
}

// Option configures a Finder.
type Option func(*Finder)

// WithSimpleWords restricts word characters to letters, numbers, and
// underscore. The default set also counts apostrophe and hyphen, which
// suits word-at queries; navigation that stops inside "don't" wants the
// simple set.
func WithSimpleWords() Option {
	return func(f *Finder) {
		f.isWordRune = isSimpleWordRune
	}
}

// NewFinder segments text and computes its boundaries.
func NewFinder(text string, opts ...Option) *Finder {
	f := &Finder{isWordRune: isDefaultWordRune}
	for _, opt := range opts {
		opt(f)
	}

	state := -1
	for len(text) > 0 {
		var cluster string
		cluster, text, _, state = uniseg.StepString(text, state)
		f.clusters = append(f.clusters, cluster)
	}
	f.boundaries = f.findBoundaries(f.clusters)
	return f
}

// findBoundaries walks the clusters and records every transition.
func (f *Finder) findBoundaries(clusters []string) []Boundary {
	if len(clusters) == 0 {
		return nil
	}

	boundaries := []Boundary{{Position: 0, Kind: WordStart}}

	prevWord := false
	prevWhitespace := false
	for i, cluster := range clusters {
		isWord := f.isWordCluster(cluster)
		isWhitespace := isWhitespaceCluster(cluster)
		isPunct := !isWord && !isWhitespace

		if i > 0 {
			if isWord && !prevWord {
				boundaries = append(boundaries, Boundary{Position: i, Kind: WordStart})
			} else if !isWord && prevWord {
				boundaries = append(boundaries, Boundary{Position: i, Kind: WordEnd})
			}

			if isWhitespace && !prevWhitespace {
				boundaries = append(boundaries, Boundary{Position: i, Kind: Whitespace})
			}

			if isPunct {
				boundaries = append(boundaries, Boundary{Position: i, Kind: Punctuation})
			}
		}

		prevWord = isWord
		prevWhitespace = isWhitespace
	}

	endKind := Whitespace
	if prevWord {
		endKind = WordEnd
	}
	return append(boundaries, Boundary{Position: len(clusters), Kind: endKind})
}

// isWordCluster reports whether every rune of the cluster is a word
// character.
func (f *Finder) isWordCluster(cluster string) bool {
	for _, r := range cluster {
		if !f.isWordRune(r) {
			return false
		}
	}
	return cluster != ""
}

func isDefaultWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_' || r == '\'' || r == '-'
}

func isSimpleWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_'
}

// isWhitespaceCluster reports whether the cluster is entirely whitespace.
func isWhitespaceCluster(cluster string) bool {
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return cluster != ""
}

// Boundaries returns the full boundary list.
func (f *Finder) Boundaries() []Boundary {
	return f.boundaries
}

// Len returns the number of grapheme clusters in the text.
func (f *Finder) Len() int {
	return len(f.clusters)
}

// NextWordBoundary returns the first word start or end after position.
// The second return is false when there is none.
func (f *Finder) NextWordBoundary(position int) (int, bool) {
	for _, b := range f.boundaries {
		if b.Position > position && (b.Kind == WordStart || b.Kind == WordEnd) {
			return b.Position, true
		}
	}
	return 0, false
}

// PrevWordBoundary returns the last word start or end before position.
// The second return is false when there is none.
func (f *Finder) PrevWordBoundary(position int) (int, bool) {
	for i := len(f.boundaries) - 1; i >= 0; i-- {
		b := f.boundaries[i]
		if b.Position < position && (b.Kind == WordStart || b.Kind == WordEnd) {
			return b.Position, true
		}
	}
	return 0, false
}

// WordStartAt returns the start of the word enclosing position, or zero.
func (f *Finder) WordStartAt(position int) int {
	for i := len(f.boundaries) - 1; i >= 0; i-- {
		b := f.boundaries[i]
		if b.Position <= position && b.Kind == WordStart {
			return b.Position
		}
	}
	return 0
}

// WordEndAt returns the end of the word enclosing position, or the cluster
// count.
func (f *Finder) WordEndAt(position int) int {
	for _, b := range f.boundaries {
		if b.Position >= position && b.Kind == WordEnd {
			return b.Position
		}
	}
	return len(f.clusters)
}

// WordAt returns the text of the word containing position. The second
// return is false when position lies outside any word.
func (f *Finder) WordAt(position int) (string, bool) {
	start := f.WordStartAt(position)
	end := f.WordEndAt(position)

	if start < end && end <= len(f.clusters) {
		return strings.Join(f.clusters[start:end], ""), true
	}
	return "", false
}
