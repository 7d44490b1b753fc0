// Package bidi resolves the visual ordering of bidirectional paragraphs
// per UAX#9 and converts between logical and visual cursor positions.
//
// Resolution is recomputed from scratch for every paragraph: embedding
// levels are not generally safe to patch incrementally after an edit, since
// one inserted strong-directional character can change levels far outside
// the edited range. Results are valid only for the exact text resolved;
// callers may cache by buffer version if they invalidate on every mutation.
//
// All offsets are rune indices. A paragraph is total over any Unicode
// string and never fails; empty input yields identity results.
package bidi

import (
	xbidi "golang.org/x/text/unicode/bidi"
)

// VisualRun is a maximal contiguous span of one resolved embedding level.
// Start and End are rune offsets into the paragraph text, [Start, End).
// Level parity determines direction: even is left-to-right, odd right-to-left.
type VisualRun struct {
	Start     int
	End       int
	Direction Direction
	Level     uint8
}

// Len returns the run length in runes.
func (r VisualRun) Len() int {
	return r.End - r.Start
}

type options struct {
	base    Direction
	hasBase bool
}

// Option configures paragraph resolution.
type Option func(*options)

// WithBaseDirection overrides auto-detection of the paragraph base direction.
func WithBaseDirection(d Direction) Option {
	return func(o *options) {
		o.base = d
		o.hasBase = true
	}
}

// Paragraph holds the resolved bidirectional structure of one paragraph.
type Paragraph struct {
	text    string
	length  int // rune count
	base    Direction
	logical []VisualRun // ascending logical offset, partitions [0, length)
	visual  []VisualRun // display order
}

// New resolves the bidirectional structure of text. Without an explicit
// base direction the paragraph direction follows the first strong
// directional character (LTR when there is none). If the text contains a
// paragraph separator, resolution covers the first paragraph and the
// remainder is folded into a trailing base-level run so that the runs
// always partition the whole input.
func New(text string, opts ...Option) *Paragraph {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	base := o.base
	if !o.hasBase {
		base = detectBase(text)
	}

	p := &Paragraph{
		text:   text,
		length: len([]rune(text)),
		base:   base,
	}
	if p.length == 0 {
		return p
	}

	p.logical = resolveRuns(text, base, o.hasBase, p.length)
	p.visual = reorderVisual(p.logical)
	return p
}

// detectBase classifies the paragraph direction from the first strong
// directional character (UAX#9 rules P2/P3).
func detectBase(text string) Direction {
	for _, r := range text {
		props, _ := xbidi.LookupRune(r)
		switch props.Class() {
		case xbidi.L:
			return LeftToRight
		case xbidi.R, xbidi.AL:
			return RightToLeft
		}
	}
	return LeftToRight
}

// resolveRuns segments text into maximal constant-level runs in logical
// order. Levels are synthesized from run direction and base direction;
// parity is the contract, not the full explicit-embedding depth.
func resolveRuns(text string, base Direction, explicit bool, total int) []VisualRun {
	var para xbidi.Paragraph
	var setOpts []xbidi.Option
	if explicit && base == RightToLeft {
		setOpts = append(setOpts, xbidi.DefaultDirection(xbidi.RightToLeft))
	}

	var runs []VisualRun
	if _, err := para.SetString(text, setOpts...); err == nil {
		if order, err := para.Order(); err == nil {
			for i := 0; i < order.NumRuns(); i++ {
				run := order.Run(i)
				start, end := run.Pos() // rune offsets, end inclusive
				dir := LeftToRight
				if run.Direction() == xbidi.RightToLeft {
					dir = RightToLeft
				}
				runs = appendRun(runs, VisualRun{
					Start:     start,
					End:       end + 1,
					Direction: dir,
					Level:     runLevel(dir, base),
				})
			}
		}
	}

	// Cover anything the resolver did not: failed resolution, or text past
	// the first paragraph separator.
	covered := 0
	if n := len(runs); n > 0 {
		covered = runs[n-1].End
	}
	if covered < total {
		runs = appendRun(runs, VisualRun{
			Start:     covered,
			End:       total,
			Direction: base,
			Level:     runLevel(base, base),
		})
	}
	return runs
}

// runLevel synthesizes the embedding level for a run direction under the
// given base: RTL runs sit at level 1, LTR runs at the base-parity even
// level (0 under an LTR base, 2 under an RTL base).
func runLevel(dir, base Direction) uint8 {
	if dir == RightToLeft {
		return 1
	}
	if base == RightToLeft {
		return 2
	}
	return 0
}

// appendRun appends a run, extending the previous one when the levels match
// so runs stay maximal.
func appendRun(runs []VisualRun, r VisualRun) []VisualRun {
	if n := len(runs); n > 0 && runs[n-1].Level == r.Level && runs[n-1].End == r.Start {
		runs[n-1].End = r.End
		return runs
	}
	return append(runs, r)
}

// reorderVisual applies UAX#9 rule L2 to logically ordered runs: from the
// highest level down to the lowest odd level, reverse every contiguous
// sequence of runs at or above that level.
func reorderVisual(logical []VisualRun) []VisualRun {
	visual := make([]VisualRun, len(logical))
	copy(visual, logical)

	maxLevel := uint8(0)
	minOdd := uint8(255)
	for _, r := range logical {
		if r.Level > maxLevel {
			maxLevel = r.Level
		}
		if r.Level%2 == 1 && r.Level < minOdd {
			minOdd = r.Level
		}
	}
	if minOdd == 255 {
		return visual
	}

	for lvl := int(maxLevel); lvl >= int(minOdd); lvl-- {
		for i := 0; i < len(visual); {
			if int(visual[i].Level) < lvl {
				i++
				continue
			}
			j := i
			for j < len(visual) && int(visual[j].Level) >= lvl {
				j++
			}
			for a, b := i, j-1; a < b; a, b = a+1, b-1 {
				visual[a], visual[b] = visual[b], visual[a]
			}
			i = j
		}
	}
	return visual
}

// Text returns the paragraph text.
func (p *Paragraph) Text() string {
	return p.text
}

// Len returns the paragraph length in runes.
func (p *Paragraph) Len() int {
	return p.length
}

// BaseDirection returns the resolved base direction.
func (p *Paragraph) BaseDirection() Direction {
	return p.base
}

// VisualRuns returns the resolved runs ordered by ascending logical offset.
// The runs partition [0, Len()) with no gaps or overlaps.
func (p *Paragraph) VisualRuns() []VisualRun {
	out := make([]VisualRun, len(p.logical))
	copy(out, p.logical)
	return out
}

// VisualRunsRange returns the runs clipped to the rune range [start, end).
func (p *Paragraph) VisualRunsRange(start, end int) []VisualRun {
	if start < 0 {
		start = 0
	}
	if end > p.length {
		end = p.length
	}
	var out []VisualRun
	for _, r := range p.logical {
		if r.End <= start || r.Start >= end {
			continue
		}
		clipped := r
		if clipped.Start < start {
			clipped.Start = start
		}
		if clipped.End > end {
			clipped.End = end
		}
		out = append(out, clipped)
	}
	return out
}

// LogicalToVisual converts a logical rune offset to its visual position.
// Within a right-to-left run the mapping mirrors: the run's first logical
// character displays at its visual end.
func (p *Paragraph) LogicalToVisual(pos int) int {
	if len(p.visual) == 0 {
		return pos
	}
	visualPos := 0
	for _, r := range p.visual {
		if pos >= r.Start && pos < r.End {
			if r.Direction == RightToLeft {
				return visualPos + (r.End - 1 - pos)
			}
			return visualPos + (pos - r.Start)
		}
		visualPos += r.Len()
	}
	return visualPos
}

// VisualToLogical converts a visual position back to a logical rune offset.
func (p *Paragraph) VisualToLogical(pos int) int {
	if len(p.visual) == 0 {
		return pos
	}
	accumulated := 0
	for _, r := range p.visual {
		if pos < accumulated+r.Len() {
			if r.Direction == RightToLeft {
				return r.End - 1 - (pos - accumulated)
			}
			return r.Start + (pos - accumulated)
		}
		accumulated += r.Len()
	}
	return p.length
}
