package bidi

import "testing"

// checkPartition verifies that runs cover [0, length) in ascending order
// with no gaps or overlaps.
func checkPartition(t *testing.T, runs []VisualRun, length int) {
	t.Helper()

	if length == 0 {
		if len(runs) != 0 {
			t.Errorf("empty paragraph has %d runs", len(runs))
		}
		return
	}
	if len(runs) == 0 {
		t.Fatal("no runs for non-empty paragraph")
	}
	if runs[0].Start != 0 {
		t.Errorf("first run starts at %d, want 0", runs[0].Start)
	}
	for i := 1; i < len(runs); i++ {
		if runs[i].Start != runs[i-1].End {
			t.Errorf("gap or overlap between run %d and %d: %d != %d",
				i-1, i, runs[i-1].End, runs[i].Start)
		}
	}
	if last := runs[len(runs)-1]; last.End != length {
		t.Errorf("last run ends at %d, want %d", last.End, length)
	}
}

func TestDetectBase(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Direction
	}{
		{"latin", "hello", LeftToRight},
		{"hebrew", "שלום", RightToLeft},
		{"arabic", "مرحبا", RightToLeft},
		{"leading digits then hebrew", "123 שלום", RightToLeft},
		{"leading punctuation then latin", "...abc", LeftToRight},
		{"no strong characters", "123 456", LeftToRight},
		{"empty", "", LeftToRight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.text).BaseDirection(); got != tt.want {
				t.Errorf("base direction = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPureLTRSingleRun(t *testing.T) {
	p := New("hello world")

	runs := p.VisualRuns()
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].Direction != LeftToRight || runs[0].Level != 0 {
		t.Errorf("run = %+v, want LTR level 0", runs[0])
	}
	checkPartition(t, runs, p.Len())
}

func TestPureRTLSingleRun(t *testing.T) {
	p := New("שלום עולם")

	runs := p.VisualRuns()
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].Direction != RightToLeft || runs[0].Level != 1 {
		t.Errorf("run = %+v, want RTL level 1", runs[0])
	}
	checkPartition(t, runs, p.Len())
}

func TestMixedDirectionRuns(t *testing.T) {
	// "abc " is 4 runes, the Hebrew word is 5.
	p := New("abc עברית")

	if p.BaseDirection() != LeftToRight {
		t.Fatalf("base = %v, want LTR", p.BaseDirection())
	}

	runs := p.VisualRuns()
	checkPartition(t, runs, 9)

	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d: %+v", len(runs), runs)
	}
	if runs[0].Direction != LeftToRight || runs[0].Level != 0 {
		t.Errorf("run 0 = %+v, want LTR level 0", runs[0])
	}
	if runs[1].Direction != RightToLeft || runs[1].Level != 1 {
		t.Errorf("run 1 = %+v, want RTL level 1", runs[1])
	}
}

func TestLatinHebrewLatin(t *testing.T) {
	p := New("abc עברית def")

	runs := p.VisualRuns()
	checkPartition(t, runs, p.Len())

	if len(runs) < 3 {
		t.Fatalf("expected at least 3 runs, got %d: %+v", len(runs), runs)
	}

	var sawRTL bool
	for _, r := range runs {
		if r.Direction == RightToLeft {
			sawRTL = true
			if r.Level%2 != 1 {
				t.Errorf("RTL run has even level %d", r.Level)
			}
		} else if r.Level%2 != 0 {
			t.Errorf("LTR run has odd level %d", r.Level)
		}
	}
	if !sawRTL {
		t.Error("no RTL run resolved for Hebrew text")
	}

	// Visual order under an LTR base keeps the run sequence, mirroring only
	// within RTL runs, so the first visual run is the leading Latin one.
	visual := p.visual
	if visual[0].Start != 0 || visual[0].Direction != LeftToRight {
		t.Errorf("first visual run = %+v, want leading LTR run", visual[0])
	}
}

func TestRTLBaseReordersRuns(t *testing.T) {
	p := New("עברית abc")

	if p.BaseDirection() != RightToLeft {
		t.Fatalf("base = %v, want RTL", p.BaseDirection())
	}

	runs := p.VisualRuns()
	checkPartition(t, runs, p.Len())

	// Under an RTL base the trailing Latin run displays leftmost.
	visual := p.visual
	if visual[0].Direction != LeftToRight {
		t.Errorf("first visual run = %+v, want the Latin run", visual[0])
	}
	if last := visual[len(visual)-1]; last.Start != 0 {
		t.Errorf("last visual run = %+v, want the leading Hebrew run", last)
	}
}

func TestExplicitBaseDirection(t *testing.T) {
	// Latin text alone would auto-detect LTR; an explicit RTL base keeps
	// the paragraph direction RTL while the Latin run stays LTR at an even
	// level above the base.
	p := New("abc", WithBaseDirection(RightToLeft))

	if p.BaseDirection() != RightToLeft {
		t.Fatalf("base = %v, want RTL", p.BaseDirection())
	}
	runs := p.VisualRuns()
	checkPartition(t, runs, 3)
	for _, r := range runs {
		if r.Direction == LeftToRight && r.Level != 2 {
			t.Errorf("run = %+v, want LTR runs at level 2 under an RTL base", r)
		}
	}
}

func TestParagraphSeparatorCovered(t *testing.T) {
	// Resolution stops at the first paragraph separator; the remainder must
	// still be covered by a trailing base-level run.
	p := New("abc\ndef")

	checkPartition(t, p.VisualRuns(), 7)
}

func TestLogicalToVisualLTR(t *testing.T) {
	p := New("hello")

	for i := 0; i <= 5; i++ {
		if got := p.LogicalToVisual(i); got != i {
			t.Errorf("LogicalToVisual(%d) = %d, want identity", i, got)
		}
	}
}

func TestLogicalToVisualRTLMirrors(t *testing.T) {
	p := New("שלום") // 4 runes, one RTL run

	tests := []struct {
		logical int
		visual  int
	}{
		{0, 3},
		{1, 2},
		{2, 1},
		{3, 0},
	}

	for _, tt := range tests {
		if got := p.LogicalToVisual(tt.logical); got != tt.visual {
			t.Errorf("LogicalToVisual(%d) = %d, want %d", tt.logical, got, tt.visual)
		}
		if got := p.VisualToLogical(tt.visual); got != tt.logical {
			t.Errorf("VisualToLogical(%d) = %d, want %d", tt.visual, got, tt.logical)
		}
	}
}

func TestConversionRoundTrip(t *testing.T) {
	texts := []string{
		"hello world",
		"שלום עולם",
		"abc עברית def",
		"مرحبا abc 123",
	}

	for _, text := range texts {
		p := New(text)
		for i := 0; i < p.Len(); i++ {
			v := p.LogicalToVisual(i)
			if back := p.VisualToLogical(v); back != i {
				t.Errorf("%q: round trip %d -> %d -> %d", text, i, v, back)
			}
		}
	}
}

func TestEmptyParagraph(t *testing.T) {
	p := New("")

	if p.Len() != 0 {
		t.Errorf("expected length 0, got %d", p.Len())
	}
	if len(p.VisualRuns()) != 0 {
		t.Errorf("expected no runs, got %d", len(p.VisualRuns()))
	}
	if got := p.LogicalToVisual(0); got != 0 {
		t.Errorf("LogicalToVisual(0) = %d, want 0", got)
	}
	if got := p.VisualToLogical(0); got != 0 {
		t.Errorf("VisualToLogical(0) = %d, want 0", got)
	}
}

func TestVisualRunsRange(t *testing.T) {
	p := New("abc עברית")

	clipped := p.VisualRunsRange(2, 6)
	checkClipped := func(r VisualRun) {
		if r.Start < 2 || r.End > 6 {
			t.Errorf("run %+v escapes clip range [2, 6)", r)
		}
	}
	if len(clipped) != 2 {
		t.Fatalf("expected 2 clipped runs, got %d: %+v", len(clipped), clipped)
	}
	for _, r := range clipped {
		checkClipped(r)
	}
	if clipped[0].End != clipped[1].Start {
		t.Error("clipped runs are not contiguous")
	}
}
