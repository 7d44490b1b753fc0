package cursor

import (
	"errors"
	"testing"

	"github.com/Hillel-Nagid/typst-studio/internal/engine/bidi"
)

func TestMoveVisualLeftRight(t *testing.T) {
	p := bidi.New("hello")

	pos, err := MoveVisual(p, 2, MoveRight)
	if err != nil {
		t.Fatalf("move right failed: %v", err)
	}
	if pos != 3 {
		t.Errorf("right from 2 = %d, want 3", pos)
	}

	pos, err = MoveVisual(p, 2, MoveLeft)
	if err != nil {
		t.Fatalf("move left failed: %v", err)
	}
	if pos != 1 {
		t.Errorf("left from 2 = %d, want 1", pos)
	}
}

func TestMoveVisualClampsAtBounds(t *testing.T) {
	p := bidi.New("ab")

	if pos, _ := MoveVisual(p, 0, MoveLeft); pos != 0 {
		t.Errorf("left at start = %d, want 0", pos)
	}
	if pos, _ := MoveVisual(p, 2, MoveRight); pos != 2 {
		t.Errorf("right at end = %d, want 2", pos)
	}
}

func TestMoveVisualCombiningSequence(t *testing.T) {
	// "e" plus combining acute is one grapheme cluster of two runes.
	p := bidi.New("ae\u0301b")

	pos, err := MoveVisual(p, 1, MoveRight)
	if err != nil {
		t.Fatalf("move right failed: %v", err)
	}
	if pos != 3 {
		t.Errorf("right over combining sequence = %d, want 3", pos)
	}

	pos, err = MoveVisual(p, 3, MoveLeft)
	if err != nil {
		t.Fatalf("move left failed: %v", err)
	}
	if pos != 1 {
		t.Errorf("left over combining sequence = %d, want 1", pos)
	}
}

func TestMoveVisualHomeToggle(t *testing.T) {
	p := bidi.New("  indented")

	pos, err := MoveVisual(p, 7, MoveHome)
	if err != nil {
		t.Fatalf("home failed: %v", err)
	}
	if pos != 2 {
		t.Errorf("first home = %d, want first non-whitespace at 2", pos)
	}

	pos, err = MoveVisual(p, 2, MoveHome)
	if err != nil {
		t.Fatalf("home failed: %v", err)
	}
	if pos != 0 {
		t.Errorf("second home = %d, want 0", pos)
	}
}

func TestMoveVisualEnd(t *testing.T) {
	p := bidi.New("hello")

	pos, err := MoveVisual(p, 1, MoveEnd)
	if err != nil {
		t.Fatalf("end failed: %v", err)
	}
	if pos != 5 {
		t.Errorf("end = %d, want 5", pos)
	}
}

func TestMoveVisualWord(t *testing.T) {
	p := bidi.New("foo bar baz")

	pos, err := MoveVisual(p, 0, MoveWordRight)
	if err != nil {
		t.Fatalf("word right failed: %v", err)
	}
	if pos != 3 {
		t.Errorf("word right from 0 = %d, want 3", pos)
	}

	pos, err = MoveVisual(p, 6, MoveWordLeft)
	if err != nil {
		t.Fatalf("word left failed: %v", err)
	}
	if pos != 4 {
		t.Errorf("word left from 6 = %d, want 4", pos)
	}
}

func TestMoveVisualEmptyParagraph(t *testing.T) {
	p := bidi.New("")

	for _, dir := range []MoveDirection{MoveLeft, MoveRight, MoveHome, MoveEnd} {
		pos, err := MoveVisual(p, 0, dir)
		if err != nil {
			t.Errorf("%v on empty paragraph failed: %v", dir, err)
		}
		if pos != 0 {
			t.Errorf("%v on empty paragraph = %d, want 0", dir, pos)
		}
	}
}

func TestMoveVisualRejectsVertical(t *testing.T) {
	p := bidi.New("hello")

	for _, dir := range []MoveDirection{MoveUp, MoveDown} {
		if _, err := MoveVisual(p, 0, dir); !errors.Is(err, ErrVerticalMovement) {
			t.Errorf("%v error = %v, want ErrVerticalMovement", dir, err)
		}
	}
}

func TestMoveLogical(t *testing.T) {
	text := "ae\u0301b"

	if pos := MoveLogical(text, 1, true); pos != 3 {
		t.Errorf("forward = %d, want 3", pos)
	}
	if pos := MoveLogical(text, 3, false); pos != 1 {
		t.Errorf("backward = %d, want 1", pos)
	}
	if pos := MoveLogical(text, 0, false); pos != 0 {
		t.Errorf("backward at start = %d, want 0", pos)
	}
}

func TestMoveVerticalStickyColumn(t *testing.T) {
	lines := []string{"hello world", "hi", "hello again"}

	// Down through a short line remembers the desired column.
	pos, err := MoveVertical(lines, 0, 9, MoveDown, 9)
	if err != nil {
		t.Fatalf("down failed: %v", err)
	}
	if pos != (Position{Line: 1, Column: 2}) {
		t.Errorf("down to short line = %v, want (1:2)", pos)
	}

	pos, err = MoveVertical(lines, pos.Line, pos.Column, MoveDown, 9)
	if err != nil {
		t.Fatalf("down failed: %v", err)
	}
	if pos != (Position{Line: 2, Column: 9}) {
		t.Errorf("down past short line = %v, want (2:9)", pos)
	}
}

func TestMoveVerticalUpDownRoundTrip(t *testing.T) {
	lines := []string{"line1", "line2", "line3"}

	pos, err := MoveVertical(lines, 1, 0, MoveUp, 0)
	if err != nil {
		t.Fatalf("up failed: %v", err)
	}
	if pos != (Position{Line: 0, Column: 0}) {
		t.Errorf("up = %v, want (0:0)", pos)
	}

	pos, err = MoveVertical(lines, pos.Line, pos.Column, MoveDown, 0)
	if err != nil {
		t.Fatalf("down failed: %v", err)
	}
	if pos != (Position{Line: 1, Column: 0}) {
		t.Errorf("down = %v, want (1:0)", pos)
	}
}

func TestMoveVerticalUnsetSticky(t *testing.T) {
	lines := []string{"abc", "abcdef"}

	pos, err := MoveVertical(lines, 0, 2, MoveDown, -1)
	if err != nil {
		t.Fatalf("down failed: %v", err)
	}
	if pos != (Position{Line: 1, Column: 2}) {
		t.Errorf("down = %v, want (1:2)", pos)
	}
}

func TestMoveVerticalClampsAtEdges(t *testing.T) {
	lines := []string{"first", "last"}

	pos, err := MoveVertical(lines, 0, 3, MoveUp, -1)
	if err != nil {
		t.Fatalf("up failed: %v", err)
	}
	if pos != (Position{Line: 0, Column: 0}) {
		t.Errorf("up from first line = %v, want (0:0)", pos)
	}

	pos, err = MoveVertical(lines, 1, 1, MoveDown, -1)
	if err != nil {
		t.Fatalf("down failed: %v", err)
	}
	if pos != (Position{Line: 1, Column: 4}) {
		t.Errorf("down from last line = %v, want (1:4)", pos)
	}
}

func TestMoveVerticalRejectsHorizontal(t *testing.T) {
	lines := []string{"a"}

	if _, err := MoveVertical(lines, 0, 0, MoveLeft, -1); !errors.Is(err, ErrInvalidDirection) {
		t.Errorf("error = %v, want ErrInvalidDirection", err)
	}
}
