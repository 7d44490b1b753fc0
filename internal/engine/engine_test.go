package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNewEngineHasNoActiveBuffer(t *testing.T) {
	e := New()

	if e.Len() != 0 {
		t.Errorf("expected 0 buffers, got %d", e.Len())
	}
	if _, err := e.ActiveBuffer(); !errors.Is(err, ErrNoActiveBuffer) {
		t.Errorf("error = %v, want ErrNoActiveBuffer", err)
	}
}

func TestOpenTextActivates(t *testing.T) {
	e := New()

	buf := e.OpenText("hello")

	active, err := e.ActiveBuffer()
	if err != nil {
		t.Fatalf("active buffer failed: %v", err)
	}
	if active.ID() != buf.ID() {
		t.Errorf("active = %d, want %d", active.ID(), buf.ID())
	}
	if e.Len() != 1 {
		t.Errorf("expected 1 buffer, got %d", e.Len())
	}
}

func TestBufferLookup(t *testing.T) {
	e := New()
	buf := e.NewBuffer()

	got, err := e.Buffer(buf.ID())
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if got != buf {
		t.Error("lookup returned a different buffer")
	}

	if _, err := e.Buffer(BufferID(99999)); !errors.Is(err, ErrBufferNotFound) {
		t.Errorf("error = %v, want ErrBufferNotFound", err)
	}
}

func TestSetActive(t *testing.T) {
	e := New()
	first := e.OpenText("one")
	e.OpenText("two")

	if err := e.SetActive(first.ID()); err != nil {
		t.Fatalf("set active failed: %v", err)
	}
	active, _ := e.ActiveBuffer()
	if active.ID() != first.ID() {
		t.Errorf("active = %d, want %d", active.ID(), first.ID())
	}

	if err := e.SetActive(BufferID(99999)); !errors.Is(err, ErrBufferNotFound) {
		t.Errorf("error = %v, want ErrBufferNotFound", err)
	}
}

func TestCloseActivatesMostRecent(t *testing.T) {
	e := New()
	first := e.OpenText("one")
	second := e.OpenText("two")
	third := e.OpenText("three")

	if err := e.Close(third.ID()); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	active, err := e.ActiveBuffer()
	if err != nil {
		t.Fatalf("active buffer failed: %v", err)
	}
	if active.ID() != second.ID() {
		t.Errorf("active = %d, want most recently opened remaining %d", active.ID(), second.ID())
	}

	e.Close(second.ID())
	e.Close(first.ID())
	if _, err := e.ActiveBuffer(); !errors.Is(err, ErrNoActiveBuffer) {
		t.Errorf("error = %v, want ErrNoActiveBuffer after closing all", err)
	}
}

func TestCloseUnknownBuffer(t *testing.T) {
	e := New()

	if err := e.Close(BufferID(42)); !errors.Is(err, ErrBufferNotFound) {
		t.Errorf("error = %v, want ErrBufferNotFound", err)
	}
}

func TestOpenFileDeduplicates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(path, []byte("content"), 0o644); err != nil {
		t.Fatal(err)
	}

	e := New()
	first, err := e.OpenFile(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	e.OpenText("scratch")

	second, err := e.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if second.ID() != first.ID() {
		t.Error("reopening the same path should return the existing buffer")
	}
	if e.Len() != 2 {
		t.Errorf("expected 2 buffers, got %d", e.Len())
	}

	active, _ := e.ActiveBuffer()
	if active.ID() != first.ID() {
		t.Error("reopening should reactivate the existing buffer")
	}
}

func TestBuffersInOpeningOrder(t *testing.T) {
	e := New()
	a := e.OpenText("a")
	b := e.OpenText("b")
	c := e.OpenText("c")

	bufs := e.Buffers()
	if len(bufs) != 3 {
		t.Fatalf("expected 3 buffers, got %d", len(bufs))
	}
	for i, want := range []BufferID{a.ID(), b.ID(), c.ID()} {
		if bufs[i].ID() != want {
			t.Errorf("buffer %d = %d, want %d", i, bufs[i].ID(), want)
		}
	}
}

func TestSaveAll(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(path, []byte("v1"), 0o644); err != nil {
		t.Fatal(err)
	}

	e := New()
	buf, err := e.OpenFile(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	e.OpenText("scratch buffer without a path")

	if _, err := buf.Insert(Position{Line: 0, Column: 2}, "!"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if err := e.SaveAll(); err != nil {
		t.Fatalf("save all failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "v1!" {
		t.Errorf("saved = %q, want 'v1!'", data)
	}
	if buf.Dirty() {
		t.Error("saved buffer should be clean")
	}
}

func TestResolveLine(t *testing.T) {
	e := New()
	buf := e.OpenText("hello\nשלום")

	p, err := e.ResolveLine(buf.ID(), 1)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if p.BaseDirection() != RightToLeft {
		t.Errorf("base = %v, want RTL for the Hebrew line", p.BaseDirection())
	}

	if _, err := e.ResolveLine(BufferID(99999), 0); !errors.Is(err, ErrBufferNotFound) {
		t.Errorf("error = %v, want ErrBufferNotFound", err)
	}
}

func TestEditThroughFacade(t *testing.T) {
	e := New()
	buf := e.OpenText("abc")

	pos, err := buf.Insert(Position{Line: 0, Column: 3}, "d")
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if pos != (Position{Line: 0, Column: 4}) {
		t.Errorf("cursor = %v, want (0:4)", pos)
	}

	if _, err := buf.Undo(); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if buf.Text() != "abc" {
		t.Errorf("text = %q, want 'abc'", buf.Text())
	}
}
