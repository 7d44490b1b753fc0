package history

import (
	"fmt"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Encode serializes the history to JSON. The open group, if any, is written
// as the newest undo group so a decoded history starts at a boundary.
func (h *History) Encode() (string, error) {
	doc, err := sjson.Set("{}", "max_operations", h.maxOps)
	if err != nil {
		return "", fmt.Errorf("encode history: %w", err)
	}

	undo := h.undoStack
	if h.current != nil {
		undo = append(append([]*Group{}, h.undoStack...), h.current)
	}

	doc, err = encodeStack(doc, "undo", undo)
	if err != nil {
		return "", err
	}
	doc, err = encodeStack(doc, "redo", h.redoStack)
	if err != nil {
		return "", err
	}
	return doc, nil
}

// encodeStack writes a group stack under the given key, oldest first.
func encodeStack(doc, key string, stack []*Group) (string, error) {
	var err error
	for i, group := range stack {
		base := fmt.Sprintf("%s.%d", key, i)
		doc, err = sjson.Set(doc, base+".timestamp", group.Timestamp.UnixMilli())
		if err != nil {
			return "", fmt.Errorf("encode %s group %d: %w", key, i, err)
		}
		for j, op := range group.Operations {
			doc, err = encodeOperation(doc, fmt.Sprintf("%s.operations.%d", base, j), op)
			if err != nil {
				return "", fmt.Errorf("encode %s group %d: %w", key, i, err)
			}
		}
	}
	return doc, nil
}

// encodeOperation writes one operation's fields under the given path.
func encodeOperation(doc, base string, op Operation) (string, error) {
	fields := []struct {
		path  string
		value any
	}{
		{"kind", op.Kind.String()},
		{"start.line", op.Start.Line},
		{"start.column", op.Start.Column},
		{"end.line", op.End.Line},
		{"end.column", op.End.Column},
		{"inserted_text", op.InsertedText},
		{"deleted_text", op.DeletedText},
		{"cursor_before.line", op.CursorBefore.Line},
		{"cursor_before.column", op.CursorBefore.Column},
		{"cursor_after.line", op.CursorAfter.Line},
		{"cursor_after.column", op.CursorAfter.Column},
		{"timestamp", op.Timestamp.UnixMilli()},
	}

	var err error
	for _, f := range fields {
		doc, err = sjson.Set(doc, base+"."+f.path, f.value)
		if err != nil {
			return "", err
		}
	}
	return doc, nil
}

// Decode restores a history from JSON produced by Encode.
func Decode(data string) (*History, error) {
	if !gjson.Valid(data) {
		return nil, fmt.Errorf("decode history: invalid JSON")
	}
	doc := gjson.Parse(data)

	h := New(int(doc.Get("max_operations").Int()))

	var err error
	h.undoStack, err = decodeStack(doc.Get("undo"))
	if err != nil {
		return nil, fmt.Errorf("decode undo stack: %w", err)
	}
	h.redoStack, err = decodeStack(doc.Get("redo"))
	if err != nil {
		return nil, fmt.Errorf("decode redo stack: %w", err)
	}
	return h, nil
}

// decodeStack reads a group stack, oldest first.
func decodeStack(arr gjson.Result) ([]*Group, error) {
	var stack []*Group
	for i, g := range arr.Array() {
		group := &Group{Timestamp: time.UnixMilli(g.Get("timestamp").Int())}
		for j, o := range g.Get("operations").Array() {
			op, err := decodeOperation(o)
			if err != nil {
				return nil, fmt.Errorf("group %d operation %d: %w", i, j, err)
			}
			group.Operations = append(group.Operations, op)
		}
		if len(group.Operations) == 0 {
			return nil, fmt.Errorf("group %d: no operations", i)
		}
		stack = append(stack, group)
	}
	return stack, nil
}

// decodeOperation reads one operation's fields.
func decodeOperation(o gjson.Result) (Operation, error) {
	kind, ok := kindFromString(o.Get("kind").String())
	if !ok {
		return Operation{}, fmt.Errorf("unknown operation kind %q", o.Get("kind").String())
	}

	return Operation{
		Kind:         kind,
		Start:        decodePosition(o.Get("start")),
		End:          decodePosition(o.Get("end")),
		InsertedText: o.Get("inserted_text").String(),
		DeletedText:  o.Get("deleted_text").String(),
		CursorBefore: decodePosition(o.Get("cursor_before")),
		CursorAfter:  decodePosition(o.Get("cursor_after")),
		Timestamp:    time.UnixMilli(o.Get("timestamp").Int()),
	}, nil
}

// decodePosition reads a line/column pair.
func decodePosition(p gjson.Result) Position {
	return Position{
		Line:   int(p.Get("line").Int()),
		Column: int(p.Get("column").Int()),
	}
}
