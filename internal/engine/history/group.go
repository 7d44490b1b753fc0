package history

import "time"

// Group is one undo step: operations that are undone and redone together.
// A group is built by merging adjacent insertions and sealed by a boundary
// or by an operation that fails to merge.
type Group struct {
	Operations []Operation
	Timestamp  time.Time
}

// NewGroup starts a group with its first operation.
func NewGroup(op Operation) *Group {
	return &Group{
		Operations: []Operation{op},
		Timestamp:  op.Timestamp,
	}
}

// Add appends an operation to the group. The group timestamp tracks its
// newest operation.
func (g *Group) Add(op Operation) {
	g.Operations = append(g.Operations, op)
	g.Timestamp = op.Timestamp
}

// Len returns the number of operations in the group.
func (g *Group) Len() int {
	return len(g.Operations)
}

// CanMergeWith reports whether op can be merged into the group's last
// operation.
func (g *Group) CanMergeWith(op Operation) bool {
	if len(g.Operations) == 0 {
		return false
	}
	return g.Operations[len(g.Operations)-1].CanMergeWith(op)
}

// Merge folds op into the group's last operation. The caller must have
// checked CanMergeWith first.
func (g *Group) Merge(op Operation) {
	g.Operations[len(g.Operations)-1].Merge(op)
	g.Timestamp = op.Timestamp
}

// Clone returns a deep copy of the group.
func (g *Group) Clone() *Group {
	ops := make([]Operation, len(g.Operations))
	copy(ops, g.Operations)
	return &Group{Operations: ops, Timestamp: g.Timestamp}
}
