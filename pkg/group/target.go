package group

import "github.com/aretw0/scena/pkg/domain"

// Target is one member of a selection: a Leaf or a Group wrapper.
type Target[L comparable] interface {
	isTarget()
}

// Leaf selects a single element.
type Leaf[L comparable] struct {
	Value L
}

// Group selects a whole group. Scope names the groups enclosing it and is
// nil at the top level; together with ID it identifies the group, since one
// id may occur at several places of a tree. Children is a snapshot of the
// group's members taken when the selection was computed.
type Group[L comparable] struct {
	ID       string
	Scope    domain.Scope
	Children Targets[L]
}

// Path returns the scope of the group's direct children.
func (g Group[L]) Path() domain.Scope {
	return g.Scope.Child(g.ID)
}

func (Leaf[L]) isTarget()  {}
func (Group[L]) isTarget() {}

// Targets is an ordered selection, or the nested description of a tree.
type Targets[L comparable] []Target[L]

// Leaves wraps plain values as Leaf targets.
func Leaves[L comparable](values ...L) Targets[L] {
	out := make(Targets[L], 0, len(values))
	for _, v := range values {
		out = append(out, Leaf[L]{Value: v})
	}
	return out
}

// Flatten returns every leaf of the selection, descending into group
// wrappers, in order of first appearance.
func (ts Targets[L]) Flatten() []L {
	seen := make(map[L]struct{})
	var out []L
	ts.flattenInto(seen, &out)
	return out
}

func (ts Targets[L]) flattenInto(seen map[L]struct{}, out *[]L) {
	for _, t := range ts {
		switch t := t.(type) {
		case Leaf[L]:
			if _, ok := seen[t.Value]; !ok {
				seen[t.Value] = struct{}{}
				*out = append(*out, t.Value)
			}
		case Group[L]:
			t.Children.flattenInto(seen, out)
		}
	}
}

// HasGroups reports whether any top-level member is a group wrapper.
func (ts Targets[L]) HasGroups() bool {
	for _, t := range ts {
		if _, ok := t.(Group[L]); ok {
			return true
		}
	}
	return false
}

// GroupIDs returns the ids of the top-level group wrappers.
func (ts Targets[L]) GroupIDs() []string {
	var ids []string
	for _, t := range ts {
		if g, ok := t.(Group[L]); ok {
			ids = append(ids, g.ID)
		}
	}
	return ids
}

func (ts Targets[L]) clone() Targets[L] {
	if ts == nil {
		return Targets[L]{}
	}
	out := make(Targets[L], len(ts))
	copy(out, ts)
	return out
}

// Clone returns a deep copy: nested group wrappers get their own slices.
func (ts Targets[L]) Clone() Targets[L] {
	if ts == nil {
		return nil
	}
	out := make(Targets[L], len(ts))
	for i, t := range ts {
		if g, ok := t.(Group[L]); ok {
			t = Group[L]{ID: g.ID, Scope: g.Scope.Clone(), Children: g.Children.Clone()}
		}
		out[i] = t
	}
	return out
}
