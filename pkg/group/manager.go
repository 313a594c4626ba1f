package group

import "github.com/aretw0/scena/pkg/domain"

// Manager owns a group tree and the leaf index used to resolve hit-test
// results. Set is the only write; every Select operation is a pure read of
// the last tree set.
//
// A Manager is not safe for concurrent use.
type Manager[L comparable] struct {
	root    *Array[L]
	singles map[L]*Single[L]
	// arrays indexes groups by the key of their path, byID by id alone.
	arrays map[string]*Array[L]
	byID   map[string]*Array[L]
}

// NewManager creates a manager holding an empty tree.
func NewManager[L comparable]() *Manager[L] {
	m := &Manager[L]{}
	m.Set(nil, nil)
	return m
}

// Set replaces the tree. children describes the nesting of groups and
// leaves; leaves lists the selectable elements, and any of them missing from
// children is appended to the root in order. Duplicate leaves keep their
// first position, and a group repeated under the same parent is merged
// into its first occurrence. The Scope of group wrappers in children is
// ignored; it follows from the nesting.
func (m *Manager[L]) Set(children Targets[L], leaves []L) {
	root := &Array[L]{depth: -1}
	singles := make(map[L]*Single[L])
	arrays := make(map[string]*Array[L])
	byID := make(map[string]*Array[L])

	var fill func(parent *Array[L], targets Targets[L])
	fill = func(parent *Array[L], targets Targets[L]) {
		for _, t := range targets {
			switch t := t.(type) {
			case Leaf[L]:
				if _, dup := singles[t.Value]; dup {
					continue
				}
				s := &Single[L]{Value: t.Value, parent: parent, depth: parent.depth + 1}
				singles[t.Value] = s
				parent.Value = append(parent.Value, s)
			case Group[L]:
				key := parent.Path().Child(t.ID).Key()
				a, dup := arrays[key]
				if !dup {
					a = &Array[L]{ID: t.ID, parent: parent, depth: parent.depth + 1}
					arrays[key] = a
					parent.Value = append(parent.Value, a)
				}
				if _, ok := byID[t.ID]; !ok {
					byID[t.ID] = a
				}
				fill(a, t.Children)
			}
		}
	}
	fill(root, children)

	for _, l := range leaves {
		if _, ok := singles[l]; ok {
			continue
		}
		s := &Single[L]{Value: l, parent: root, depth: 0}
		singles[l] = s
		root.Value = append(root.Value, s)
	}

	m.root = root
	m.singles = singles
	m.arrays = arrays
	m.byID = byID
}

// Root returns the root group.
func (m *Manager[L]) Root() *Array[L] {
	return m.root
}

// Children returns the top-level nodes of the tree.
func (m *Manager[L]) Children() []Child[L] {
	out := make([]Child[L], len(m.root.Value))
	copy(out, m.root.Value)
	return out
}

// Leaves returns every leaf of the tree in pre-order.
func (m *Manager[L]) Leaves() []L {
	return m.root.Leaves()
}

// FindSingle resolves a leaf to its tree node. Leaves from an older tree
// are reported as absent.
func (m *Manager[L]) FindSingle(leaf L) (*Single[L], bool) {
	s, ok := m.singles[leaf]
	return s, ok
}

// FindArrayChildByID returns the group with id. When an id occurs at
// several places the first one in pre-order wins.
func (m *Manager[L]) FindArrayChildByID(id string) (*Array[L], bool) {
	a, ok := m.byID[id]
	return a, ok
}

// FindArray returns the group whose path (its scope plus its own id) is path.
func (m *Manager[L]) FindArray(path domain.Scope) (*Array[L], bool) {
	if len(path) == 0 {
		return nil, false
	}
	a, ok := m.arrays[path.Key()]
	return a, ok
}

// Scope returns the scope path of leaf.
func (m *Manager[L]) Scope(leaf L) (domain.Scope, bool) {
	s, ok := m.singles[leaf]
	if !ok {
		return nil, false
	}
	return s.Scope(), true
}

// ToTargetList resolves a selection into a TargetList of live tree nodes.
// Stale members are dropped.
func (m *Manager[L]) ToTargetList(targets Targets[L]) *TargetList[L] {
	return ToTargetList(m.resolve(targets))
}

// SelectSingleChilds computes a flat selection of leaves, ignoring groups:
// (flatten(targets) ∪ added) − removed.
func (m *Manager[L]) SelectSingleChilds(targets Targets[L], added, removed []L) Targets[L] {
	selected := m.flatten(targets)
	for _, l := range added {
		selected[l] = struct{}{}
	}
	for _, l := range removed {
		delete(selected, l)
	}

	out := Targets[L]{}
	m.root.walk(func(s *Single[L]) {
		if _, ok := selected[s.Value]; ok {
			out = append(out, Leaf[L]{Value: s.Value})
		}
	})
	return out
}

// SelectCompletedChilds computes a selection where a group is selected
// once every one of its leaves is, and falls back to its remaining leaves
// as soon as one is removed.
//
// Without continueSelect, members of targets are kept only inside the
// top-level nodes touched by added or removed. An empty delta touches
// nothing and leaves the selection as it is.
func (m *Manager[L]) SelectCompletedChilds(targets Targets[L], added, removed []L, continueSelect bool) Targets[L] {
	selected := m.flatten(targets)
	if !continueSelect && len(added)+len(removed) > 0 {
		touched := make(map[Child[L]]struct{})
		for _, l := range append(append([]L{}, added...), removed...) {
			if s, ok := m.singles[l]; ok {
				touched[topLevel[L](s)] = struct{}{}
			}
		}
		for l := range selected {
			if _, ok := touched[topLevel[L](m.singles[l])]; !ok {
				delete(selected, l)
			}
		}
	}
	for _, l := range added {
		if _, ok := m.singles[l]; ok {
			selected[l] = struct{}{}
		}
	}
	for _, l := range removed {
		delete(selected, l)
	}
	return collectCompleted(m.root, selected, Targets[L]{})
}

func collectCompleted[L comparable](a *Array[L], selected map[L]struct{}, out Targets[L]) Targets[L] {
	for _, c := range a.Value {
		switch c := c.(type) {
		case *Single[L]:
			if _, ok := selected[c.Value]; ok {
				out = append(out, Leaf[L]{Value: c.Value})
			}
		case *Array[L]:
			if c.complete(selected) {
				out = append(out, toTarget[L](c))
			} else {
				out = collectCompleted(c, selected, out)
			}
		}
	}
	return out
}

// SelectSameDepthChilds computes a selection restricted to one depth of the
// tree: the depth of the first member of targets, or when targets is empty
// of the first added leaf the tree knows, in the order given.
//
// Added leaves at that depth are selected; a group at that depth is selected
// when all of its leaves are covered. A removed leaf deselects the member at
// that depth containing it. Members at other depths are never added and are
// left as they are. When targets itself mixes depths the result is still
// computed and ErrMixedDepth is returned alongside it.
func (m *Manager[L]) SelectSameDepthChilds(targets Targets[L], added, removed []L) (Targets[L], error) {
	units := m.resolve(targets)

	depth := -1
	if len(units) > 0 {
		depth = units[0].Depth()
	} else {
		for _, l := range added {
			if s, ok := m.singles[l]; ok {
				depth = s.depth
				break
			}
		}
	}
	if depth < 0 {
		return Targets[L]{}, nil
	}

	var err error
	selected := make(map[Child[L]]struct{}, len(units))
	for _, u := range units {
		if u.Depth() != depth {
			err = ErrMixedDepth
		}
		selected[u] = struct{}{}
	}

	removedSet := toSet(removed)
	for u := range selected {
		if u.Depth() != depth {
			continue
		}
		switch u := u.(type) {
		case *Single[L]:
			if _, ok := removedSet[u.Value]; ok {
				delete(selected, u)
			}
		case *Array[L]:
			if u.touches(removedSet) {
				delete(selected, u)
			}
		}
	}

	covered := m.flatten(targets)
	for _, l := range added {
		covered[l] = struct{}{}
	}
	for l := range removedSet {
		delete(covered, l)
	}
	for _, l := range added {
		s, ok := m.singles[l]
		if !ok {
			continue
		}
		if s.depth == depth {
			if _, gone := removedSet[l]; !gone {
				selected[s] = struct{}{}
			}
			continue
		}
		if a := ancestorAt(s, depth); a != nil && a.complete(covered) {
			selected[a] = struct{}{}
		}
	}

	return collectUnits(m.root, selected, Targets[L]{}), err
}

func collectUnits[L comparable](a *Array[L], selected map[Child[L]]struct{}, out Targets[L]) Targets[L] {
	for _, c := range a.Value {
		if _, ok := selected[c]; ok {
			out = append(out, toTarget(c))
			continue
		}
		if sub, ok := c.(*Array[L]); ok {
			out = collectUnits(sub, selected, out)
		}
	}
	return out
}

// SelectSubChilds drills into the selected group containing target: the
// result selects only the direct child of that group which is or encloses
// target. When no group around target is selected, the top-level node
// containing it is selected instead. Unknown targets leave the selection
// unchanged.
func (m *Manager[L]) SelectSubChilds(targets Targets[L], target L) Targets[L] {
	s, ok := m.singles[target]
	if !ok {
		return targets.clone()
	}

	var anchor *Array[L]
	for _, u := range m.resolve(targets) {
		switch u := u.(type) {
		case *Single[L]:
			if u == s {
				return Targets[L]{Leaf[L]{Value: target}}
			}
		case *Array[L]:
			if u.Contains(s) && (anchor == nil || u.depth > anchor.depth) {
				anchor = u
			}
		}
	}
	if anchor == nil {
		return Targets[L]{toTarget(topLevel[L](s))}
	}
	return Targets[L]{toTarget(anchor.childContaining(s))}
}

// resolve maps selection members onto live tree nodes, dropping stale ones.
func (m *Manager[L]) resolve(targets Targets[L]) []Child[L] {
	out := make([]Child[L], 0, len(targets))
	for _, t := range targets {
		switch t := t.(type) {
		case Leaf[L]:
			if s, ok := m.singles[t.Value]; ok {
				out = append(out, s)
			}
		case Group[L]:
			if a, ok := m.arrays[t.Path().Key()]; ok {
				out = append(out, a)
			}
		}
	}
	return out
}

// flatten returns the live leaves covered by targets. Group wrappers that
// still exist contribute their current leaves, stale ones their snapshot.
func (m *Manager[L]) flatten(targets Targets[L]) map[L]struct{} {
	set := make(map[L]struct{})
	for _, t := range targets {
		switch t := t.(type) {
		case Leaf[L]:
			if _, ok := m.singles[t.Value]; ok {
				set[t.Value] = struct{}{}
			}
		case Group[L]:
			leaves := t.Children.Flatten()
			if a, ok := m.arrays[t.Path().Key()]; ok {
				leaves = a.Leaves()
			}
			for _, l := range leaves {
				if _, ok := m.singles[l]; ok {
					set[l] = struct{}{}
				}
			}
		}
	}
	return set
}

// topLevel returns the child of the root enclosing c.
func topLevel[L comparable](c Child[L]) Child[L] {
	for c.Parent() != nil && !c.Parent().IsRoot() {
		c = c.Parent()
	}
	return c
}

// ancestorAt returns the group enclosing s whose depth is depth.
func ancestorAt[L comparable](s *Single[L], depth int) *Array[L] {
	for p := s.parent; p != nil && !p.IsRoot(); p = p.parent {
		if p.depth == depth {
			return p
		}
	}
	return nil
}

func toSet[L comparable](values []L) map[L]struct{} {
	set := make(map[L]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
