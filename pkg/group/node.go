package group

import "github.com/aretw0/scena/pkg/domain"

// Child is a node of the group tree. It is either a *Single or an *Array.
type Child[L comparable] interface {
	// Parent returns the enclosing group, nil for the root.
	Parent() *Array[L]
	// Depth is the length of the node's scope path. Children of the root have depth 0.
	Depth() int
	// Scope returns the ids of the groups enclosing the node, outermost first.
	Scope() domain.Scope

	isChild()
}

// Single wraps one leaf of the tree.
type Single[L comparable] struct {
	Value L

	parent *Array[L]
	depth  int
}

func (s *Single[L]) Parent() *Array[L]   { return s.parent }
func (s *Single[L]) Depth() int          { return s.depth }
func (s *Single[L]) Scope() domain.Scope { return s.parent.Path() }
func (*Single[L]) isChild()              {}

// Array is a group of the tree. The root is an Array with an empty ID.
type Array[L comparable] struct {
	ID    string
	Value []Child[L]

	parent *Array[L]
	depth  int
}

func (a *Array[L]) Parent() *Array[L] { return a.parent }
func (a *Array[L]) Depth() int        { return a.depth }
func (*Array[L]) isChild()            {}

// Scope returns the ids of the groups enclosing a, excluding a itself.
func (a *Array[L]) Scope() domain.Scope {
	if a.parent == nil {
		return domain.Scope{}
	}
	return a.parent.Path()
}

// Path returns the scope of a's direct children: Scope() plus a's own id.
func (a *Array[L]) Path() domain.Scope {
	if a == nil || a.parent == nil {
		return domain.Scope{}
	}
	return a.parent.Path().Child(a.ID)
}

// IsRoot reports whether a is the root of its tree.
func (a *Array[L]) IsRoot() bool {
	return a.parent == nil
}

// Leaves returns every leaf below a in pre-order.
func (a *Array[L]) Leaves() []L {
	var out []L
	a.walk(func(s *Single[L]) {
		out = append(out, s.Value)
	})
	return out
}

func (a *Array[L]) walk(fn func(*Single[L])) {
	for _, c := range a.Value {
		switch c := c.(type) {
		case *Single[L]:
			fn(c)
		case *Array[L]:
			c.walk(fn)
		}
	}
}

// Contains reports whether c is a strict descendant of a.
func (a *Array[L]) Contains(c Child[L]) bool {
	for p := c.Parent(); p != nil; p = p.parent {
		if p == a {
			return true
		}
	}
	return false
}

// childContaining returns the direct child of a that is c or encloses c.
func (a *Array[L]) childContaining(c Child[L]) Child[L] {
	for {
		p := c.Parent()
		if p == nil {
			return nil
		}
		if p == a {
			return c
		}
		c = p
	}
}

// complete reports whether a has at least one leaf and all of them are in set.
func (a *Array[L]) complete(set map[L]struct{}) bool {
	found, missing := false, false
	a.walk(func(s *Single[L]) {
		found = true
		if _, ok := set[s.Value]; !ok {
			missing = true
		}
	})
	return found && !missing
}

// touches reports whether any leaf of a is in set.
func (a *Array[L]) touches(set map[L]struct{}) bool {
	hit := false
	a.walk(func(s *Single[L]) {
		if _, ok := set[s.Value]; ok {
			hit = true
		}
	})
	return hit
}

// toTarget converts a tree node into its selection element.
func toTarget[L comparable](c Child[L]) Target[L] {
	switch c := c.(type) {
	case *Single[L]:
		return Leaf[L]{Value: c.Value}
	case *Array[L]:
		return Group[L]{ID: c.ID, Scope: nonEmpty(c.Scope()), Children: toTargets(c.Value)}
	}
	return nil
}

func toTargets[L comparable](children []Child[L]) Targets[L] {
	out := make(Targets[L], 0, len(children))
	for _, c := range children {
		out = append(out, toTarget(c))
	}
	return out
}
