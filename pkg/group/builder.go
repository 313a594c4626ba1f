package group

import "github.com/aretw0/scena/pkg/domain"

// Scoped pairs a leaf value with its scope path.
type Scoped[T any] struct {
	Value T
	Scope domain.Scope
}

// Node is an element of a built Tree: a *LeafNode or a *GroupNode.
type Node[T any] interface {
	isNode()
}

// LeafNode is a leaf placed in a built Tree.
type LeafNode[T any] struct {
	Value T
	Scope domain.Scope
}

// GroupNode is a group of a built Tree. Scope names its ancestors only.
type GroupNode[T any] struct {
	ID       string
	Title    string
	Scope    domain.Scope
	Metadata map[string]any
	Children []Node[T]
}

func (*LeafNode[T]) isNode()  {}
func (*GroupNode[T]) isNode() {}

// Path returns the scope of the group's direct children.
func (g *GroupNode[T]) Path() domain.Scope {
	if g.ID == "" && len(g.Scope) == 0 {
		return domain.Scope{}
	}
	return g.Scope.Child(g.ID)
}

// Info returns the group's metadata as a domain value.
func (g *GroupNode[T]) Info() domain.GroupInfo {
	return domain.GroupInfo{
		ID:       g.ID,
		Title:    g.Title,
		Scope:    g.Scope.Clone(),
		Metadata: g.Metadata,
	}
}

// Tree is the result of Build.
type Tree[T any] struct {
	Root *GroupNode[T]
	// Groups lists every live group in creation order.
	Groups []*GroupNode[T]
	// Pruned lists supplied group ids that no leaf refers to.
	Pruned []string

	byPath map[string]*GroupNode[T]
}

// Build nests leaves into groups following their scope paths.
//
// Leaves are processed in order. Each path prefix not seen yet creates a
// group attached to the prefix's parent. Metadata from groups is attached by
// id; unknown ids get a default title. Supplied groups never reached by a
// leaf are dropped and reported in Pruned.
//
// Identity is path based: the same id under two different parents, or
// repeated within one path, makes distinct groups. Empty segments of a
// scope are skipped.
func Build[T any](leaves []Scoped[T], groups []domain.GroupInfo) *Tree[T] {
	known := make(map[string]domain.GroupInfo, len(groups))
	for _, g := range groups {
		if _, dup := known[g.ID]; !dup {
			known[g.ID] = g
		}
	}

	tree := &Tree[T]{
		Root:   &GroupNode[T]{Scope: domain.Scope{}},
		byPath: make(map[string]*GroupNode[T]),
	}
	tree.byPath[domain.Scope{}.Key()] = tree.Root
	live := make(map[string]struct{})

	for _, leaf := range leaves {
		scope := leaf.Scope.Compact()
		parent := tree.Root
		for i, id := range scope {
			prefix := scope[:i+1]
			key := prefix.Key()
			group, ok := tree.byPath[key]
			if !ok {
				group = newGroupNode[T](id, scope[:i].Clone(), known)
				tree.byPath[key] = group
				tree.Groups = append(tree.Groups, group)
				parent.Children = append(parent.Children, group)
			}
			live[id] = struct{}{}
			parent = group
		}
		parent.Children = append(parent.Children, &LeafNode[T]{
			Value: leaf.Value,
			Scope: scope.Clone(),
		})
	}

	seen := make(map[string]struct{})
	for _, g := range groups {
		if _, ok := live[g.ID]; ok {
			continue
		}
		if _, dup := seen[g.ID]; dup {
			continue
		}
		seen[g.ID] = struct{}{}
		tree.Pruned = append(tree.Pruned, g.ID)
	}
	return tree
}

func newGroupNode[T any](id string, scope domain.Scope, known map[string]domain.GroupInfo) *GroupNode[T] {
	group := &GroupNode[T]{
		ID:    id,
		Title: domain.DefaultGroupTitle,
		Scope: scope,
	}
	if info, ok := known[id]; ok {
		if info.Title != "" {
			group.Title = info.Title
		}
		if len(info.Metadata) > 0 {
			group.Metadata = make(map[string]any, len(info.Metadata))
			for k, v := range info.Metadata {
				group.Metadata[k] = v
			}
		}
	}
	return group
}

// Find returns the group whose children live at scope.
func (t *Tree[T]) Find(scope domain.Scope) (*GroupNode[T], bool) {
	g, ok := t.byPath[scope.Compact().Key()]
	return g, ok
}

// GroupByID returns the first group created with id.
func (t *Tree[T]) GroupByID(id string) (*GroupNode[T], bool) {
	for _, g := range t.Groups {
		if g.ID == id {
			return g, true
		}
	}
	return nil, false
}

// Leaves returns every leaf value in pre-order.
func (t *Tree[T]) Leaves() []T {
	var out []T
	var visit func(*GroupNode[T])
	visit = func(g *GroupNode[T]) {
		for _, c := range g.Children {
			switch c := c.(type) {
			case *LeafNode[T]:
				out = append(out, c.Value)
			case *GroupNode[T]:
				visit(c)
			}
		}
	}
	visit(t.Root)
	return out
}

// TargetsOf converts the tree into the nested description consumed by
// Manager.Set, mapping each leaf value to its identity with key.
func TargetsOf[T any, L comparable](t *Tree[T], key func(T) L) Targets[L] {
	var convert func([]Node[T]) Targets[L]
	convert = func(nodes []Node[T]) Targets[L] {
		out := make(Targets[L], 0, len(nodes))
		for _, n := range nodes {
			switch n := n.(type) {
			case *LeafNode[T]:
				out = append(out, Leaf[L]{Value: key(n.Value)})
			case *GroupNode[T]:
				out = append(out, Group[L]{ID: n.ID, Scope: nonEmpty(n.Scope), Children: convert(n.Children)})
			}
		}
		return out
	}
	return convert(t.Root.Children)
}

func nonEmpty(s domain.Scope) domain.Scope {
	if len(s) == 0 {
		return nil
	}
	return s.Clone()
}
